// Package server is the transport glue: it receives LINE webhook callbacks,
// hands text messages to the dispatcher, and sends the reply back through the
// Messaging API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"
)

const webhookPath = "/ai_butler_webhook"

// MessageHandler produces a reply for one inbound text message.
type MessageHandler interface {
	Handle(ctx context.Context, text string) string
}

// Config holds the settings for the webhook server.
type Config struct {
	Port          int
	ChannelSecret string
	ChannelToken  string
	Handler       MessageHandler
	Logger        *zap.Logger
}

// Server verifies, parses, and answers LINE webhook deliveries.
type Server struct {
	httpSrv       *http.Server
	channelSecret string
	handler       MessageHandler
	log           *zap.Logger

	// reply is swappable so tests can capture outgoing messages.
	reply func(replyToken, text string) error
}

func New(cfg Config) (*Server, error) {
	bot, err := messaging_api.NewMessagingApiAPI(cfg.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging API client: %w", err)
	}

	s := &Server{
		channelSecret: cfg.ChannelSecret,
		handler:       cfg.Handler,
		log:           cfg.Logger,
	}
	s.reply = func(replyToken, text string) error {
		_, err := bot.ReplyMessage(&messaging_api.ReplyMessageRequest{
			ReplyToken: replyToken,
			Messages: []messaging_api.MessageInterface{
				messaging_api.TextMessage{Text: text},
			},
		})
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc(webhookPath, s.handleWebhook)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
		// The write timeout covers a full language model round trip.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins serving and blocks until shutdown.
func (s *Server) Start() error {
	s.log.Info("webhook server listening", zap.String("addr", s.httpSrv.Addr))
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(s.channelSecret, r)
	if err != nil {
		s.log.Warn("webhook parse failed", zap.Error(err))
		if errors.Is(err, webhook.ErrInvalidSignature) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	for _, event := range cb.Events {
		msgEvent, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		textMsg, ok := msgEvent.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}

		reply := s.handler.Handle(r.Context(), textMsg.Text)
		if err := s.reply(msgEvent.ReplyToken, reply); err != nil {
			s.log.Error("reply delivery failed", zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
