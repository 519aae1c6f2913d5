package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bepro-geeks/ai-butler/internal/config"
	"github.com/bepro-geeks/ai-butler/internal/dispatch"
	"github.com/bepro-geeks/ai-butler/internal/extract"
	"github.com/bepro-geeks/ai-butler/internal/gcal"
	"github.com/bepro-geeks/ai-butler/internal/gtasks"
	"github.com/bepro-geeks/ai-butler/internal/intent"
	"github.com/bepro-geeks/ai-butler/internal/openai"
	"github.com/bepro-geeks/ai-butler/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		fatal("creating logger", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		loc = time.UTC
	}

	llm := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITemperature)
	if !llm.IsConfigured() {
		logger.Warn("OPENAI_API_KEY not set, extraction and chat replies will fail")
	}

	ctx := context.Background()

	calendarSvc, err := gcal.New(ctx, gcal.Config{
		CredentialsFile: cfg.GoogleServiceAccountFile,
		CalendarID:      cfg.GoogleCalendarID,
		Location:        loc,
		SlotMinutes:     cfg.SlotMinutes,
	}, logger)
	if err != nil {
		fatal("creating calendar service", err)
	}

	taskSvc, err := gtasks.New(ctx, cfg.GoogleTokenFile, cfg.TasklistTitle, logger)
	if err != nil {
		fatal("creating tasks service", err)
	}

	vocab := intent.DefaultVocabulary()
	handler := dispatch.New(dispatch.Config{
		Detector:   intent.NewDetector(vocab),
		Classifier: intent.NewClassifier(vocab),
		Extractor:  extract.New(llm, loc, logger),
		Calendar:   calendarSvc,
		Tasks:      taskSvc,
		Chat:       llm,
		Vocabulary: vocab,
		Logger:     logger,
	})

	srv, err := server.New(server.Config{
		Port:          cfg.HTTPPort,
		ChannelSecret: cfg.LineChannelSecret,
		ChannelToken:  cfg.LineChannelAccessToken,
		Handler:       handler,
		Logger:        logger,
	})
	if err != nil {
		fatal("creating webhook server", err)
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	waitForShutdown(srv, logger)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server, logger *zap.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
