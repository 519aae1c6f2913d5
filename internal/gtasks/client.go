// Package gtasks is the Google Tasks collaborator: register, list, complete,
// and delete operations on a single tasklist resolved by title, replying with
// user-facing Japanese result messages.
package gtasks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Service wraps the Google Tasks API for the butler's tasklist.
type Service struct {
	api       *tasks.Service
	listTitle string
	log       *zap.Logger

	mu         sync.Mutex
	tasklistID string
}

// New authenticates with the stored authorized-user token and builds the
// service. Token refresh is handled transparently by the token source.
func New(ctx context.Context, tokenFile, listTitle string, log *zap.Logger) (*Service, error) {
	if listTitle == "" {
		return nil, fmt.Errorf("tasklist title is required")
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, tasks.TasksScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorized user token: %w", err)
	}

	api, err := tasks.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Service{
		api:       api,
		listTitle: listTitle,
		log:       log,
	}, nil
}

// resolveTasklist finds the configured tasklist by title and caches its ID.
func (s *Service) resolveTasklist(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tasklistID != "" {
		return s.tasklistID, nil
	}

	lists, err := s.api.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list tasklists: %w", err)
	}

	for _, item := range lists.Items {
		if strings.TrimSpace(item.Title) == s.listTitle {
			s.tasklistID = item.Id
			s.log.Info("tasklist resolved", zap.String("title", s.listTitle), zap.String("id", item.Id))
			return item.Id, nil
		}
	}

	return "", fmt.Errorf("tasklist %q not found", s.listTitle)
}
