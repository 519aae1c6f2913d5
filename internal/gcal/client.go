// Package gcal is the Google Calendar collaborator: register, list, delete,
// and update operations on a single configured calendar, replying with
// user-facing Japanese result messages.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const defaultSlotMinutes = 30

// Config holds the settings for the calendar service.
type Config struct {
	// CredentialsFile is a Google service account key file with calendar scope.
	CredentialsFile string
	CalendarID      string
	Location        *time.Location
	SlotMinutes     int
}

// Service wraps the Google Calendar API for the butler's calendar.
type Service struct {
	api        *calendar.Service
	calendarID string
	location   *time.Location
	slot       time.Duration
	now        func() time.Time
	log        *zap.Logger
}

// New authenticates with the service account key and builds the service.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Service, error) {
	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("calendar id is required")
	}

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	api, err := calendar.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	slotMinutes := cfg.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = defaultSlotMinutes
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		api:        api,
		calendarID: cfg.CalendarID,
		location:   loc,
		slot:       time.Duration(slotMinutes) * time.Minute,
		now:        time.Now,
		log:        log,
	}, nil
}
