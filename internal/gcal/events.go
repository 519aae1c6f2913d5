package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/bepro-geeks/ai-butler/internal/extract"
	"github.com/bepro-geeks/ai-butler/internal/timeutil"
)

// deleteWindowDays bounds the search window for delete/update matching.
const deleteWindowDays = 30

// titleJunk mirrors the normalizer's event suffixes; delete requests arrive
// with titles that may still carry them.
var titleJunk = []string{"の予定", "の予約", "予約"}

// Register inserts a fixed-length event unless the slot already holds one.
// A conflict is a normal result message, not an error.
func (s *Service) Register(ctx context.Context, title string, start time.Time) (string, error) {
	end := start.Add(s.slot)

	existing, err := s.listRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to check for conflicting events: %w", err)
	}
	if len(existing) > 0 {
		s.log.Info("slot conflict", zap.String("title", title), zap.Time("start", start))
		return "その時間にはすでに予定が登録されています。別の時間を指定してください。", nil
	}

	event := &calendar.Event{
		Summary: title,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.location.String(),
		},
	}

	if _, err := s.api.Events.Insert(s.calendarID, event).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	s.log.Info("event registered", zap.String("title", title), zap.Time("start", start))
	return fmt.Sprintf("予定『%s』を登録しました。", title), nil
}

// ListByOffset lists the events of the civil day offset days from today, in
// chronological order.
func (s *Service) ListByOffset(ctx context.Context, dayOffset int) (string, error) {
	start, end := timeutil.DayWindow(s.now(), dayOffset, s.location)

	items, err := s.listRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to list events: %w", err)
	}

	label := offsetLabel(dayOffset)
	if len(items) == 0 {
		return fmt.Sprintf("%sの予定はありません。", label), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%sの予定はこちらです：\n", label)
	for _, item := range items {
		b.WriteString(formatEventLine(item, s.location))
	}
	return b.String(), nil
}

// Delete removes the first event whose title matches exactly and whose start
// equals the given instant ignoring sub-second precision and zone offset,
// searching ±30 days around now.
func (s *Service) Delete(ctx context.Context, title string, start time.Time) (string, error) {
	for _, j := range titleJunk {
		title = strings.ReplaceAll(title, j, "")
	}
	title = strings.TrimSpace(title)

	now := s.now().In(s.location)
	items, err := s.listRange(ctx, now.AddDate(0, 0, -deleteWindowDays), now.AddDate(0, 0, deleteWindowDays))
	if err != nil {
		return "", fmt.Errorf("failed to list events for deletion: %w", err)
	}

	for _, item := range items {
		if !matchesEvent(item, title, start) {
			continue
		}
		if err := s.api.Events.Delete(s.calendarID, item.Id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("failed to delete event: %w", err)
		}
		s.log.Info("event deleted", zap.String("title", title), zap.String("event_id", item.Id))
		return fmt.Sprintf("予定『%s』を削除しました。", title), nil
	}

	return fmt.Sprintf("予定『%s』は見つかりませんでした。", title), nil
}

// Update deletes the first event whose title matches and inserts the draft
// in its place, without a conflict check. A no-match is reported, not
// silently ignored.
func (s *Service) Update(ctx context.Context, title string, draft extract.EventDraft) (string, error) {
	now := s.now().In(s.location)
	items, err := s.listRange(ctx, now.AddDate(0, 0, -deleteWindowDays), now.AddDate(0, 0, deleteWindowDays))
	if err != nil {
		return "", fmt.Errorf("failed to list events for update: %w", err)
	}

	deleted := false
	for _, item := range items {
		if item.Summary != title {
			continue
		}
		if err := s.api.Events.Delete(s.calendarID, item.Id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("failed to delete old event: %w", err)
		}
		deleted = true
		break
	}

	if !deleted {
		return fmt.Sprintf("予定『%s』は見つかりませんでした。", title), nil
	}

	end := draft.StartTime.Add(s.slot)
	event := &calendar.Event{
		Summary: draft.Title,
		Start: &calendar.EventDateTime{
			DateTime: draft.StartTime.Format(time.RFC3339),
			TimeZone: s.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.location.String(),
		},
	}

	if _, err := s.api.Events.Insert(s.calendarID, event).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to insert replacement event: %w", err)
	}

	s.log.Info("event updated", zap.String("title", title), zap.Time("new_start", draft.StartTime))
	return fmt.Sprintf("予定『%s』を新しい内容で更新しました。", title), nil
}

// listRange pages through events in [timeMin, timeMax), skipping cancelled
// entries.
func (s *Service) listRange(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	var result []*calendar.Event
	pageToken := ""

	for {
		call := s.api.Events.List(s.calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Context(ctx).Do()
		if err != nil {
			return nil, err
		}

		for _, item := range events.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}
			result = append(result, item)
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return result, nil
}

// matchesEvent reports whether item carries the exact title and the same
// wall-clock start. All-day events never match a timed delete request.
func matchesEvent(item *calendar.Event, title string, start time.Time) bool {
	if item.Summary != title || item.Start == nil || item.Start.DateTime == "" {
		return false
	}
	evStart, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return false
	}
	return timeutil.SameWallClock(evStart, start)
}

func offsetLabel(n int) string {
	switch n {
	case 0:
		return "今日"
	case 1:
		return "明日"
	case 2:
		return "明後日"
	default:
		return fmt.Sprintf("%d日後", n)
	}
}

func formatEventLine(item *calendar.Event, loc *time.Location) string {
	if item.Start == nil {
		return ""
	}
	if item.Start.DateTime == "" {
		// All-day entries carry a date only.
		return fmt.Sprintf("・%s：%s\n", item.Start.Date, item.Summary)
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return fmt.Sprintf("・%s：%s\n", item.Start.DateTime, item.Summary)
	}
	return fmt.Sprintf("・%s：%s\n", start.In(loc).Format("15:04"), item.Summary)
}
