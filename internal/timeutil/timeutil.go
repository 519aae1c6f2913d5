package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const civilLayout = "2006-01-02 15:04:05"

// dueLayout is the RFC 3339 form the Google Tasks API uses for due dates.
const dueLayout = "2006-01-02T15:04:05.000Z"

// ParseCivil parses a civil date-time string ("2025-04-30 15:00:00" and close
// variants) in the given location.
func ParseCivil(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("time value is required")
	}

	layouts := []string{
		civilLayout,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
}

// SameWallClock reports whether two instants carry the same civil date and
// time down to the second, each read in its own zone. Sub-second precision
// and zone offsets are deliberately ignored.
func SameWallClock(a, b time.Time) bool {
	return a.Format(civilLayout) == b.Format(civilLayout)
}

// DayWindow returns the start and end of the civil day offset days after now
// in loc.
func DayWindow(now time.Time, offset int, loc *time.Location) (time.Time, time.Time) {
	d := now.In(loc).AddDate(0, 0, offset)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
	return start, end
}

// ParseDue normalizes a model-supplied due value to the RFC 3339 UTC form the
// task store expects. A date-only value becomes start of day UTC.
func ParseDue(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("due value is required")
	}

	if !strings.Contains(raw, "T") {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return "", fmt.Errorf("unable to parse due date: %s", raw)
		}
		return d.UTC().Format(dueLayout), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Zone-less timestamps are read as UTC.
		t, err = time.Parse("2006-01-02T15:04:05", raw)
		if err != nil {
			return "", fmt.Errorf("unable to parse due date: %s", raw)
		}
	}
	return t.UTC().Format(dueLayout), nil
}

// DueDate renders an RFC 3339 due timestamp as its civil date.
func DueDate(due string) string {
	if i := strings.Index(due, "T"); i > 0 {
		return due[:i]
	}
	return due
}
