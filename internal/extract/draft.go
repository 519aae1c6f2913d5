// Package extract turns free-form chat text into structured drafts via a
// one-shot language model call, JSON parsing, and title normalization.
//
// A draft lives only for the duration of one message: it is built here and
// consumed immediately by exactly one collaborator call, never cached or
// retried.
package extract

import "time"

// EventDraft is a not-yet-committed calendar event. The calendar store mints
// its own identity when the draft is registered.
type EventDraft struct {
	Title     string
	StartTime time.Time
}

// TaskDraft is a not-yet-committed task. Due keeps the raw string the model
// returned; empty means no due date was requested.
type TaskDraft struct {
	Title string
	Due   string
}
