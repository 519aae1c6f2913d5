package extract

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bepro-geeks/ai-butler/internal/timeutil"
)

// Completer is the one-shot, stateless language model call the extractor
// depends on: system prompt and user text in, raw reply text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Extractor builds drafts from free text. Each method makes exactly one
// language model call.
type Extractor struct {
	llm Completer
	loc *time.Location
	now func() time.Time
	log *zap.Logger
}

func New(llm Completer, loc *time.Location, log *zap.Logger) *Extractor {
	if loc == nil {
		loc = time.UTC
	}
	return &Extractor{
		llm: llm,
		loc: loc,
		now: time.Now,
		log: log,
	}
}

func (e *Extractor) today() string {
	return e.now().In(e.loc).Format("2006-01-02")
}

// EventDetails extracts an event title, and when requireTime is set, a civil
// start time interpreted in the extractor's location.
func (e *Extractor) EventDetails(ctx context.Context, text string, requireTime bool) (EventDraft, error) {
	system := eventPromptTitleOnly(e.today())
	if requireTime {
		system = eventPromptWithTime(e.today())
	}

	reply, err := e.llm.Complete(ctx, system, text)
	if err != nil {
		return EventDraft{}, err
	}
	e.log.Debug("event extraction reply", zap.String("reply", truncate(reply, 200)))

	var payload struct {
		Title     string `json:"title"`
		StartTime string `json:"start_time"`
	}
	if err := parseObject(reply, &payload); err != nil {
		return EventDraft{}, err
	}

	draft := EventDraft{Title: NormalizeEventTitle(payload.Title)}
	if draft.Title == "" {
		return EventDraft{}, &ValidationError{Field: "title"}
	}

	if requireTime {
		start, err := timeutil.ParseCivil(strings.TrimSpace(payload.StartTime), e.loc)
		if err != nil {
			return EventDraft{}, &ValidationError{Field: "start_time"}
		}
		draft.StartTime = start
	}

	return draft, nil
}

// TaskTitle extracts just a task name, stripped of command phrasing. The
// title may come back empty; callers decide how to phrase that to the user.
func (e *Extractor) TaskTitle(ctx context.Context, text string) (TaskDraft, error) {
	reply, err := e.llm.Complete(ctx, taskTitlePrompt(e.today()), text)
	if err != nil {
		return TaskDraft{}, err
	}
	e.log.Debug("task title extraction reply", zap.String("reply", truncate(reply, 200)))

	var payload struct {
		Title string `json:"title"`
	}
	if err := parseObject(reply, &payload); err != nil {
		return TaskDraft{}, err
	}

	return TaskDraft{Title: NormalizeTaskTitle(payload.Title)}, nil
}

// TaskDetails extracts a task name plus an optional due date. A literal
// "null" due (any case) means no due date, same as a JSON null.
func (e *Extractor) TaskDetails(ctx context.Context, text string) (TaskDraft, error) {
	reply, err := e.llm.Complete(ctx, taskDetailsPrompt(e.today()), text)
	if err != nil {
		return TaskDraft{}, err
	}
	e.log.Debug("task details extraction reply", zap.String("reply", truncate(reply, 200)))

	var payload struct {
		Title string  `json:"title"`
		Due   *string `json:"due"`
	}
	if err := parseObject(reply, &payload); err != nil {
		return TaskDraft{}, err
	}

	due := ""
	if payload.Due != nil {
		due = strings.TrimSpace(*payload.Due)
		if strings.EqualFold(due, "null") {
			due = ""
		}
	}

	return TaskDraft{
		Title: NormalizeTaskDetailTitle(payload.Title),
		Due:   due,
	}, nil
}
