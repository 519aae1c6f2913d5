// Package dispatch routes one inbound message to at most one language model
// extraction and one collaborator call, and renders the outcome as a reply
// string. It never returns an error to the transport.
package dispatch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bepro-geeks/ai-butler/internal/extract"
	"github.com/bepro-geeks/ai-butler/internal/intent"
)

// Calendar is the calendar store the dispatcher acts against.
type Calendar interface {
	Register(ctx context.Context, title string, start time.Time) (string, error)
	ListByOffset(ctx context.Context, dayOffset int) (string, error)
	Delete(ctx context.Context, title string, start time.Time) (string, error)
	Update(ctx context.Context, title string, draft extract.EventDraft) (string, error)
}

// Tasks is the task store the dispatcher acts against.
type Tasks interface {
	Register(ctx context.Context, title string) (string, error)
	RegisterWithDue(ctx context.Context, title, due string) (string, error)
	List(ctx context.Context) (string, error)
	ListCompleted(ctx context.Context) (string, error)
	ListWithDue(ctx context.Context) (string, error)
	Complete(ctx context.Context, title string) (string, error)
	Delete(ctx context.Context, title string) (string, error)
}

// Config wires the handler's collaborators.
type Config struct {
	Detector   *intent.Detector
	Classifier *intent.Classifier
	Extractor  *extract.Extractor
	Calendar   Calendar
	Tasks      Tasks
	Chat       extract.Completer
	Vocabulary intent.Vocabulary
	Logger     *zap.Logger
}

// Handler resolves each message to a route or intent and performs the
// matching action.
type Handler struct {
	detector   *intent.Detector
	classifier *intent.Classifier
	extractor  *extract.Extractor
	calendar   Calendar
	tasks      Tasks
	chat       extract.Completer
	vocab      intent.Vocabulary
	log        *zap.Logger
}

func New(cfg Config) *Handler {
	return &Handler{
		detector:   cfg.Detector,
		classifier: cfg.Classifier,
		extractor:  cfg.Extractor,
		calendar:   cfg.Calendar,
		tasks:      cfg.Tasks,
		chat:       cfg.Chat,
		vocab:      cfg.Vocabulary,
		log:        cfg.Logger,
	}
}

// Handle processes one message start to finish and always returns a reply.
func (h *Handler) Handle(ctx context.Context, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("handler panic", zap.Any("panic", r))
			reply = replyChatFailed
		}
	}()

	switch route := h.detector.Detect(text); route {
	case intent.RouteSchedule:
		h.log.Info("explicit route", zap.Stringer("route", route))
		return h.handleSchedule(ctx, text)
	case intent.RouteTask:
		h.log.Info("explicit route", zap.Stringer("route", route))
		return h.handleTask(ctx, text)
	}

	in := h.classifier.Classify(text)
	h.log.Info("intent classified", zap.String("kind", string(in.Kind)), zap.Int("day_offset", in.DayOffset))

	switch in.Kind {
	case intent.KindSchedule:
		reply, err := h.calendar.ListByOffset(ctx, in.DayOffset)
		if err != nil {
			h.log.Error("schedule listing failed", zap.Error(err))
			return replyScheduleListFailed
		}
		return reply
	case intent.KindRegister:
		return h.handleRegister(ctx, text)
	case intent.KindDelete:
		return h.deleteSchedule(ctx, text)
	case intent.KindUpdate:
		return h.updateSchedule(ctx, text)
	case intent.KindTaskRegister:
		return h.registerTask(ctx, text)
	case intent.KindTaskList:
		return h.listTasks(ctx)
	case intent.KindTaskComplete:
		return h.completeTask(ctx, text)
	case intent.KindTaskDelete:
		return h.deleteTask(ctx, text)
	case intent.KindTaskListCompleted:
		return h.listCompletedTasks(ctx)
	case intent.KindTaskListDue:
		return h.listDueTasks(ctx)
	}

	// weather, mental, general: hand the message to the model verbatim.
	return h.chatReply(ctx, text)
}

// handleSchedule serves a ForceSchedule route: one extraction, then the verb
// decides which calendar operation runs.
func (h *Handler) handleSchedule(ctx context.Context, text string) string {
	draft, err := h.extractor.EventDetails(ctx, text, true)
	if err != nil {
		h.log.Warn("event extraction failed", zap.Error(err))
		return replyParseFailed
	}

	switch {
	case intent.ContainsAny(text, h.vocab.DeleteVerbs):
		reply, err := h.calendar.Delete(ctx, draft.Title, draft.StartTime)
		if err != nil {
			h.log.Error("event deletion failed", zap.Error(err))
			return replyDeleteFailed
		}
		return reply
	case intent.ContainsAny(text, h.vocab.UpdateVerbs):
		reply, err := h.calendar.Update(ctx, draft.Title, draft)
		if err != nil {
			h.log.Error("event update failed", zap.Error(err))
			return replyUpdateFailed
		}
		return reply
	default:
		reply, err := h.calendar.Register(ctx, draft.Title, draft.StartTime)
		if err != nil {
			h.log.Error("event registration failed", zap.Error(err))
			return replyScheduleRegisterFailed
		}
		return reply
	}
}

// handleTask serves a ForceTask route: delete and complete verbs need only a
// title, anything else is a registration with an optional due date.
func (h *Handler) handleTask(ctx context.Context, text string) string {
	switch {
	case intent.ContainsAny(text, h.vocab.DeleteVerbs):
		return h.deleteTask(ctx, text)
	case intent.ContainsAny(text, h.vocab.CompleteVerbs):
		return h.completeTask(ctx, text)
	}

	draft, err := h.extractor.TaskDetails(ctx, text)
	if err != nil {
		h.log.Warn("task extraction failed", zap.Error(err))
		return replyTaskRegisterFailed
	}
	if draft.Title == "" {
		return replyTaskTitleMissing
	}
	return h.registerTaskDraft(ctx, draft)
}

// handleRegister disambiguates a generic register intent: a due date or a
// task noun left in the title means a task, otherwise it is a schedule
// registration.
func (h *Handler) handleRegister(ctx context.Context, text string) string {
	draft, err := h.extractor.TaskDetails(ctx, text)
	if err != nil {
		h.log.Warn("register extraction failed", zap.Error(err))
		return replyRegisterFailed
	}

	if draft.Due != "" || (draft.Title != "" && intent.ContainsAny(draft.Title, h.vocab.TaskNouns)) {
		if draft.Title == "" {
			return replyTaskTitleMissing
		}
		return h.registerTaskDraft(ctx, draft)
	}

	return h.registerSchedule(ctx, text)
}

func (h *Handler) registerTaskDraft(ctx context.Context, draft extract.TaskDraft) string {
	var (
		reply string
		err   error
	)
	if draft.Due != "" {
		reply, err = h.tasks.RegisterWithDue(ctx, draft.Title, draft.Due)
	} else {
		reply, err = h.tasks.Register(ctx, draft.Title)
	}
	if err != nil {
		h.log.Error("task registration failed", zap.Error(err))
		return replyTaskRegisterFailed
	}
	return reply
}

func (h *Handler) registerSchedule(ctx context.Context, text string) string {
	draft, err := h.extractor.EventDetails(ctx, text, true)
	if err != nil {
		h.log.Warn("event extraction failed", zap.Error(err))
		return replyParseFailed
	}

	reply, err := h.calendar.Register(ctx, draft.Title, draft.StartTime)
	if err != nil {
		h.log.Error("event registration failed", zap.Error(err))
		return replyScheduleRegisterFailed
	}
	return reply
}

func (h *Handler) deleteSchedule(ctx context.Context, text string) string {
	draft, err := h.extractor.EventDetails(ctx, text, true)
	if err != nil {
		h.log.Warn("event extraction failed", zap.Error(err))
		var vErr *extract.ValidationError
		if errors.As(err, &vErr) {
			return replyDeleteTargetUnclear
		}
		return replyDeleteFailed
	}

	reply, err := h.calendar.Delete(ctx, draft.Title, draft.StartTime)
	if err != nil {
		h.log.Error("event deletion failed", zap.Error(err))
		return replyDeleteFailed
	}
	return reply
}

func (h *Handler) updateSchedule(ctx context.Context, text string) string {
	draft, err := h.extractor.EventDetails(ctx, text, true)
	if err != nil {
		h.log.Warn("event extraction failed", zap.Error(err))
		var vErr *extract.ValidationError
		if errors.As(err, &vErr) {
			return replyUpdateTargetUnclear
		}
		return replyUpdateFailed
	}

	reply, err := h.calendar.Update(ctx, draft.Title, draft)
	if err != nil {
		h.log.Error("event update failed", zap.Error(err))
		return replyUpdateFailed
	}
	return reply
}

func (h *Handler) registerTask(ctx context.Context, text string) string {
	draft, err := h.extractor.TaskTitle(ctx, text)
	if err != nil {
		h.log.Warn("task title extraction failed", zap.Error(err))
		return replyTaskRegisterFailed
	}
	if draft.Title == "" {
		return replyTaskTitleMissing
	}

	reply, err := h.tasks.Register(ctx, draft.Title)
	if err != nil {
		h.log.Error("task registration failed", zap.Error(err))
		return replyTaskRegisterFailed
	}
	return reply
}

func (h *Handler) completeTask(ctx context.Context, text string) string {
	draft, err := h.extractor.TaskTitle(ctx, text)
	if err != nil {
		h.log.Warn("task title extraction failed", zap.Error(err))
		return replyTaskCompleteFailed
	}
	if draft.Title == "" {
		return replyCompleteTitleMissing
	}

	reply, err := h.tasks.Complete(ctx, draft.Title)
	if err != nil {
		h.log.Error("task completion failed", zap.Error(err))
		return replyTaskCompleteFailed
	}
	return reply
}

func (h *Handler) deleteTask(ctx context.Context, text string) string {
	draft, err := h.extractor.TaskTitle(ctx, text)
	if err != nil {
		h.log.Warn("task title extraction failed", zap.Error(err))
		return replyTaskDeleteFailed
	}
	if draft.Title == "" {
		return replyDeleteTitleMissing
	}

	reply, err := h.tasks.Delete(ctx, draft.Title)
	if err != nil {
		h.log.Error("task deletion failed", zap.Error(err))
		return replyTaskDeleteFailed
	}
	return reply
}

func (h *Handler) listTasks(ctx context.Context) string {
	reply, err := h.tasks.List(ctx)
	if err != nil {
		h.log.Error("task listing failed", zap.Error(err))
		return replyTaskListFailed
	}
	return reply
}

func (h *Handler) listCompletedTasks(ctx context.Context) string {
	reply, err := h.tasks.ListCompleted(ctx)
	if err != nil {
		h.log.Error("completed task listing failed", zap.Error(err))
		return replyTaskCompletedListFailed
	}
	return reply
}

func (h *Handler) listDueTasks(ctx context.Context) string {
	reply, err := h.tasks.ListWithDue(ctx)
	if err != nil {
		h.log.Error("due task listing failed", zap.Error(err))
		return replyTaskDueListFailed
	}
	return reply
}

func (h *Handler) chatReply(ctx context.Context, text string) string {
	reply, err := h.chat.Complete(ctx, chatSystemPrompt, text)
	if err != nil {
		h.log.Error("conversational reply failed", zap.Error(err))
		return replyChatFailed
	}
	return reply
}
