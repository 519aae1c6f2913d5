package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bepro-geeks/ai-butler/internal/extract"
	"github.com/bepro-geeks/ai-butler/internal/intent"
)

// fakeLLM scripts the extraction replies per call. Each Complete call pops
// the next reply off the queue.
type fakeLLM struct {
	replies []string
	err     error
	systems []string
	users   []string
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.systems = append(f.systems, system)
	f.users = append(f.users, user)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakeCalendar struct {
	reply string
	err   error

	registerTitle string
	registerStart time.Time
	listOffset    int
	deleteTitle   string
	updateTitle   string
	updateDraft   extract.EventDraft
	calls         []string
}

func (f *fakeCalendar) Register(_ context.Context, title string, start time.Time) (string, error) {
	f.calls = append(f.calls, "register")
	f.registerTitle = title
	f.registerStart = start
	return f.reply, f.err
}

func (f *fakeCalendar) ListByOffset(_ context.Context, dayOffset int) (string, error) {
	f.calls = append(f.calls, "list")
	f.listOffset = dayOffset
	return f.reply, f.err
}

func (f *fakeCalendar) Delete(_ context.Context, title string, _ time.Time) (string, error) {
	f.calls = append(f.calls, "delete")
	f.deleteTitle = title
	return f.reply, f.err
}

func (f *fakeCalendar) Update(_ context.Context, title string, draft extract.EventDraft) (string, error) {
	f.calls = append(f.calls, "update")
	f.updateTitle = title
	f.updateDraft = draft
	return f.reply, f.err
}

type fakeTasks struct {
	reply string
	err   error

	registerTitle string
	dueTitle      string
	due           string
	completeTitle string
	deleteTitle   string
	calls         []string
}

func (f *fakeTasks) Register(_ context.Context, title string) (string, error) {
	f.calls = append(f.calls, "register")
	f.registerTitle = title
	return f.reply, f.err
}

func (f *fakeTasks) RegisterWithDue(_ context.Context, title, due string) (string, error) {
	f.calls = append(f.calls, "register_due")
	f.dueTitle = title
	f.due = due
	return f.reply, f.err
}

func (f *fakeTasks) List(_ context.Context) (string, error) {
	f.calls = append(f.calls, "list")
	return f.reply, f.err
}

func (f *fakeTasks) ListCompleted(_ context.Context) (string, error) {
	f.calls = append(f.calls, "list_completed")
	return f.reply, f.err
}

func (f *fakeTasks) ListWithDue(_ context.Context) (string, error) {
	f.calls = append(f.calls, "list_due")
	return f.reply, f.err
}

func (f *fakeTasks) Complete(_ context.Context, title string) (string, error) {
	f.calls = append(f.calls, "complete")
	f.completeTitle = title
	return f.reply, f.err
}

func (f *fakeTasks) Delete(_ context.Context, title string) (string, error) {
	f.calls = append(f.calls, "delete")
	f.deleteTitle = title
	return f.reply, f.err
}

type panicCalendar struct{ fakeCalendar }

func (p *panicCalendar) ListByOffset(_ context.Context, _ int) (string, error) {
	panic("calendar exploded")
}

func newTestHandler(llm *fakeLLM, cal Calendar, tasks Tasks, chat extract.Completer) *Handler {
	vocab := intent.DefaultVocabulary()
	return New(Config{
		Detector:   intent.NewDetector(vocab),
		Classifier: intent.NewClassifier(vocab),
		Extractor:  extract.New(llm, time.UTC, zap.NewNop()),
		Calendar:   cal,
		Tasks:      tasks,
		Chat:       chat,
		Vocabulary: vocab,
		Logger:     zap.NewNop(),
	})
}

func TestHandle_ScheduleRoute(t *testing.T) {
	t.Run("register event with time", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "歯医者の予定", "start_time": "2025-04-30 15:00:00"}`}}
		cal := &fakeCalendar{reply: "予定『歯医者』を登録しました。"}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "歯医者の予定を明日の15時に入れて")

		assert.Equal(t, "予定『歯医者』を登録しました。", reply)
		assert.Equal(t, []string{"register"}, cal.calls)
		assert.Equal(t, "歯医者", cal.registerTitle)
		assert.Equal(t, 15, cal.registerStart.Hour())
	})

	t.Run("delete verb routes to delete", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "歯医者", "start_time": "2025-04-30 15:00:00"}`}}
		cal := &fakeCalendar{reply: "予定『歯医者』を削除しました。"}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "明日の歯医者の予定を削除して")

		assert.Equal(t, "予定『歯医者』を削除しました。", reply)
		assert.Equal(t, []string{"delete"}, cal.calls)
		assert.Equal(t, "歯医者", cal.deleteTitle)
	})

	t.Run("update verb routes to update", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "歯医者", "start_time": "2025-05-01 10:00:00"}`}}
		cal := &fakeCalendar{reply: "予定『歯医者』を新しい内容で更新しました。"}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "歯医者の予定を10時に変更して")

		assert.Equal(t, "予定『歯医者』を新しい内容で更新しました。", reply)
		assert.Equal(t, []string{"update"}, cal.calls)
		assert.Equal(t, "歯医者", cal.updateTitle)
	})

	t.Run("malformed extraction reply", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{"sorry, no can do"}}
		cal := &fakeCalendar{}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "歯医者の予定を明日の15時に入れて")

		assert.Equal(t, replyParseFailed, reply)
		assert.Empty(t, cal.calls)
	})

	t.Run("calendar failure maps to fixed reply", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "歯医者", "start_time": "2025-04-30 15:00:00"}`}}
		cal := &fakeCalendar{err: errors.New("api down")}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "歯医者の予定を明日の15時に入れて")

		assert.Equal(t, replyScheduleRegisterFailed, reply)
	})
}

func TestHandle_TaskRoute(t *testing.T) {
	t.Run("delete task by title", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "ゴミ出しを削除"}`}}
		tasks := &fakeTasks{reply: "タスク『ゴミ出し』を削除しました。"}
		h := newTestHandler(llm, &fakeCalendar{}, tasks, llm)

		reply := h.Handle(context.Background(), "ゴミ出しのタスクを削除して")

		assert.Equal(t, "タスク『ゴミ出し』を削除しました。", reply)
		assert.Equal(t, []string{"delete"}, tasks.calls)
		assert.Equal(t, "ゴミ出し", tasks.deleteTitle)
	})

	t.Run("complete task by title", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "ゴミ出し"}`}}
		tasks := &fakeTasks{reply: "タスク『ゴミ出し』を完了にしました。"}
		h := newTestHandler(llm, &fakeCalendar{}, tasks, llm)

		reply := h.Handle(context.Background(), "ゴミ出しのタスクを完了にして")

		assert.Equal(t, []string{"complete"}, tasks.calls)
		assert.Equal(t, "タスク『ゴミ出し』を完了にしました。", reply)
	})

	t.Run("register task with due date", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "レポート提出", "due": "2025-05-10T00:00:00.000Z"}`}}
		tasks := &fakeTasks{reply: "✅ タスク『レポート提出』を登録しました（期限: 2025-05-10）"}
		h := newTestHandler(llm, &fakeCalendar{}, tasks, llm)

		reply := h.Handle(context.Background(), "レポート提出のタスクを追加して")

		assert.Equal(t, []string{"register_due"}, tasks.calls)
		assert.Equal(t, "レポート提出", tasks.dueTitle)
		assert.Equal(t, "2025-05-10T00:00:00.000Z", tasks.due)
		assert.Contains(t, reply, "レポート提出")
	})

	t.Run("register task without due date", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "買い物", "due": null}`}}
		tasks := &fakeTasks{reply: "タスク『買い物』を登録しました。"}
		h := newTestHandler(llm, &fakeCalendar{}, tasks, llm)

		reply := h.Handle(context.Background(), "買い物のタスクを登録して")

		assert.Equal(t, []string{"register"}, tasks.calls)
		assert.Equal(t, "タスク『買い物』を登録しました。", reply)
	})

	t.Run("empty extracted title", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "", "due": null}`}}
		tasks := &fakeTasks{}
		h := newTestHandler(llm, &fakeCalendar{}, tasks, llm)

		reply := h.Handle(context.Background(), "何かのタスクを登録して")

		assert.Equal(t, replyTaskTitleMissing, reply)
		assert.Empty(t, tasks.calls)
	})
}

func TestHandle_ClassifiedIntents(t *testing.T) {
	t.Run("schedule listing with day offset", func(t *testing.T) {
		cal := &fakeCalendar{reply: "明日の予定はありません。"}
		h := newTestHandler(&fakeLLM{}, cal, &fakeTasks{}, &fakeLLM{})

		reply := h.Handle(context.Background(), "明日の予定を教えて")

		assert.Equal(t, "明日の予定はありません。", reply)
		assert.Equal(t, []string{"list"}, cal.calls)
		assert.Equal(t, 1, cal.listOffset)
	})

	t.Run("task list", func(t *testing.T) {
		tasks := &fakeTasks{reply: "現在、タスクは登録されていません。"}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, tasks, &fakeLLM{})

		reply := h.Handle(context.Background(), "タスクを確認したい")

		assert.Equal(t, []string{"list"}, tasks.calls)
		assert.Equal(t, "現在、タスクは登録されていません。", reply)
	})

	t.Run("completed task list", func(t *testing.T) {
		tasks := &fakeTasks{reply: "現在、完了済みのタスクはありません。"}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, tasks, &fakeLLM{})

		h.Handle(context.Background(), "完了済みのタスクの一覧")

		assert.Equal(t, []string{"list_completed"}, tasks.calls)
	})

	t.Run("completed list queries never complete a task", func(t *testing.T) {
		// Past-tense completion phrasings are read queries; they must not
		// reach Tasks.Complete.
		for _, text := range []string{"完了したタスクを見せて", "完了済みのタスクは？"} {
			tasks := &fakeTasks{reply: "✅ 完了済みのタスク一覧です：\n・ゴミ出し\n"}
			h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, tasks, &fakeLLM{})

			reply := h.Handle(context.Background(), text)

			assert.Equal(t, []string{"list_completed"}, tasks.calls, "text=%q", text)
			assert.Equal(t, "✅ 完了済みのタスク一覧です：\n・ゴミ出し\n", reply, "text=%q", text)
		}
	})

	t.Run("due task list", func(t *testing.T) {
		tasks := &fakeTasks{reply: "期限付きタスク一覧：\n・レポート（期限: 2025-05-10）"}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, tasks, &fakeLLM{})

		h.Handle(context.Background(), "期限付きのタスクを見せて")

		assert.Equal(t, []string{"list_due"}, tasks.calls)
	})

	t.Run("task list failure maps to fixed reply", func(t *testing.T) {
		tasks := &fakeTasks{err: errors.New("api down")}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, tasks, &fakeLLM{})

		reply := h.Handle(context.Background(), "タスクを確認したい")

		assert.Equal(t, replyTaskListFailed, reply)
	})

	t.Run("delete without event extraction hits target unclear", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "会議"}`}}
		cal := &fakeCalendar{}
		h := newTestHandler(llm, cal, &fakeTasks{}, llm)

		reply := h.Handle(context.Background(), "会議を削除")

		assert.Equal(t, replyDeleteTargetUnclear, reply)
		assert.Empty(t, cal.calls)
	})

	t.Run("generic register with due becomes a task", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"title": "レポート", "due": "2025-05-10"}`}}
		tasks := &fakeTasks{reply: "✅ タスク『レポート』を登録しました（期限: 2025-05-10）"}
		cal := &fakeCalendar{}
		h := newTestHandler(llm, cal, tasks, llm)

		h.Handle(context.Background(), "レポートを追加")

		assert.Equal(t, []string{"register_due"}, tasks.calls)
		assert.Empty(t, cal.calls)
	})

	t.Run("generic register without due becomes a schedule", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{
			`{"title": "会議", "due": null}`,
			`{"title": "会議", "start_time": "2025-04-30 15:00:00"}`,
		}}
		cal := &fakeCalendar{reply: "予定『会議』を登録しました。"}
		tasks := &fakeTasks{}
		h := newTestHandler(llm, cal, tasks, llm)

		reply := h.Handle(context.Background(), "会議を15時に入れて")

		assert.Equal(t, "予定『会議』を登録しました。", reply)
		assert.Equal(t, []string{"register"}, cal.calls)
		assert.Empty(t, tasks.calls)
	})
}

func TestHandle_ChatFallback(t *testing.T) {
	t.Run("general message goes to the model verbatim", func(t *testing.T) {
		chat := &fakeLLM{replies: []string{"こんにちは！今日はどんなご用件ですか？"}}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, &fakeTasks{}, chat)

		reply := h.Handle(context.Background(), "こんにちは")

		assert.Equal(t, "こんにちは！今日はどんなご用件ですか？", reply)
		require.Len(t, chat.users, 1)
		assert.Equal(t, "こんにちは", chat.users[0])
		assert.Equal(t, chatSystemPrompt, chat.systems[0])
	})

	t.Run("weather and mental share the fallback", func(t *testing.T) {
		for _, text := range []string{"明日の天気は？", "今日は疲れた"} {
			chat := &fakeLLM{replies: []string{"reply"}}
			h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, &fakeTasks{}, chat)

			h.Handle(context.Background(), text)

			assert.Len(t, chat.users, 1, "text=%q", text)
		}
	})

	t.Run("chat failure maps to fixed reply", func(t *testing.T) {
		chat := &fakeLLM{err: errors.New("api down")}
		h := newTestHandler(&fakeLLM{}, &fakeCalendar{}, &fakeTasks{}, chat)

		reply := h.Handle(context.Background(), "こんにちは")

		assert.Equal(t, replyChatFailed, reply)
	})
}

func TestHandle_RecoversFromPanic(t *testing.T) {
	h := newTestHandler(&fakeLLM{}, &panicCalendar{}, &fakeTasks{}, &fakeLLM{})

	reply := h.Handle(context.Background(), "今日の予定を教えて")

	assert.Equal(t, replyChatFailed, reply)
}

func TestHandle_NeverReturnsEmpty(t *testing.T) {
	inputs := []string{
		"",
		"こんにちは",
		"歯医者の予定を削除",
		"タスクを確認",
		"完了済みタスクの一覧",
	}
	for _, text := range inputs {
		llm := &fakeLLM{err: errors.New("down")}
		h := newTestHandler(llm, &fakeCalendar{err: errors.New("down")}, &fakeTasks{err: errors.New("down")}, llm)

		reply := h.Handle(context.Background(), text)
		assert.NotEmpty(t, strings.TrimSpace(reply), "text=%q", text)
	}
}
