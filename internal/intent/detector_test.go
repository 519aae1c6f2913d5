package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	d := NewDetector(DefaultVocabulary())

	tests := []struct {
		name     string
		text     string
		expected Route
	}{
		{
			name:     "update verb with event noun",
			text:     "歯医者の予定を明日に変更して",
			expected: RouteSchedule,
		},
		{
			name:     "delete verb with event noun",
			text:     "歯医者の予定を削除して",
			expected: RouteSchedule,
		},
		{
			name:     "delete verb with task noun",
			text:     "歯医者のタスクを削除して",
			expected: RouteTask,
		},
		{
			name:     "register verb with event noun",
			text:     "歯医者の予定を明日の15時に入れて",
			expected: RouteSchedule,
		},
		{
			name:     "register verb with task noun",
			text:     "牛乳を買うタスクを追加して",
			expected: RouteTask,
		},
		{
			name:     "complete verb with task noun",
			text:     "牛乳を買うタスクを完了にして",
			expected: RouteTask,
		},
		{
			name:     "complete verb with list request defers to classifier",
			text:     "完了したタスクの一覧を見せて",
			expected: RouteNone,
		},
		{
			name:     "completed list query without a list word defers",
			text:     "完了したタスクを見せて",
			expected: RouteNone,
		},
		{
			name:     "completed marker alone defers",
			text:     "完了済みのタスクは？",
			expected: RouteNone,
		},
		{
			name:     "no verb noun combination",
			text:     "今日の天気を教えて",
			expected: RouteNone,
		},
		{
			name:     "plain conversation",
			text:     "こんにちは",
			expected: RouteNone,
		},
		{
			name:     "empty input",
			text:     "",
			expected: RouteNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Detect(tt.text))
		})
	}
}

// Any register verb plus the event noun must force the schedule route no
// matter what else the message contains.
func TestDetect_RegisterEventAlwaysForcesSchedule(t *testing.T) {
	v := DefaultVocabulary()
	d := NewDetector(v)

	extras := []string{"", "タスク", "天気", "一覧", "完了した", "やる気が出ない"}
	for _, verb := range v.RegisterVerbs {
		for _, extra := range extras {
			text := "歯医者の予定を" + verb + extra
			assert.Equal(t, RouteSchedule, d.Detect(text), "text=%q", text)
		}
	}
}

func TestDetect_DeleteEventWinsOverDeleteTask(t *testing.T) {
	d := NewDetector(DefaultVocabulary())

	// Both nouns present: the event rule is checked first.
	assert.Equal(t, RouteSchedule, d.Detect("予定とタスクを削除して"))
}

func TestDetect_AlternateVocabulary(t *testing.T) {
	v := Vocabulary{
		DeleteVerbs: []string{"remove"},
		TaskNouns:   []string{"todo"},
	}
	d := NewDetector(v)

	assert.Equal(t, RouteTask, d.Detect("remove the dentist todo"))
	assert.Equal(t, RouteNone, d.Detect("remove the dentist appointment"))
}
