package intent

import "strings"

type classifierRule struct {
	when    predicate
	resolve func(text string) Intent
}

// Classifier maps lowercased message text to exactly one Intent via an
// ordered substring cascade. Order matters: more specific tags ("完了済")
// must be tested before the generic containment tests further down.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier builds the keyword cascade from the vocabulary.
func NewClassifier(v Vocabulary) *Classifier {
	return &Classifier{
		rules: []classifierRule{
			{anyOf([]string{"削除"}), fixed(Intent{Kind: KindDelete})},
			{anyOf([]string{"更新", "変更"}), fixed(Intent{Kind: KindUpdate})},
			{anyOf(v.CompletedMarkers), fixed(Intent{Kind: KindTaskListCompleted})},
			{anyOf([]string{"期限付き", "締め切り", "期日"}), fixed(Intent{Kind: KindTaskListDue})},
			{anyOf([]string{"入れて", "登録", "追加"}), fixed(Intent{Kind: KindRegister})},
			{all(anyOf([]string{"明後日"}), anyOf(v.EventNouns)), fixed(Intent{Kind: KindSchedule, DayOffset: 2})},
			{all(anyOf([]string{"明日"}), anyOf(v.EventNouns)), fixed(Intent{Kind: KindSchedule, DayOffset: 1})},
			{all(anyOf([]string{"今日"}), anyOf(v.EventNouns)), fixed(Intent{Kind: KindSchedule, DayOffset: 0})},
			{anyOf(append([]string{"スケジュール"}, v.EventNouns...)), fixed(Intent{Kind: KindSchedule, DayOffset: 0})},
			{anyOf([]string{"天気"}), fixed(Intent{Kind: KindWeather})},
			{anyOf([]string{"疲れた", "やる気"}), fixed(Intent{Kind: KindMental})},
			{anyOf(v.TaskNouns), resolveTaskAction},
		},
	}
}

// Classify is total: every input maps to exactly one Intent, defaulting to
// KindGeneral.
func (c *Classifier) Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, r := range c.rules {
		if r.when(lowered) {
			return r.resolve(lowered)
		}
	}
	return Intent{Kind: KindGeneral}
}

func fixed(in Intent) func(string) Intent {
	return func(string) Intent { return in }
}

// resolveTaskAction is the sub-cascade for messages that mention a task noun
// without any of the stronger cues above: list/confirm > complete > delete >
// register.
func resolveTaskAction(text string) Intent {
	switch {
	case ContainsAny(text, []string{"一覧", "確認"}):
		return Intent{Kind: KindTaskList}
	case strings.Contains(text, "完了"):
		return Intent{Kind: KindTaskComplete}
	case strings.Contains(text, "削除"):
		return Intent{Kind: KindTaskDelete}
	default:
		return Intent{Kind: KindTaskRegister}
	}
}
