package extract

import (
	"regexp"
	"strings"
)

// Junk-phrase lists, one per call site. Order is load-bearing: longer phrases
// come before the sub-phrases they contain, otherwise a partial removal
// leaves a dangling fragment. Do not reorder or dedupe.
var (
	eventTitleJunk = []string{
		"の予定を変更", "の予定を削除", "の予定を追加", "の予定を登録",
		"を変更", "を削除", "を追加", "を登録",
		"の予定", "の予約", "予約",
	}

	taskTitleJunk = []string{
		"を削除", "を登録", "を追加", "を変更", "を完了にする", "を完了にして",
		"を完了", "を実行", "してください", "して",
	}

	taskDetailJunk = []string{
		"のタスクを追加", "のタスクを登録", "を追加", "を登録",
		"を完了", "を削除", "を更新", "タスク", "追加", "登録",
	}
)

// taskVerbSuffix strips trailing completion/deletion verb forms before the
// literal junk pass at the task-title call site.
var taskVerbSuffix = regexp.MustCompile(`を?(完了|削除)に?(する|して)?(ください)?$`)

// Normalize strips the given junk phrases in order until the result is
// stable, then trims surrounding whitespace. Running to a fixpoint keeps the
// function idempotent even when a removal exposes another junk occurrence.
func Normalize(title string, junk []string) string {
	s := title
	for {
		prev := s
		for _, j := range junk {
			s = strings.ReplaceAll(s, j, "")
		}
		if s == prev {
			break
		}
	}
	return strings.TrimSpace(s)
}

// NormalizeEventTitle collapses "歯医者の予定" and "歯医者" to the same key.
func NormalizeEventTitle(title string) string {
	return Normalize(title, eventTitleJunk)
}

// NormalizeTaskTitle cleans titles extracted for complete/delete commands.
func NormalizeTaskTitle(title string) string {
	trimmed := taskVerbSuffix.ReplaceAllString(strings.TrimSpace(title), "")
	return Normalize(trimmed, taskTitleJunk)
}

// NormalizeTaskDetailTitle cleans titles extracted together with a due date.
func NormalizeTaskDetailTitle(title string) string {
	return Normalize(title, taskDetailJunk)
}
