// Package intent decides what a chat message is asking for.
//
// Resolution is layered: the Detector scans for verb+noun combinations that
// pin a message to the schedule or task domain with high confidence, and only
// when it is inconclusive does the coarser keyword Classifier run. Both are
// ordered rule tables over an injected Vocabulary so precedence stays
// auditable and tests can supply alternate keyword sets.
package intent

import "strings"

// Route is the explicit, high-confidence domain decision made before falling
// back to keyword classification.
type Route int

const (
	RouteNone Route = iota
	RouteSchedule
	RouteTask
)

func (r Route) String() string {
	switch r {
	case RouteSchedule:
		return "schedule"
	case RouteTask:
		return "task"
	default:
		return "none"
	}
}

// Kind enumerates the classifier's intent tags.
type Kind string

const (
	KindRegister          Kind = "register"
	KindUpdate            Kind = "update"
	KindDelete            Kind = "delete"
	KindSchedule          Kind = "schedule" // day-offset schedule query, see Intent.DayOffset
	KindTaskRegister      Kind = "task_register"
	KindTaskList          Kind = "task_list"
	KindTaskComplete      Kind = "task_complete"
	KindTaskDelete        Kind = "task_delete"
	KindTaskListCompleted Kind = "task_list_completed"
	KindTaskListDue       Kind = "task_list_due"
	KindWeather           Kind = "weather"
	KindMental            Kind = "mental"
	KindGeneral           Kind = "general"
)

// Intent is the classifier's best guess at the requested action.
type Intent struct {
	Kind      Kind
	DayOffset int // meaningful only when Kind is KindSchedule
}

// ContainsAny reports whether text contains any of the given words.
func ContainsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
