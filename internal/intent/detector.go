package intent

type predicate func(text string) bool

type detectorRule struct {
	name  string
	when  predicate
	route Route
}

// Detector pins unambiguous verb+noun commands to their domain before the
// general classifier gets a chance to misroute them.
type Detector struct {
	rules []detectorRule
}

// NewDetector builds the explicit-route rule table from the vocabulary.
// Rules are evaluated top to bottom; the first match wins.
func NewDetector(v Vocabulary) *Detector {
	return &Detector{
		rules: []detectorRule{
			{
				name:  "update event",
				when:  all(anyOf(v.UpdateVerbs), anyOf(v.EventNouns)),
				route: RouteSchedule,
			},
			{
				name:  "delete event",
				when:  all(anyOf(v.DeleteVerbs), anyOf(v.EventNouns)),
				route: RouteSchedule,
			},
			{
				name:  "delete task",
				when:  all(anyOf(v.DeleteVerbs), anyOf(v.TaskNouns)),
				route: RouteTask,
			},
			{
				name:  "register event",
				when:  all(anyOf(v.EventNouns), anyOf(v.RegisterVerbs)),
				route: RouteSchedule,
			},
			{
				name:  "register task",
				when:  all(anyOf(v.TaskNouns), anyOf(v.RegisterVerbs)),
				route: RouteTask,
			},
			{
				// "show me completed tasks" must not be read as a completion
				// command, so a list-request token or a past-tense completion
				// marker defers to the classifier.
				name: "complete task",
				when: all(
					anyOf(v.TaskNouns),
					anyOf(v.CompleteVerbs),
					not(anyOf(v.ListRequests)),
					not(anyOf(v.CompletedMarkers)),
				),
				route: RouteTask,
			},
		},
	}
}

// Detect returns the explicit route for text, or RouteNone when no rule
// matches and the classifier should decide.
func (d *Detector) Detect(text string) Route {
	for _, r := range d.rules {
		if r.when(text) {
			return r.route
		}
	}
	return RouteNone
}

func anyOf(words []string) predicate {
	return func(text string) bool {
		return ContainsAny(text, words)
	}
}

func all(preds ...predicate) predicate {
	return func(text string) bool {
		for _, p := range preds {
			if !p(text) {
				return false
			}
		}
		return true
	}
}

func not(p predicate) predicate {
	return func(text string) bool {
		return !p(text)
	}
}
