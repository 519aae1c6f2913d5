package intent

// Vocabulary holds the keyword tables the Detector and Classifier match
// against. It is immutable configuration handed to the constructors, not
// process-wide state, so tests can run with alternate word lists.
type Vocabulary struct {
	UpdateVerbs      []string
	DeleteVerbs      []string
	RegisterVerbs    []string
	CompleteVerbs    []string
	ListRequests     []string
	CompletedMarkers []string
	EventNouns       []string
	TaskNouns        []string
}

// DefaultVocabulary returns the production Japanese keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		UpdateVerbs:   []string{"変更", "更新"},
		DeleteVerbs:   []string{"削除", "消して"},
		RegisterVerbs: []string{"登録", "追加", "入れて"},
		CompleteVerbs: []string{"完了"},
		ListRequests:  []string{"一覧", "確認", "表示", "見せて"},
		// Past-tense completion markers: their presence means the message asks
		// about already-completed tasks, never to complete one.
		CompletedMarkers: []string{"完了済", "完了した"},
		EventNouns:       []string{"予定"},
		TaskNouns:        []string{"タスク", "やること"},
	}
}
