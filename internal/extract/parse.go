package extract

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"
)

// parseObject reads the JSON object out of a raw model reply. Models
// occasionally wrap the object in prose or a markdown fence, and sometimes
// emit slightly broken JSON, so parsing is strict first, then repaired.
func parseObject(raw string, v any) error {
	jsonStr := extractJSON(raw)
	if err := json.Unmarshal([]byte(jsonStr), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(jsonStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedJSON, truncate(raw, 120))
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedJSON, truncate(raw, 120))
	}
	return nil
}

// extractJSON narrows a reply to its outermost brace-delimited object.
func extractJSON(text string) string {
	start := 0
	if idx := findJSONStart(text); idx >= 0 {
		start = idx
	}

	end := len(text)
	if idx := findJSONEnd(text, start); idx >= 0 {
		end = idx + 1
	}

	return text[start:end]
}

func findJSONStart(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			return i
		}
	}
	return -1
}

func findJSONEnd(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// truncate cuts s to at most maxLen bytes, backing up to a rune boundary so
// the result stays valid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
