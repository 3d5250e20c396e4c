package engine

import (
	"encoding/json"
	"regexp"
	"strings"
)

// rawTurn is the unvalidated shape of a model completion.
type rawTurn struct {
	AssistantMessage string          `json:"assistant_message"`
	Status           string          `json:"status"`
	CollectedFields  json.RawMessage `json:"collected_fields"`
	AskFollowup      *bool           `json:"ask_followup"`
}

// braceSpan matches the first greedy {...} span, across newlines.
var braceSpan = regexp.MustCompile(`(?s)\{.*\}`)

// extractTurn runs the two-stage parse pipeline: a whole-string parse
// first, then the first brace span. The boolean tags the result as
// parsed or unparseable; unparseable is a normal branch, not an error.
func extractTurn(completion string) (rawTurn, bool) {
	if t, ok := parseObject(completion); ok {
		return t, true
	}
	if span := braceSpan.FindString(completion); span != "" {
		if t, ok := parseObject(span); ok {
			return t, true
		}
	}
	return rawTurn{}, false
}

// parseObject parses s as a JSON object. Valid JSON that is not an
// object (a bare string, number, null) does not count.
func parseObject(s string) (rawTurn, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return rawTurn{}, false
	}
	var t rawTurn
	if err := json.Unmarshal([]byte(trimmed), &t); err != nil {
		return rawTurn{}, false
	}
	return t, true
}
