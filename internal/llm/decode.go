package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// DecodeJSON extracts a JSON object from a raw completion and unmarshals it
// into v. Models wrap JSON in markdown fences or prose more often than not, so
// this strips fences first and falls back to the outermost brace pair.
//
// A decode failure is a malformed-output condition, not a transport error:
// callers fill default fields and continue.
func DecodeJSON(raw string, v interface{}) error {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, "```json") {
		parts := strings.SplitN(text, "```json", 2)
		text = strings.SplitN(parts[1], "```", 2)[0]
	} else if strings.Contains(text, "```") {
		parts := strings.SplitN(text, "```", 3)
		if len(parts) >= 2 {
			text = parts[1]
		}
	}
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	// Last resort: grab the widest {...} span anywhere in the response
	if match := jsonObjectPattern.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), v); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON object in response")
}
