package model

import "unicode/utf8"

// Claim represents the structured assertion extracted from the input text.
// It is created once per verification run and never mutated afterwards.
type Claim struct {
	MainClaim string   `json:"main_claim"`         // Primary assertion being made
	KeyFacts  []string `json:"key_facts"`          // Supporting verifiable facts, in source order
	Entities  []string `json:"entities,omitempty"` // Named people, organizations, places
	Dates     []string `json:"dates,omitempty"`    // Date or time references as they appeared
}

// Truncate shortens text to at most max bytes without splitting a UTF-8
// rune, backing up to the nearest rune boundary. Used for degenerate
// fallback claims, search queries and fetched article text.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
