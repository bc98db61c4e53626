package model

// TimelineEntry is a single dated event related to the claim
type TimelineEntry struct {
	Date  string `json:"date"`  // Date as reported by the source, not normalized
	Event string `json:"event"` // What happened
}

// ContextResult holds the missing-context analysis for a claim.
// Any field may be empty when the capability output was malformed; the
// pipeline continues either way.
type ContextResult struct {
	MissingContext []string        `json:"missing_context"`
	FullPicture    string          `json:"full_picture"`
	Timeline       []TimelineEntry `json:"timeline"`
}
