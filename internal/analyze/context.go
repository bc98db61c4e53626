package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

// maxSnippets bounds how much evidence goes into the prompt
const maxSnippets = 5

// ContextAnalyzer asks the LLM capability what the claim leaves out: missing
// context bullets, a full-picture narrative and a timeline of related events.
type ContextAnalyzer struct {
	provider llm.Provider
}

// NewContextAnalyzer creates a new context analyzer
func NewContextAnalyzer(provider llm.Provider) *ContextAnalyzer {
	return &ContextAnalyzer{provider: provider}
}

// contextPayload mirrors the JSON schema the prompt asks for
type contextPayload struct {
	MissingContext []string `json:"missing_context"`
	FullPicture    string   `json:"full_picture"`
	Timeline       []struct {
		Date  string `json:"date"`
		Event string `json:"event"`
	} `json:"timeline"`
}

// Analyze identifies missing context for the claim given the gathered
// evidence. Malformed capability output degrades every sub-field to its
// empty value; only a hard transport failure is returned as an error.
func (a *ContextAnalyzer) Analyze(ctx context.Context, claim *model.Claim, evidence model.EvidenceSet) (*model.ContextResult, error) {
	raw, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You are a helpful assistant that always responds with valid JSON.",
		Prompt:      buildContextPrompt(claim, evidence),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: context analysis: %v", model.ErrUpstream, err)
	}

	result := &model.ContextResult{
		MissingContext: []string{},
		Timeline:       []model.TimelineEntry{},
	}

	var payload contextPayload
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		// Malformed output: empty context, pipeline continues
		return result, nil
	}

	if payload.MissingContext != nil {
		result.MissingContext = payload.MissingContext
	}
	result.FullPicture = strings.TrimSpace(payload.FullPicture)

	for _, entry := range payload.Timeline {
		if strings.TrimSpace(entry.Event) == "" {
			continue
		}
		result.Timeline = append(result.Timeline, model.TimelineEntry{
			Date:  strings.TrimSpace(entry.Date),
			Event: strings.TrimSpace(entry.Event),
		})
	}
	result.Timeline = SortTimeline(result.Timeline)

	return result, nil
}

// buildContextPrompt assembles the claim and the top evidence snippets
func buildContextPrompt(claim *model.Claim, evidence model.EvidenceSet) string {
	var sb strings.Builder

	sb.WriteString("Original claim: ")
	sb.WriteString(claim.MainClaim)
	sb.WriteString("\n\nEvidence found:\n")

	snippets := evidence
	if len(snippets) > maxSnippets {
		snippets = snippets[:maxSnippets]
	}
	if len(snippets) == 0 {
		sb.WriteString("(no evidence found)\n")
	}
	for _, item := range snippets {
		sb.WriteString(fmt.Sprintf("Source: %s\n%s\n\n", item.Title, item.Snippet))
	}

	sb.WriteString(`What important context is missing from the original claim? What should readers know to understand the full story?

Return as JSON with the following structure:

{
    "missing_context": ["specific missing fact 1", "specific missing fact 2"],
    "full_picture": "2-3 sentence balanced summary of the complete story",
    "timeline": [
        {"date": "January 5, 2024", "event": "what happened"}
    ]
}

Important:
- Be specific and factual; 3-5 missing context points at most
- Only include timeline events supported by the evidence
- Leave fields empty rather than speculating`)

	return sb.String()
}
