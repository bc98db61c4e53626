package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

// fallbackClaimLen caps the degenerate main claim built from raw input
const fallbackClaimLen = 200

// ClaimExtractor turns normalized input text into a structured claim
type ClaimExtractor struct {
	provider llm.Provider

	// VisionModel, when set, overrides the configured model for image
	// extraction; text extraction always uses the default.
	VisionModel string
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider) *ClaimExtractor {
	return &ClaimExtractor{provider: provider}
}

// claimPayload mirrors the JSON schema the prompt asks for
type claimPayload struct {
	MainClaim string   `json:"main_claim"`
	KeyFacts  []string `json:"key_facts"`
	Entities  []string `json:"entities"`
	Dates     []string `json:"dates_mentioned"`
}

// Extract extracts the main claim, key facts, entities and dates from text.
//
// The pipeline always gets a Claim back: malformed or incomplete capability
// output degrades to empty fields with the main claim falling back to a
// truncation of the input. Only a hard transport failure of the provider is
// returned as an error.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) (*model.Claim, error) {
	raw, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You are a helpful assistant that always responds with valid JSON.",
		Prompt:      buildClaimPrompt(text),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: claim extraction: %v", model.ErrUpstream, err)
	}

	var payload claimPayload
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		// Malformed output: degrade, never abort
		return degenerateClaim(text), nil
	}

	claim := &model.Claim{
		MainClaim: strings.TrimSpace(payload.MainClaim),
		KeyFacts:  payload.KeyFacts,
		Entities:  payload.Entities,
		Dates:     payload.Dates,
	}

	if claim.MainClaim == "" {
		claim.MainClaim = model.Truncate(text, fallbackClaimLen)
	}
	if claim.KeyFacts == nil {
		claim.KeyFacts = []string{}
	}
	if claim.Entities == nil {
		claim.Entities = []string{}
	}
	if claim.Dates == nil {
		claim.Dates = []string{}
	}

	return claim, nil
}

// ExtractFromImage extracts the claim directly from an image using a
// vision-capable provider. Unlike text extraction there is no raw input to
// fall back on, so malformed capability output is surfaced as an upstream
// failure rather than degraded.
func (e *ClaimExtractor) ExtractFromImage(ctx context.Context, imageURL string) (*model.Claim, error) {
	raw, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You are a helpful assistant that always responds with valid JSON.",
		Prompt:      buildImageClaimPrompt(),
		ImageURL:    imageURL,
		Model:       e.VisionModel,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: image claim extraction: %v", model.ErrUpstream, err)
	}

	var payload claimPayload
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: image claim extraction: unusable response", model.ErrUpstream)
	}

	claim := &model.Claim{
		MainClaim: strings.TrimSpace(payload.MainClaim),
		KeyFacts:  payload.KeyFacts,
		Entities:  payload.Entities,
		Dates:     payload.Dates,
	}
	if claim.MainClaim == "" {
		return nil, fmt.Errorf("%w: image claim extraction: no claim found", model.ErrUpstream)
	}
	if claim.KeyFacts == nil {
		claim.KeyFacts = []string{}
	}
	if claim.Entities == nil {
		claim.Entities = []string{}
	}
	if claim.Dates == nil {
		claim.Dates = []string{}
	}

	return claim, nil
}

// degenerateClaim builds the minimal usable claim from raw input
func degenerateClaim(text string) *model.Claim {
	return &model.Claim{
		MainClaim: model.Truncate(text, fallbackClaimLen),
		KeyFacts:  []string{},
		Entities:  []string{},
		Dates:     []string{},
	}
}

// buildClaimPrompt constructs the extraction prompt
func buildClaimPrompt(text string) string {
	return fmt.Sprintf(`Extract the main factual claims from this text that can be verified.
Return as JSON with the following structure:

{
    "main_claim": "primary claim being made",
    "key_facts": ["specific fact 1", "specific fact 2"],
    "entities": ["person1", "organization1", "location1"],
    "dates_mentioned": ["date1", "date2"]
}

Text to analyze:
%s

Important:
- Extract only verifiable factual claims
- Include all named entities (people, organizations, places)
- Extract any dates or time references
- Keep the main_claim concise and clear`, text)
}

// buildImageClaimPrompt constructs the extraction prompt for image input
func buildImageClaimPrompt() string {
	return `Look at this image and extract the main factual claims it makes that can be verified.
Read any text visible in the image and describe what it asserts.
Return as JSON with the following structure:

{
    "main_claim": "primary claim being made",
    "key_facts": ["specific fact 1", "specific fact 2"],
    "entities": ["person1", "organization1", "location1"],
    "dates_mentioned": ["date1", "date2"]
}

Important:
- Extract only verifiable factual claims
- Include all named entities (people, organizations, places)
- Extract any dates or time references
- Keep the main_claim concise and clear`
}
