package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

// stubProvider returns a canned response or error
type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Name() string                       { return "stub" }
func (s *stubProvider) IsAvailable(context.Context) bool   { return true }
func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return s.response, s.err
}

func TestExtract_WellFormedResponse(t *testing.T) {
	provider := &stubProvider{
		response: "```json\n" + `{
			"main_claim": "The city banned cars in 2020",
			"key_facts": ["ban applies to the old town only"],
			"entities": ["City Council"],
			"dates_mentioned": ["2020"]
		}` + "\n```",
	}
	extractor := NewClaimExtractor(provider)

	claim, err := extractor.Extract(context.Background(), "some input text")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := &model.Claim{
		MainClaim: "The city banned cars in 2020",
		KeyFacts:  []string{"ban applies to the old town only"},
		Entities:  []string{"City Council"},
		Dates:     []string{"2020"},
	}
	if diff := cmp.Diff(want, claim); diff != "" {
		t.Errorf("claim mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MalformedResponseDegrades(t *testing.T) {
	provider := &stubProvider{response: "I am not able to produce JSON today."}
	extractor := NewClaimExtractor(provider)

	input := "Scientists announced a new exoplanet discovery yesterday."
	claim, err := extractor.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract should degrade, not fail: %v", err)
	}

	if claim.MainClaim != input {
		t.Errorf("expected fallback main_claim %q, got %q", input, claim.MainClaim)
	}
	if claim.KeyFacts == nil || claim.Entities == nil || claim.Dates == nil {
		t.Error("degraded claim must have empty, non-nil collections")
	}
}

func TestExtract_FallbackTruncatesLongInput(t *testing.T) {
	provider := &stubProvider{response: "{}"}
	extractor := NewClaimExtractor(provider)

	input := strings.Repeat("x", 500)
	claim, err := extractor.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(claim.MainClaim) != fallbackClaimLen {
		t.Errorf("expected fallback claim of %d chars, got %d", fallbackClaimLen, len(claim.MainClaim))
	}
}

func TestExtract_NonEmptyMainClaim(t *testing.T) {
	// Property: for all non-empty input, Extract returns a non-empty main claim
	responses := []string{
		`{"main_claim": "ok"}`,
		`{"main_claim": ""}`,
		`{}`,
		`garbage`,
	}

	for _, resp := range responses {
		extractor := NewClaimExtractor(&stubProvider{response: resp})
		claim, err := extractor.Extract(context.Background(), "non-empty input")
		if err != nil {
			t.Fatalf("Extract failed for %q: %v", resp, err)
		}
		if claim.MainClaim == "" {
			t.Errorf("empty main_claim for provider response %q", resp)
		}
	}
}

func TestExtractFromImage_WellFormedResponse(t *testing.T) {
	provider := &stubProvider{
		response: `{"main_claim": "The poster says turnout was 90%", "key_facts": ["90% turnout"], "entities": [], "dates_mentioned": []}`,
	}
	extractor := NewClaimExtractor(provider)

	claim, err := extractor.ExtractFromImage(context.Background(), "https://example.com/poster.png")
	if err != nil {
		t.Fatalf("ExtractFromImage failed: %v", err)
	}
	if claim.MainClaim != "The poster says turnout was 90%" {
		t.Errorf("unexpected main claim: %q", claim.MainClaim)
	}
}

func TestExtractFromImage_MalformedResponseIsUpstreamError(t *testing.T) {
	// No raw text exists to fall back on, so this surfaces instead of degrading
	provider := &stubProvider{response: "not json at all"}
	extractor := NewClaimExtractor(provider)

	_, err := extractor.ExtractFromImage(context.Background(), "https://example.com/poster.png")
	if !errors.Is(err, model.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestExtractFromImage_EmptyClaimIsUpstreamError(t *testing.T) {
	provider := &stubProvider{response: `{"main_claim": ""}`}
	extractor := NewClaimExtractor(provider)

	_, err := extractor.ExtractFromImage(context.Background(), "https://example.com/poster.png")
	if !errors.Is(err, model.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestExtract_TransportErrorSurfaces(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	extractor := NewClaimExtractor(provider)

	_, err := extractor.Extract(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error on provider transport failure")
	}
	if !errors.Is(err, model.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}
