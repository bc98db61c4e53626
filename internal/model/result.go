package model

// Verdict is the final categorical judgment for a claim
type Verdict string

const (
	VerdictLikelyTrue   Verdict = "LIKELY TRUE"
	VerdictLikelyFalse  Verdict = "LIKELY FALSE OR MISLEADING"
	VerdictNeedsContext Verdict = "NEEDS MORE CONTEXT"
)

// Scores holds the four sub-scores behind the confidence value.
// Every field is always present and always within [0, 1].
type Scores struct {
	SourceAgreement     float64 `json:"source_agreement"`
	ReputableSources    float64 `json:"reputable_sources"`
	ContextCompleteness float64 `json:"context_completeness"`
	FactCheckExists     float64 `json:"fact_check_exists"`
}

// EvidenceBreakdown partitions the evidence set for presentation
type EvidenceBreakdown struct {
	DirectEvidence     []EvidenceItem `json:"direct_evidence"`
	ExistingFactChecks []EvidenceItem `json:"existing_factchecks"`
}

// ContextSummary is the context portion of the public result contract
type ContextSummary struct {
	MissingContext []string `json:"missing_context"`
	FullPicture    string   `json:"full_picture"`
}

// VerificationResult is the terminal artifact of a verification run.
// Field names are a public contract; they map directly to the HTTP response.
type VerificationResult struct {
	Verdict    Verdict           `json:"verdict"`
	Confidence float64           `json:"confidence"`
	MainClaim  string            `json:"main_claim"`
	KeyFacts   []string          `json:"key_facts"`
	Entities   []string          `json:"entities,omitempty"`
	Dates      []string          `json:"dates,omitempty"`
	Context    ContextSummary    `json:"context"`
	Timeline   []TimelineEntry   `json:"timeline"`
	Evidence   EvidenceBreakdown `json:"evidence"`
	Scores     Scores            `json:"scores"`
}

// NewVerificationResult assembles the terminal artifact from the pipeline
// stage outputs.
func NewVerificationResult(claim *Claim, evidence EvidenceSet, ctx *ContextResult, scores Scores, verdict Verdict, confidence float64) *VerificationResult {
	direct := evidence.Direct()
	factChecks := evidence.FactChecks()
	if direct == nil {
		direct = []EvidenceItem{}
	}
	if factChecks == nil {
		factChecks = []EvidenceItem{}
	}

	missing := ctx.MissingContext
	if missing == nil {
		missing = []string{}
	}
	timeline := ctx.Timeline
	if timeline == nil {
		timeline = []TimelineEntry{}
	}
	keyFacts := claim.KeyFacts
	if keyFacts == nil {
		keyFacts = []string{}
	}

	return &VerificationResult{
		Verdict:    verdict,
		Confidence: confidence,
		MainClaim:  claim.MainClaim,
		KeyFacts:   keyFacts,
		Entities:   claim.Entities,
		Dates:      claim.Dates,
		Context: ContextSummary{
			MissingContext: missing,
			FullPicture:    ctx.FullPicture,
		},
		Timeline: timeline,
		Evidence: EvidenceBreakdown{
			DirectEvidence:     direct,
			ExistingFactChecks: factChecks,
		},
		Scores: scores,
	}
}
