package verify

import (
	"math"

	"github.com/claimlens/claimlens/internal/aggregate"
	"github.com/claimlens/claimlens/internal/model"
)

// Verifier turns the claim, evidence set and context analysis into four
// sub-scores, a weighted confidence value and a categorical verdict.
//
// This stage is a pure function of its inputs: no network, no clock, no
// randomness. Identical inputs always produce identical output.
type Verifier struct {
	cfg model.ScoringConfig
}

// NewVerifier creates a new verifier
func NewVerifier(cfg model.ScoringConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

// Verify computes the sub-scores, combines them with the configured weights
// and maps the result to a verdict.
func (v *Verifier) Verify(claim *model.Claim, evidence model.EvidenceSet, ctx *model.ContextResult) (model.Scores, model.Verdict, float64) {
	scores := model.Scores{
		SourceAgreement:     v.scoreAgreement(evidence.Direct()),
		ReputableSources:    v.scoreReputableSources(evidence),
		ContextCompleteness: v.scoreContextCompleteness(ctx),
		FactCheckExists:     v.scoreFactCheckExists(evidence.FactChecks()),
	}

	confidence := clamp(
		scores.SourceAgreement*v.cfg.WeightSourceAgreement +
			scores.ReputableSources*v.cfg.WeightReputableSources +
			scores.ContextCompleteness*v.cfg.WeightContextCompleteness +
			scores.FactCheckExists*v.cfg.WeightFactCheckExists)
	confidence = round2(confidence)

	verdict := v.determineVerdict(confidence, ctx)

	return scores, verdict, confidence
}

// scoreAgreement approximates how much the direct evidence supports the
// claim from the amount of corroboration found. No direct evidence at all
// scores the neutral midpoint: lack of search results is not disagreement.
func (v *Verifier) scoreAgreement(direct []model.EvidenceItem) float64 {
	switch {
	case len(direct) == 0:
		return clamp(v.cfg.NeutralAgreement)
	case len(direct) >= 3:
		return 0.7
	case len(direct) == 2:
		return 0.5
	default:
		return 0.3
	}
}

// scoreReputableSources is the fraction of all evidence hosted on a
// recognized-reputable domain, lightly boosted, bounded to [0,1].
func (v *Verifier) scoreReputableSources(evidence model.EvidenceSet) float64 {
	if len(evidence) == 0 {
		return 0
	}

	reputable := 0
	for _, item := range evidence {
		for _, domain := range v.cfg.ReputableDomains {
			if aggregate.MatchesDomain(item.URL, domain) {
				reputable++
				break
			}
		}
	}

	score := float64(reputable) / float64(len(evidence))
	return clamp(score * 1.2)
}

// scoreContextCompleteness is inverse in the amount of missing context: a
// claim with nothing missing scores the maximum, every identified gap
// lowers it, and a non-empty full-picture narrative alongside gaps lowers
// it a little further.
func (v *Verifier) scoreContextCompleteness(ctx *model.ContextResult) float64 {
	missing := len(ctx.MissingContext)
	if missing == 0 {
		return 1.0
	}

	score := 1.0 - 0.2*float64(missing)
	if ctx.FullPicture != "" {
		score -= 0.1
	}
	return clamp(score)
}

// scoreFactCheckExists is 1.0 when prior fact-checks were found, otherwise
// a fixed baseline: absence of a fact-check is weak evidence, not proof of
// falsehood.
func (v *Verifier) scoreFactCheckExists(factChecks []model.EvidenceItem) float64 {
	if len(factChecks) > 0 {
		return 1.0
	}
	return clamp(v.cfg.FactCheckBaseline)
}

// determineVerdict maps confidence and the missing-context signal to a
// label. Too much missing context forces the cautious verdict regardless of
// confidence, and exact threshold ties also resolve to it.
func (v *Verifier) determineVerdict(confidence float64, ctx *model.ContextResult) model.Verdict {
	if v.cfg.MaxMissingContext > 0 && len(ctx.MissingContext) >= v.cfg.MaxMissingContext {
		return model.VerdictNeedsContext
	}

	switch {
	case confidence > v.cfg.HighConfidence:
		return model.VerdictLikelyTrue
	case confidence < v.cfg.LowConfidence:
		return model.VerdictLikelyFalse
	default:
		return model.VerdictNeedsContext
	}
}

func clamp(x float64) float64 {
	return math.Min(1.0, math.Max(0.0, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
