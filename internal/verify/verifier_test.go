package verify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claimlens/claimlens/internal/model"
)

func testVerifier() *Verifier {
	return NewVerifier(model.DefaultConfig().Scoring)
}

func reputableDirect(n int) model.EvidenceSet {
	set := make(model.EvidenceSet, 0, n)
	hosts := []string{"bbc.com", "npr.org", "theguardian.com", "nytimes.com", "apnews.com"}
	for i := 0; i < n; i++ {
		set = append(set, model.EvidenceItem{
			Title:          "Agreeing source",
			URL:            "https://www." + hosts[i%len(hosts)] + "/article" + string(rune('a'+i)),
			Snippet:        "confirms the claim",
			SourceProvider: model.ProviderGeneral,
		})
	}
	return set
}

func emptyContext() *model.ContextResult {
	return &model.ContextResult{MissingContext: []string{}, Timeline: []model.TimelineEntry{}}
}

func TestVerify_Deterministic(t *testing.T) {
	v := testVerifier()
	claim := &model.Claim{MainClaim: "a claim"}
	evidence := reputableDirect(3)
	ctx := &model.ContextResult{
		MissingContext: []string{"one gap"},
		FullPicture:    "the fuller story",
	}

	scores1, verdict1, conf1 := v.Verify(claim, evidence, ctx)
	scores2, verdict2, conf2 := v.Verify(claim, evidence, ctx)

	if diff := cmp.Diff(scores1, scores2); diff != "" {
		t.Errorf("scores differ between runs:\n%s", diff)
	}
	if verdict1 != verdict2 || conf1 != conf2 {
		t.Errorf("verdict/confidence differ: %v/%v vs %v/%v", verdict1, conf1, verdict2, conf2)
	}
}

func TestVerify_BoundsAlwaysHold(t *testing.T) {
	v := testVerifier()
	claim := &model.Claim{MainClaim: "a claim"}

	contexts := []*model.ContextResult{
		emptyContext(),
		{MissingContext: []string{"a", "b", "c", "d", "e", "f", "g", "h"}, FullPicture: "long story"},
		{MissingContext: []string{"a"}, FullPicture: ""},
	}
	evidences := []model.EvidenceSet{
		nil,
		reputableDirect(1),
		reputableDirect(5),
		{
			{URL: "https://snopes.com/check", IsFactCheckSite: true, SourceProvider: model.ProviderFactCheck},
		},
	}

	for _, ctx := range contexts {
		for _, ev := range evidences {
			scores, _, conf := v.Verify(claim, ev, ctx)
			for name, val := range map[string]float64{
				"source_agreement":     scores.SourceAgreement,
				"reputable_sources":    scores.ReputableSources,
				"context_completeness": scores.ContextCompleteness,
				"fact_check_exists":    scores.FactCheckExists,
				"confidence":           conf,
			} {
				if val < 0 || val > 1 {
					t.Errorf("%s out of bounds: %v (evidence=%d missing=%d)",
						name, val, len(ev), len(ctx.MissingContext))
				}
			}
		}
	}
}

func TestVerify_ReputableAgreementScenario(t *testing.T) {
	// Reputable sources agree, no prior fact-check, nothing missing
	v := testVerifier()
	claim := &model.Claim{MainClaim: "Water boils at 100C at sea level"}

	scores, verdict, conf := v.Verify(claim, reputableDirect(3), emptyContext())

	if verdict != model.VerdictLikelyTrue {
		t.Errorf("expected LIKELY TRUE, got %s (confidence %v)", verdict, conf)
	}
	if scores.FactCheckExists != 0.40 {
		t.Errorf("fact_check_exists should sit at the baseline, got %v", scores.FactCheckExists)
	}
	if scores.ContextCompleteness != 1.0 {
		t.Errorf("empty missing context should score 1.0, got %v", scores.ContextCompleteness)
	}
}

func TestVerify_EmptyEverythingUsesNeutralDefaults(t *testing.T) {
	// No evidence and no context must not collapse to zero confidence
	v := testVerifier()

	scores, _, conf := v.Verify(&model.Claim{MainClaim: "anything"}, nil, emptyContext())

	if scores.SourceAgreement != 0.50 {
		t.Errorf("source_agreement should be the neutral midpoint, got %v", scores.SourceAgreement)
	}
	if scores.FactCheckExists != 0.40 {
		t.Errorf("fact_check_exists should be the baseline, got %v", scores.FactCheckExists)
	}
	if conf == 0 {
		t.Error("confidence must not be zero purely for lack of search results")
	}
}

func TestVerify_MissingContextOverride(t *testing.T) {
	// 4+ missing context items force the cautious verdict at any confidence
	v := testVerifier()
	ctx := &model.ContextResult{
		MissingContext: []string{"a", "b", "c", "d"},
	}

	_, verdict, _ := v.Verify(&model.Claim{MainClaim: "x"}, reputableDirect(5), ctx)
	if verdict != model.VerdictNeedsContext {
		t.Errorf("expected NEEDS MORE CONTEXT override, got %s", verdict)
	}

	_, verdict, _ = v.Verify(&model.Claim{MainClaim: "x"}, nil, ctx)
	if verdict != model.VerdictNeedsContext {
		t.Errorf("expected NEEDS MORE CONTEXT override with no evidence, got %s", verdict)
	}
}

func TestVerify_FactCheckPartitionScoresFull(t *testing.T) {
	v := testVerifier()
	evidence := model.EvidenceSet{
		{URL: "https://snopes.com/fact-check/x", IsFactCheckSite: true, SourceProvider: model.ProviderFactCheck},
	}

	scores, _, _ := v.Verify(&model.Claim{MainClaim: "x"}, evidence, emptyContext())
	if scores.FactCheckExists != 1.0 {
		t.Errorf("existing fact-check should score 1.0, got %v", scores.FactCheckExists)
	}
}

func TestDetermineVerdict_MonotonicInConfidence(t *testing.T) {
	v := testVerifier()
	ctx := &model.ContextResult{MissingContext: []string{"one"}}

	rank := map[model.Verdict]int{
		model.VerdictLikelyFalse:  0,
		model.VerdictNeedsContext: 1,
		model.VerdictLikelyTrue:   2,
	}

	prev := -1
	for conf := 0.0; conf <= 1.0; conf += 0.01 {
		verdict := v.determineVerdict(conf, ctx)
		r, ok := rank[verdict]
		if !ok {
			t.Fatalf("unknown verdict %s", verdict)
		}
		if r < prev {
			t.Fatalf("verdict regressed at confidence %v: %s", conf, verdict)
		}
		prev = r
	}
}

func TestDetermineVerdict_ThresholdTiesAreCautious(t *testing.T) {
	v := testVerifier()
	ctx := emptyContext()

	if got := v.determineVerdict(0.75, ctx); got != model.VerdictNeedsContext {
		t.Errorf("tie at high threshold should be cautious, got %s", got)
	}
	if got := v.determineVerdict(0.35, ctx); got != model.VerdictNeedsContext {
		t.Errorf("tie at low threshold should be cautious, got %s", got)
	}
	if got := v.determineVerdict(0.76, ctx); got != model.VerdictLikelyTrue {
		t.Errorf("just above high threshold should be LIKELY TRUE, got %s", got)
	}
	if got := v.determineVerdict(0.34, ctx); got != model.VerdictLikelyFalse {
		t.Errorf("just below low threshold should be LIKELY FALSE, got %s", got)
	}
}

func TestScoreContextCompleteness_InverseInMissingContext(t *testing.T) {
	v := testVerifier()

	prev := 2.0
	for missing := 0; missing <= 6; missing++ {
		items := make([]string, missing)
		for i := range items {
			items[i] = "gap"
		}
		score := v.scoreContextCompleteness(&model.ContextResult{MissingContext: items})
		if score > prev {
			t.Errorf("completeness increased with more missing context at %d items", missing)
		}
		prev = score
	}

	withPicture := v.scoreContextCompleteness(&model.ContextResult{
		MissingContext: []string{"gap"},
		FullPicture:    "narrative",
	})
	withoutPicture := v.scoreContextCompleteness(&model.ContextResult{
		MissingContext: []string{"gap"},
	})
	if withPicture >= withoutPicture {
		t.Errorf("full picture alongside gaps should lower the score: %v >= %v", withPicture, withoutPicture)
	}
}
