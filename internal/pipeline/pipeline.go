package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/aggregate"
	"github.com/claimlens/claimlens/internal/analyze"
	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/metrics"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/verify"
)

// Pipeline orchestrates the four verification stages: claim extraction,
// evidence aggregation, context analysis and deterministic verification.
// It is stateless across runs and safe for concurrent use.
type Pipeline struct {
	fetcher    *Fetcher
	extractor  *extract.ClaimExtractor
	aggregator *aggregate.Aggregator
	analyzer   *analyze.ContextAnalyzer
	verifier   *verify.Verifier
	log        *zap.Logger
}

// NewPipeline wires the stages from configuration
func NewPipeline(cfg *model.Config, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	general := search.NewDuckDuckGoProvider(cfg.Search.ProviderTimeout, cfg.HTTP.UserAgent, cfg.Search.PerQueryResults)

	var secondary search.Provider
	if cfg.Search.GoogleAPIKey != "" && cfg.Search.GoogleCSEID != "" {
		google, err := search.NewGoogleProvider(cfg.Search.GoogleAPIKey, cfg.Search.GoogleCSEID, cfg.Search.ProviderTimeout, cfg.Search.PerQueryResults)
		if err != nil {
			return nil, fmt.Errorf("init Google provider: %w", err)
		}
		secondary = google
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	extractor := extract.NewClaimExtractor(provider)
	extractor.VisionModel = cfg.LLM.VisionModel

	return &Pipeline{
		fetcher:    NewFetcher(cfg.HTTP, cfg.Search, store, cfg.Cache.TTL),
		extractor:  extractor,
		aggregator: aggregate.NewAggregator(general, secondary, cfg.Search, log),
		analyzer:   analyze.NewContextAnalyzer(provider),
		verifier:   verify.NewVerifier(cfg.Scoring),
		log:        log,
	}, nil
}

// Check runs the full verification pipeline for one input and returns the
// terminal result artifact.
func (p *Pipeline) Check(ctx context.Context, in Input) (*model.VerificationResult, error) {
	inputType := in.kind()
	start := time.Now()

	result, err := p.check(ctx, in, inputType)
	if err != nil {
		metrics.VerificationErrorsTotal.WithLabelValues(inputType, errorType(err)).Inc()
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.VerificationsTotal.WithLabelValues(inputType, string(result.Verdict)).Inc()
	metrics.VerificationDuration.WithLabelValues(inputType).Observe(elapsed.Seconds())

	p.log.Info("verification complete",
		zap.String("input_type", inputType),
		zap.String("verdict", string(result.Verdict)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("evidence", len(result.Evidence.DirectEvidence)+len(result.Evidence.ExistingFactChecks)),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

func (p *Pipeline) check(ctx context.Context, in Input, inputType string) (*model.VerificationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	claim, err := p.extractClaim(ctx, in)
	if err != nil {
		return nil, err
	}
	p.log.Debug("claim extracted", zap.String("main_claim", claim.MainClaim))

	evidence, err := p.aggregator.Gather(ctx, claim)
	if err != nil {
		return nil, err
	}

	contextResult, err := p.analyzer.Analyze(ctx, claim, evidence)
	if err != nil {
		return nil, err
	}

	scores, verdict, confidence := p.verifier.Verify(claim, evidence, contextResult)

	return model.NewVerificationResult(claim, evidence, contextResult, scores, verdict, confidence), nil
}

// CheckText verifies a raw claim or article text
func (p *Pipeline) CheckText(ctx context.Context, text string) (*model.VerificationResult, error) {
	return p.Check(ctx, Input{Text: text})
}

// CheckURL fetches an article and verifies its main claim
func (p *Pipeline) CheckURL(ctx context.Context, url string) (*model.VerificationResult, error) {
	return p.Check(ctx, Input{URL: url})
}

// extractClaim resolves the input into a structured claim. Text goes
// straight to the extractor, URLs are fetched and reduced to article text
// first, images go through the vision path.
func (p *Pipeline) extractClaim(ctx context.Context, in Input) (*model.Claim, error) {
	switch {
	case in.ImageURL != "":
		return p.extractor.ExtractFromImage(ctx, in.ImageURL)
	case in.URL != "":
		text, err := p.fetcher.FetchArticle(ctx, in.URL)
		if err != nil {
			return nil, err
		}
		return p.extractor.Extract(ctx, text)
	default:
		return p.extractor.Extract(ctx, in.Text)
	}
}

// kind labels the input for logs and metrics
func (in Input) kind() string {
	switch {
	case in.ImageURL != "":
		return "image"
	case in.URL != "":
		return "url"
	default:
		return "text"
	}
}

// errorType maps a pipeline error to a low-cardinality metrics label
func errorType(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, model.ErrUpstream):
		return "upstream"
	default:
		return "other"
	}
}
