package aggregate

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/claimlens/claimlens/internal/metrics"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/search"
)

// maxQueryLen bounds the query built from the claim and its key facts
const maxQueryLen = 200

// Aggregator fans one claim out to every configured evidence provider,
// waits for all of them within their individual timeouts and merges the
// results into a single deduplicated evidence set.
//
// A provider that errors or times out contributes zero items; partial
// evidence is fine, no evidence is fine, failing the run is not.
type Aggregator struct {
	general   search.Provider
	secondary search.Provider // nil unless paid search credentials are set
	cfg       model.SearchConfig
	log       *zap.Logger
}

// NewAggregator creates a new evidence aggregator
func NewAggregator(general, secondary search.Provider, cfg model.SearchConfig, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		general:   general,
		secondary: secondary,
		cfg:       cfg,
		log:       log,
	}
}

// Gather queries all configured providers concurrently and merges the
// results. The returned set never contains two items with the same
// normalized URL and never exceeds the configured cap.
func (a *Aggregator) Gather(ctx context.Context, claim *model.Claim) (model.EvidenceSet, error) {
	query := buildQuery(claim)

	var (
		mu        sync.Mutex
		factCheck []search.Result
		general   []search.Result
		secondary []search.Result
	)

	g := new(errgroup.Group)

	// Fact-check-restricted query, biased toward authoritative sources
	g.Go(func() error {
		hits := a.runQuery(ctx, a.general, query, a.cfg.FactCheckSites)
		mu.Lock()
		factCheck = hits
		mu.Unlock()
		return nil
	})

	// Unrestricted query
	g.Go(func() error {
		hits := a.runQuery(ctx, a.general, query, nil)
		mu.Lock()
		general = hits
		mu.Unlock()
		return nil
	})

	// Optional paid secondary provider
	if a.secondary != nil {
		g.Go(func() error {
			hits := a.runQuery(ctx, a.secondary, query, nil)
			mu.Lock()
			secondary = hits
			mu.Unlock()
			return nil
		})
	}

	// Tasks swallow their own failures, so the join itself cannot error
	_ = g.Wait()

	set := a.merge(factCheck, general, secondary)

	a.log.Debug("evidence gathered",
		zap.String("query", query),
		zap.Int("factcheck", len(factCheck)),
		zap.Int("general", len(general)),
		zap.Int("secondary", len(secondary)),
		zap.Int("merged", len(set)),
	)

	return set, nil
}

// runQuery executes one provider query under its own timeout. Failures are
// logged and degraded to an empty slice.
func (a *Aggregator) runQuery(ctx context.Context, provider search.Provider, query string, sites []string) []search.Result {
	queryCtx := ctx
	if a.cfg.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, a.cfg.ProviderTimeout)
		defer cancel()
	}

	hits, err := provider.Search(queryCtx, query, sites)
	if err != nil {
		metrics.EvidenceQueriesTotal.WithLabelValues(provider.Name(), "error").Inc()
		a.log.Warn("evidence provider failed",
			zap.String("provider", provider.Name()),
			zap.Bool("restricted", len(sites) > 0),
			zap.Error(err),
		)
		return nil
	}
	metrics.EvidenceQueriesTotal.WithLabelValues(provider.Name(), "ok").Inc()
	return hits
}

// merge concatenates results in provider-priority order (fact-check results
// first so truncation favors authoritative sources), tags them, dedupes by
// normalized URL and caps the total.
func (a *Aggregator) merge(factCheck, general, secondary []search.Result) model.EvidenceSet {
	limit := a.cfg.MaxResults
	if limit <= 0 {
		limit = 10
	}

	set := make(model.EvidenceSet, 0, limit)
	seen := make(map[string]bool)

	add := func(hits []search.Result, provider model.SourceProvider, restricted bool) {
		for _, hit := range hits {
			if hit.URL == "" || len(set) >= limit {
				continue
			}
			key := NormalizeURL(hit.URL)
			if seen[key] {
				continue
			}
			seen[key] = true

			set = append(set, model.EvidenceItem{
				Title:           hit.Title,
				URL:             hit.URL,
				Snippet:         hit.Snippet,
				SourceProvider:  provider,
				IsFactCheckSite: restricted || a.onFactCheckDomain(hit.URL),
			})
		}
	}

	add(factCheck, model.ProviderFactCheck, true)
	add(general, model.ProviderGeneral, false)
	add(secondary, model.ProviderSecondary, false)

	return set
}

// onFactCheckDomain reports whether a result URL lands on the allow-list
// even though it came from an unrestricted query.
func (a *Aggregator) onFactCheckDomain(rawURL string) bool {
	for _, domain := range a.cfg.FactCheckSites {
		if MatchesDomain(rawURL, domain) {
			return true
		}
	}
	return false
}

// buildQuery combines the main claim with its first key fact, within a
// length budget search backends tolerate.
func buildQuery(claim *model.Claim) string {
	query := strings.TrimSpace(claim.MainClaim)
	for _, fact := range claim.KeyFacts {
		fact = strings.TrimSpace(fact)
		if fact == "" {
			continue
		}
		if len(query)+len(fact)+1 > maxQueryLen {
			break
		}
		query += " " + fact
		break // One fact is enough; more just dilutes ranking
	}
	return model.Truncate(query, maxQueryLen)
}
