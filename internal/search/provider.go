package search

import "context"

// Result is one ranked search hit: the entire collaborator contract with a
// search backend is (title, url, snippet).
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Provider is a single search backend. An error return means the provider
// contributed nothing this run; the aggregator degrades it to zero results
// and never fails the run over it.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search runs one query. When sites is non-empty the query is restricted
	// to those domains.
	Search(ctx context.Context, query string, sites []string) ([]Result, error)
}
