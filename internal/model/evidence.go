package model

// SourceProvider identifies which search path produced an evidence item
type SourceProvider string

const (
	ProviderGeneral   SourceProvider = "general"   // Unrestricted web search
	ProviderFactCheck SourceProvider = "factcheck" // Search restricted to fact-checking sites
	ProviderSecondary SourceProvider = "secondary" // Optional paid search engine
)

// EvidenceItem is a single search result used to support or refute a claim
type EvidenceItem struct {
	Title           string         `json:"title"`
	URL             string         `json:"url"`
	Snippet         string         `json:"snippet"`
	IsFactCheckSite bool           `json:"is_factcheck_site"`
	SourceProvider  SourceProvider `json:"source_provider"`
}

// EvidenceSet is the merged, deduplicated collection of evidence for one run.
// Invariant: no two items share a normalized URL.
type EvidenceSet []EvidenceItem

// Direct returns evidence from the general and secondary providers that is
// not itself a fact-check article.
func (s EvidenceSet) Direct() []EvidenceItem {
	var out []EvidenceItem
	for _, item := range s {
		if !item.IsFactCheckSite && item.SourceProvider != ProviderFactCheck {
			out = append(out, item)
		}
	}
	return out
}

// FactChecks returns evidence produced by the fact-check-restricted query or
// hosted on a known fact-checking domain.
func (s EvidenceSet) FactChecks() []EvidenceItem {
	var out []EvidenceItem
	for _, item := range s {
		if item.IsFactCheckSite || item.SourceProvider == ProviderFactCheck {
			out = append(out, item)
		}
	}
	return out
}
