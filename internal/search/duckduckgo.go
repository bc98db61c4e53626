package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxRestrictedSites bounds how many allow-list domains get their own query
const maxRestrictedSites = 3

// DuckDuckGoProvider searches via the DuckDuckGo HTML endpoint. No API key
// required, which makes it the always-on general provider.
type DuckDuckGoProvider struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxResults int
}

// NewDuckDuckGoProvider creates a new DuckDuckGo provider
func NewDuckDuckGoProvider(timeout time.Duration, userAgent string, maxResults int) *DuckDuckGoProvider {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &DuckDuckGoProvider{
		baseURL: "https://html.duckduckgo.com/html/",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:  userAgent,
		maxResults: maxResults,
	}
}

// Name returns the provider name
func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

// Search runs one query, or one query per allow-list domain when restricted
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, sites []string) ([]Result, error) {
	if len(sites) == 0 {
		return p.searchOnce(ctx, query, p.maxResults)
	}

	// Restricted mode: one site: query per domain, a couple of hits each
	var results []Result
	var lastErr error
	restricted := sites
	if len(restricted) > maxRestrictedSites {
		restricted = restricted[:maxRestrictedSites]
	}
	for _, site := range restricted {
		siteQuery := fmt.Sprintf("site:%s %s", site, query)
		hits, err := p.searchOnce(ctx, siteQuery, 2)
		if err != nil {
			lastErr = err
			continue
		}
		results = append(results, hits...)
	}
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return results, nil
}

// searchOnce executes a single HTML search request
func (p *DuckDuckGoProvider) searchOnce(ctx context.Context, query string, limit int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	results := parseResultsHTML(string(body))
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// parseResultsHTML walks the DuckDuckGo HTML results page. Result links carry
// the result__a class, snippets the result__snippet class.
func parseResultsHTML(page string) []Result {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var results []Result
	var current *Result

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			if current != nil && current.URL != "" {
				results = append(results, *current)
			}
			current = &Result{
				Title: nodeText(n),
				URL:   resolveRedirect(attrValue(n, "href")),
			}
		}
		if n.Type == html.ElementNode && hasClass(n, "result__snippet") && current != nil {
			current.Snippet = nodeText(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if current != nil && current.URL != "" {
		results = append(results, *current)
	}
	return results
}

// resolveRedirect unwraps the uddg redirect parameter DuckDuckGo wraps result
// links in. Anything unexpected is returned as-is.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	// Query() already percent-decodes the parameter; decoding again would
	// corrupt targets that legitimately contain escapes.
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
