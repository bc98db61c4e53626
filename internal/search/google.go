package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GoogleProvider searches via the Google Custom Search JSON API. This is the
// optional paid secondary provider; it only exists when credentials are set.
type GoogleProvider struct {
	apiKey     string
	cseID      string
	baseURL    string
	httpClient *http.Client
	maxResults int
}

// googleResponse is the subset of the API response we consume
type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewGoogleProvider creates a new Google Custom Search provider
func NewGoogleProvider(apiKey, cseID string, timeout time.Duration, maxResults int) (*GoogleProvider, error) {
	if apiKey == "" || cseID == "" {
		return nil, fmt.Errorf("Google API key and CSE ID are required")
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	return &GoogleProvider{
		apiKey:  apiKey,
		cseID:   cseID,
		baseURL: "https://www.googleapis.com/customsearch/v1",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxResults: maxResults,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Search runs one query through the Custom Search API
func (p *GoogleProvider) Search(ctx context.Context, query string, sites []string) ([]Result, error) {
	if len(sites) > 0 {
		// The CSE API takes a single siteSearch value; fold extra domains
		// into the query itself.
		query = fmt.Sprintf("%s %s", siteClause(sites), query)
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(p.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1_000_000))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("API error (%d): %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// siteClause builds an OR-joined site restriction for the query string
func siteClause(sites []string) string {
	clauses := make([]string, 0, len(sites))
	for _, s := range sites {
		clauses = append(clauses, "site:"+s)
	}
	return strings.Join(clauses, " OR ")
}
