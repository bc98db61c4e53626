package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
	"github.com/claimlens/claimlens/internal/worker"
)

// Fetcher retrieves article pages and reduces them to plain text for claim
// extraction. Fetches respect robots.txt, are rate-limited per domain and
// cached; everything downstream of the fetch is cache-free.
type Fetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache // nil when caching is disabled
	cacheTTL   time.Duration
	userAgent  string
	maxBytes   int64
	maxChars   int
}

// NewFetcher creates a new article fetcher
func NewFetcher(httpCfg model.HTTPConfig, searchCfg model.SearchConfig, store cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:   worker.NewLimiter(searchCfg.RatePerSecond, searchCfg.RateBurst),
		store:     store,
		cacheTTL:  cacheTTL,
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		maxChars:  httpCfg.MaxArticleCh,
	}
}

// FetchArticle retrieves the page at rawURL and returns its visible text,
// capped to the configured article length.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.store != nil {
		if cached, found := f.store.Get(key); found {
			return string(cached), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: robots check: %v", model.ErrUpstream, err)
	}
	if !allowed {
		return "", fmt.Errorf("%w: fetching disallowed by robots.txt", model.ErrUpstream)
	}
	if crawlDelay > 0 {
		select {
		case <-time.After(crawlDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", model.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch article: %v", model.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch article: unexpected status %d", model.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read article body: %v", model.ErrUpstream, err)
	}

	text := ExtractArticleText(string(body))
	if text == "" {
		return "", fmt.Errorf("%w: no readable text at %s", model.ErrUpstream, rawURL)
	}
	if f.maxChars > 0 {
		text = model.Truncate(text, f.maxChars)
	}

	if f.store != nil {
		_ = f.store.Set(key, []byte(text), f.cacheTTL)
	}

	return text, nil
}

// skipTags are elements whose text content is never article body
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"nav": true, "header": true, "footer": true, "aside": true,
	"form": true, "iframe": true, "svg": true,
}

// ExtractArticleText reduces an HTML document to its title plus visible
// body text, whitespace-normalized.
func ExtractArticleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var title string
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if n.Data == "title" && title == "" && n.FirstChild != nil {
				title = strings.TrimSpace(n.FirstChild.Data)
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	body := strings.Join(parts, " ")
	body = strings.Join(strings.Fields(body), " ")

	if title != "" && !strings.HasPrefix(body, title) {
		if body == "" {
			return title
		}
		return title + ". " + body
	}
	return body
}
