package aggregate

import (
	"net/url"
	"strings"
)

// NormalizeURL reduces a URL to its identity for deduplication: scheme,
// leading www, query string, fragment and trailing slash are all ignored.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")

	path := strings.TrimRight(parsed.Path, "/")

	if host == "" {
		// Schemeless or relative input; fall back to the trimmed raw form
		return strings.ToLower(strings.TrimRight(strings.TrimSpace(rawURL), "/"))
	}

	return host + path
}

// Host returns the lowercased host of a URL without port or www prefix
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// MatchesDomain reports whether the URL's host is the given domain or one of
// its subdomains.
func MatchesDomain(rawURL, domain string) bool {
	host := Host(rawURL)
	if host == "" {
		return false
	}
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
