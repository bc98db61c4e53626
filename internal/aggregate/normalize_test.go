package aggregate

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"scheme insensitive", "http://example.com/a", "https://example.com/a", true},
		{"trailing slash", "https://example.com/a/", "https://example.com/a", true},
		{"query string", "https://example.com/a?utm_source=x", "https://example.com/a", true},
		{"www prefix", "https://www.example.com/a", "https://example.com/a", true},
		{"case of host", "https://EXAMPLE.com/a", "https://example.com/a", true},
		{"different paths", "https://example.com/a", "https://example.com/b", false},
		{"different hosts", "https://one.com/a", "https://two.com/a", false},
		{"path case preserved", "https://example.com/Article", "https://example.com/article", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.a) == NormalizeURL(tt.b)
			if got != tt.same {
				t.Errorf("NormalizeURL(%q)=%q, NormalizeURL(%q)=%q, same=%v want %v",
					tt.a, NormalizeURL(tt.a), tt.b, NormalizeURL(tt.b), got, tt.same)
			}
		})
	}
}

func TestMatchesDomain(t *testing.T) {
	if !MatchesDomain("https://www.snopes.com/fact-check/x", "snopes.com") {
		t.Error("www subdomain should match")
	}
	if !MatchesDomain("https://blog.snopes.com/x", "snopes.com") {
		t.Error("subdomain should match")
	}
	if MatchesDomain("https://notsnopes.com/x", "snopes.com") {
		t.Error("suffix of a different host must not match")
	}
	if MatchesDomain("", "snopes.com") {
		t.Error("empty URL must not match")
	}
}
