package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoogle_ParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "k" || q.Get("cx") != "c" {
			t.Errorf("credentials not passed: key=%q cx=%q", q.Get("key"), q.Get("cx"))
		}
		fmt.Fprint(w, `{"items": [
			{"title": "First", "link": "https://a.com/1", "snippet": "alpha"},
			{"title": "Second", "link": "https://b.com/2", "snippet": "beta"}
		]}`)
	}))
	defer server.Close()

	p, err := NewGoogleProvider("k", "c", 5*time.Second, 3)
	if err != nil {
		t.Fatalf("NewGoogleProvider failed: %v", err)
	}
	p.baseURL = server.URL

	results, err := p.Search(context.Background(), "query", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "First" || results[0].URL != "https://a.com/1" || results[0].Snippet != "alpha" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestGoogle_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quota exceeded"}}`)
	}))
	defer server.Close()

	p, err := NewGoogleProvider("k", "c", 5*time.Second, 3)
	if err != nil {
		t.Fatalf("NewGoogleProvider failed: %v", err)
	}
	p.baseURL = server.URL

	if _, err := p.Search(context.Background(), "query", nil); err == nil {
		t.Error("expected error on quota failure")
	}
}

func TestGoogle_RequiresCredentials(t *testing.T) {
	if _, err := NewGoogleProvider("", "", time.Second, 3); err == nil {
		t.Error("expected error without credentials")
	}
}
