package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if l.Allow("https://example.com/page") {
			allowed++
		}
	}

	if allowed != 3 {
		t.Errorf("expected burst of 3 allowed, got %d", allowed)
	}
}

func TestLimiter_IndependentDomains(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.com/x") {
		t.Error("first request to a.com should be allowed")
	}
	if !l.Allow("https://b.com/y") {
		t.Error("first request to b.com should be allowed")
	}
	if l.Allow("https://a.com/z") {
		t.Error("second immediate request to a.com should be limited")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.01, 1)

	// Drain the burst
	_ = l.Allow("https://slow.com/")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://slow.com/"); err == nil {
		t.Error("expected context deadline error while waiting")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://bad-url") {
		t.Error("invalid URL should not be allowed")
	}
}
