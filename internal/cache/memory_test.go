package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("Get = %q, %v; want \"v\", true", got, found)
	}
}

func TestMemoryCache_MissAndDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("expected miss for absent key")
	}

	_ = c.Set("k", []byte("v"), time.Minute)
	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("expected miss after Delete")
	}
}

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("https://example.com/article")
	b := Key("https://example.com/article")
	c := Key("https://example.com/other")

	if a != b {
		t.Error("same input must produce the same key")
	}
	if a == c {
		t.Error("different inputs must produce different keys")
	}
}
