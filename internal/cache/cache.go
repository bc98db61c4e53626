package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching fetched articles and search results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from an arbitrary identifier such as a URL
// or a search query.
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}
