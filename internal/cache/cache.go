// Package cache provides the local caches behind the summarize and sync
// commands: an in-process memory cache and a persistent disk cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from the input text
func CacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "kamerdata:v1:" + hex.EncodeToString(hash[:])
}
