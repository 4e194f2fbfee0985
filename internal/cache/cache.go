package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the dialogue generation cache.
// Only generated conversations are cached; injection runs are never cached.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// GenerationKey generates a cache key for a generation request
func GenerationKey(topic, model string) string {
	hash := sha256.Sum256([]byte(topic + "\x00" + model))
	return "medgarble:gen:v1:" + hex.EncodeToString(hash[:])
}
