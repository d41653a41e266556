package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores recent gateway responses as JSON blobs so repeated questions
// within the TTL skip the provider round-trip. Caching is best-effort: errors
// degrade to a miss and must never surface to the user.
type Cache interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key builds a deterministic cache key from a response kind and its
// normalized request arguments.
func Key(kind string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
