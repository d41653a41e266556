package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing. Used as a fallback
// when Redis is not configured or unavailable - all operations succeed but
// no actual caching occurs (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always reports a cache miss
func (c *NoOpCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// Set does nothing and always succeeds
func (c *NoOpCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
