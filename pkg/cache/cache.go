package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer.
// Implementations: Redis (production), Noop (tests, cache disabled).
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}

// Noop satisfies Cache without storing anything.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (*Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (*Noop) Delete(ctx context.Context, keys ...string) error { return nil }

func (*Noop) Ping(ctx context.Context) error { return nil }
