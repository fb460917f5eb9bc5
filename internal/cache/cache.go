package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheDisabled is returned when cache operations are attempted but
// cache is disabled.
var ErrCacheDisabled = errors.New("cache is disabled")

// ComputeFunc produces the value to cache on a miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache is a key/value store with per-entry TTL. Entries go stale by time
// or explicit invalidation, never by writes to the underlying records; the
// feed engine relies on exactly that.
type Cache interface {
	// GetOrCompute returns the cached value for key. On a miss it invokes
	// compute, stores the result with the given TTL, and returns it.
	// Within the TTL the stored value is returned without invoking compute.
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries immediately, forcing recomputation on the
	// next read.
	Clear(ctx context.Context) error
}
