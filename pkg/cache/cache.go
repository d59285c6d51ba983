// Package cache stores finished search results so interrupted benchmark
// suites and sweeps resume where they stopped.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for sweeps split across machines
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer] and hash every option that influences a result,
// so changing a parameter never returns a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
// It returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
