package cache

import (
	"context"
	"time"

	"github.com/matzehuels/dfpa/pkg/observability"
)

// Instrumented reports hits, misses and writes of an inner cache to the
// registered observability.CacheHooks under keyType.
type Instrumented struct {
	Cache
	keyType string
}

// WithHooks wraps c so its traffic reaches the cache hooks.
func WithHooks(c Cache, keyType string) *Instrumented {
	return &Instrumented{Cache: c, keyType: keyType}
}

// Get forwards to the inner cache and records a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

// Set forwards to the inner cache and records the write size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}

// Clear forwards to the inner cache when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) (int, error) {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}
