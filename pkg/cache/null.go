package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and stands in when no cache directory can be
// determined. Every bench try and exact bound is recomputed. It does not
// implement [Clearer]; `dfpa cache clear` reports 0 entries for it.
type NullCache struct{}

// NewNullCache returns a cache that never stores results.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every key.
func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the encoded result.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
