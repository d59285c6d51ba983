// Package observability provides hooks for progress reporting and metrics.
//
// Library packages emit events through these hooks instead of logging. The
// CLI registers implementations that log, drive the live progress view, or
// collect timings; everything else sees the no-op defaults.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// A search.Options value may also carry its own [SearchHooks]. The global
// registry is the fallback when it does not.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&logHooks{logger})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnTargetStart(ctx, k, popSize)
//	// ... run generations ...
//	observability.Search().OnColoringFound(ctx, k, generation, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the population search loop.
//
// Hooks are called from the goroutine running the search, between
// generations, never concurrently with each other for the same run.
type SearchHooks interface {
	// OnTargetStart fires when a fresh population is drawn for k colors.
	OnTargetStart(ctx context.Context, k, popSize int)

	// OnGeneration reports the best conflict count at a generation.
	// The search calls it every Options.ProgressEvery generations.
	OnGeneration(ctx context.Context, k, generation, bestConflicts int)

	// OnColoringFound fires when a proper k-coloring was found.
	OnColoringFound(ctx context.Context, k, generation int, elapsed time.Duration)

	// OnSearchComplete fires once per run with the final color count.
	OnSearchComplete(ctx context.Context, colors, generations int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Bench Hooks
// =============================================================================

// BenchHooks receives events from benchmark suites and sweeps.
type BenchHooks interface {
	// OnRunStart fires before one try of one instance.
	OnRunStart(ctx context.Context, instance string, try int)

	// OnRunComplete fires after one try, cached or not.
	OnRunComplete(ctx context.Context, instance string, try, colors int, cached bool, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnTargetStart(context.Context, int, int)                          {}
func (NoopSearchHooks) OnGeneration(context.Context, int, int, int)                      {}
func (NoopSearchHooks) OnColoringFound(context.Context, int, int, time.Duration)         {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopBenchHooks is a no-op implementation of BenchHooks.
type NoopBenchHooks struct{}

func (NoopBenchHooks) OnRunStart(context.Context, string, int) {}
func (NoopBenchHooks) OnRunComplete(context.Context, string, int, int, bool, time.Duration, error) {
}

// =============================================================================
// Fan-out
// =============================================================================

// MultiSearchHooks forwards every event to each element in order.
type MultiSearchHooks []SearchHooks

func (m MultiSearchHooks) OnTargetStart(ctx context.Context, k, popSize int) {
	for _, h := range m {
		h.OnTargetStart(ctx, k, popSize)
	}
}

func (m MultiSearchHooks) OnGeneration(ctx context.Context, k, generation, bestConflicts int) {
	for _, h := range m {
		h.OnGeneration(ctx, k, generation, bestConflicts)
	}
}

func (m MultiSearchHooks) OnColoringFound(ctx context.Context, k, generation int, elapsed time.Duration) {
	for _, h := range m {
		h.OnColoringFound(ctx, k, generation, elapsed)
	}
}

func (m MultiSearchHooks) OnSearchComplete(ctx context.Context, colors, generations int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnSearchComplete(ctx, colors, generations, duration, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	benchHooks  BenchHooks  = NoopBenchHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetBenchHooks registers custom benchmark hooks.
func SetBenchHooks(h BenchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		benchHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Bench returns the registered benchmark hooks.
func Bench() BenchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return benchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
	benchHooks = NoopBenchHooks{}
}
