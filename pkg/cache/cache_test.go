package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/dfpa/pkg/observability"
)

// errPermanent is a non-retryable error for the retry tests.
var errPermanent = errors.New("permanent")

func init() {
	retryDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// ResultKey should include options in hash
	rk1 := k.ResultKey("graph123", ResultKeyOpts{Pollinator: "random", Lambda: 1.5})
	rk2 := k.ResultKey("graph123", ResultKeyOpts{Pollinator: "random", Lambda: 1.25})
	if rk1 == rk2 {
		t.Error("Different ResultKeyOpts should produce different keys")
	}
	rk3 := k.ResultKey("graph456", ResultKeyOpts{Pollinator: "random", Lambda: 1.5})
	if rk1 == rk3 {
		t.Error("Different graphs should produce different keys")
	}
	if !strings.HasPrefix(rk1, "result:") {
		t.Errorf("ResultKey should start with result: %s", rk1)
	}

	// Try index separates repetitions
	t0 := k.ResultKey("g", ResultKeyOpts{Try: 0})
	t1 := k.ResultKey("g", ResultKeyOpts{Try: 1})
	if t0 == t1 {
		t.Error("Different tries should produce different keys")
	}

	// BoundKey
	if bk := k.BoundKey("abc", "exact"); bk != "bound:exact:abc" {
		t.Errorf("BoundKey unexpected: %s", bk)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "suite:final:")

	// All keys should be prefixed
	if bk := scoped.BoundKey("abc", "clique"); bk != "suite:final:bound:clique:abc" {
		t.Errorf("ScopedKeyer BoundKey unexpected: %s", bk)
	}

	rk := scoped.ResultKey("abc", ResultKeyOpts{})
	if !strings.HasPrefix(rk, "suite:final:result:") {
		t.Errorf("ScopedKeyer ResultKey should be prefixed: %s", rk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.BoundKey("h", "exact")
	if key != "prefix:bound:exact:h" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.col")
	b := filepath.Join(dir, "b.col")
	if err := os.WriteFile(a, []byte("p edge 2 1\ne 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("p edge 2 1\ne 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ha, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	hb, _ := HashFile(b)
	if ha != hb {
		t.Error("Identical contents should hash identically")
	}
	if ha != Hash([]byte("p edge 2 1\ne 1 2\n")) {
		t.Error("HashFile should match Hash of the contents")
	}

	if _, err := HashFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("HashFile should fail for a missing file")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, err := c.Get(ctx, "k1"); err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "k1", []byte(`{"colors":5}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != `{"colors":5}` {
		t.Errorf("Get returned %q", data)
	}

	// Overwrite
	if err := c.Set(ctx, "k1", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, _, _ = c.Get(ctx, "k1")
	if string(data) != "v2" {
		t.Errorf("Get after overwrite returned %q", data)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("Expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k1"); hit {
		t.Error("Deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Entry should be gone after Clear")
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("Clear should remove subdirectories, %d left", len(entries))
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "dfpa") {
		t.Errorf("DefaultDir() = %q", dir)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrumented(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := WithHooks(fc, "result")

	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _, _ = c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks: hits=%d misses=%d sets=%d, want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}
	if n, err := c.Clear(ctx); err != nil || n != 1 {
		t.Errorf("Clear through wrapper: n=%d err=%v", n, err)
	}
	if n, _ := WithHooks(NewNullCache(), "x").Clear(ctx); n != 0 {
		t.Errorf("Clear on a non-clearer should report 0, got %d", n)
	}
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis", "dfpa:"); err == nil {
		t.Error("NewRedisCache should reject a non-redis URL")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", "dfpa:")
	if err == nil {
		t.Fatal("NewRedisCache should fail without a server")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRetryWithBackoffGivesUp(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
	if calls != retryAttempts {
		t.Errorf("calls = %d, want %d", calls, retryAttempts)
	}
}
