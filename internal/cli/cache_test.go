package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dfpa/pkg/cache"
)

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	cc, err := newCache(ctx, cacheFlags{noCache: true})
	if err != nil {
		t.Fatalf("newCache(noCache): %v", err)
	}
	if _, ok := cc.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", cc)
	}

	dir := t.TempDir()
	cc, err = newCache(ctx, cacheFlags{dir: dir})
	if err != nil {
		t.Fatalf("newCache(dir): %v", err)
	}
	fc, ok := cc.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("--cache-dir should give a FileCache in %s, got %T", dir, cc)
	}

	if _, err := newCache(ctx, cacheFlags{redisURL: "not a url"}); err == nil {
		t.Error("a malformed Redis URL should fail")
	}
}

func TestCacheClearCommand(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"result:a", "result:b", "bound:exact:c"} {
		if err := fc.Set(ctx, key, []byte("1"), 0); err != nil {
			t.Fatal(err)
		}
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear", "--cache-dir", dir})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, hit, _ := fc.Get(ctx, "result:a"); hit {
		t.Error("entries should be gone after cache clear")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory itself should remain: %v", err)
	}
}
