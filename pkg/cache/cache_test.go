package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash([]byte("name: soc\n"))
	b := Hash([]byte("name: soc\n"))
	if a != b {
		t.Errorf("same input hashed differently: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
	if c := Hash([]byte("name: other\n")); c == a {
		t.Error("different inputs collided")
	}
}

func TestKeysSeparateByInputs(t *testing.T) {
	h := Hash([]byte("config"))

	if LayoutKey(h, 1) == LayoutKey(h, 2) {
		t.Error("layout keys ignore options")
	}
	if ArtifactKey(h, "svg", nil) == ArtifactKey(h, "dot", nil) {
		t.Error("artifact keys ignore format")
	}
	if LayoutKey(h, nil) == ArtifactKey(h, "svg", nil) {
		t.Error("layout and artifact keys collide")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("null cache returned a hit")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("hit on empty cache")
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("hit after delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry served")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	path := c.(*FileCache).path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if _, ok, getErr := c.Get(ctx, "k"); ok || getErr != nil {
		t.Errorf("corrupt entry: ok=%v err=%v", ok, getErr)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	h := Hash([]byte("k"))
	want := filepath.Join(dir, h[:2], h[2:]+".json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("entry not at hashed path: %v", err)
	}
}
