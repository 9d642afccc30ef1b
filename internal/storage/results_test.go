package storage

import (
	"testing"

	"sift/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	db, err := Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("hello"))
	b := HashContent([]byte("hello"))
	c := HashContent([]byte("world"))
	if a != b {
		t.Error("hash is not deterministic")
	}
	if a == c {
		t.Error("different content hashed equal")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestResultCacheRoundTrip(t *testing.T) {
	cache := NewResultCache(testDB(t), "config-v1")

	hash := HashContent([]byte("const x = 1;\n"))
	if _, hit, err := cache.Get("src/app.js", hash); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := cache.Put("src/app.js", hash, `[{"line":1}]`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	payload, hit, err := cache.Get("src/app.js", hash)
	if err != nil || !hit {
		t.Fatalf("Get after Put = hit %v, err %v", hit, err)
	}
	if payload != `[{"line":1}]` {
		t.Errorf("payload = %q", payload)
	}
}

func TestResultCachePutReplacesOlderEntries(t *testing.T) {
	cache := NewResultCache(testDB(t), "config-v1")

	oldHash := HashContent([]byte("v1"))
	newHash := HashContent([]byte("v2"))
	if err := cache.Put("a.js", oldHash, "old"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("a.js", newHash, "new"); err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := cache.Get("a.js", oldHash); hit {
		t.Error("stale entry survived Put for the same path")
	}
	if payload, hit, _ := cache.Get("a.js", newHash); !hit || payload != "new" {
		t.Errorf("current entry = %q hit %v", payload, hit)
	}
}

func TestResultCacheConfigHashDiscriminates(t *testing.T) {
	db := testDB(t)
	hash := HashContent([]byte("content"))

	v1 := NewResultCache(db, "config-v1")
	if err := v1.Put("a.js", hash, "payload"); err != nil {
		t.Fatal(err)
	}

	v2 := NewResultCache(db, "config-v2")
	if _, hit, _ := v2.Get("a.js", hash); hit {
		t.Error("entry from another configuration served")
	}
}

func TestResultCacheInvalidateAndClear(t *testing.T) {
	cache := NewResultCache(testDB(t), "c")
	hash := HashContent([]byte("x"))

	if err := cache.Put("a.js", hash, "a"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("b.js", hash, "b"); err != nil {
		t.Fatal(err)
	}

	if err := cache.Invalidate("a.js"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get("a.js", hash); hit {
		t.Error("invalidated entry served")
	}
	if _, hit, _ := cache.Get("b.js", hash); !hit {
		t.Error("unrelated entry dropped by Invalidate")
	}

	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get("b.js", hash); hit {
		t.Error("entry survived Clear")
	}
}
