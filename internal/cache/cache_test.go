package cache

import (
	"testing"
	"time"
)

func TestKeyPrefixesAndStability(t *testing.T) {
	a := TranscriptKey("dQw4w9WgXcQ")
	b := TranscriptKey("dQw4w9WgXcQ")
	if a != b {
		t.Errorf("keys not stable: %q vs %q", a, b)
	}
	if a == PageKey("dQw4w9WgXcQ") {
		t.Error("transcript and page keys collide for the same id")
	}
	if got := Key("x")[:14]; got != "versemeter:v1:" {
		t.Errorf("key prefix = %q", got)
	}
}

func TestLayeredCache_DiskHitPromotesToMemory(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	key := TranscriptKey("abc123def45")
	if err := c.Set(key, []byte("transcript body"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Drop the memory layer; the value must come back from disk.
	_ = c.memory.Clear()
	val, found := c.Get(key)
	if !found || string(val) != "transcript body" {
		t.Fatalf("Get after memory clear = %q, %v", val, found)
	}

	// Promotion: a second lookup hits memory even with disk gone.
	_ = c.disk.Clear()
	if _, found := c.memory.Get(key); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("expired")
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expired entry still returned")
	}
}

func TestNopCacheNeverHits(t *testing.T) {
	var c Cache = Nop{}
	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("nop cache returned a value")
	}
}
