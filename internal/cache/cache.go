// Package cache stores fetched watch pages and transcripts so repeated
// analyses and reprocessing runs do not refetch them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from an arbitrary identifier. The version
// segment invalidates old entries when the stored format changes.
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "versemeter:v1:" + hex.EncodeToString(hash[:])
}

// TranscriptKey is the key under which a video's parsed transcript
// segments are cached, as a JSON envelope.
func TranscriptKey(videoID string) string {
	return Key("transcript:" + videoID)
}

// PageKey is the key under which a fetched page body is cached.
func PageKey(url string) string {
	return Key("page:" + url)
}

// Nop is the cache used when caching is disabled: it stores nothing and
// never hits.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
