package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCanFetch_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\nAllow: /\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestBot/1.0", 5*time.Second)
	ctx := context.Background()

	allowed, _, err := checker.CanFetch(ctx, server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if allowed {
		t.Error("disallowed path was allowed")
	}

	allowed, _, err = checker.CanFetch(ctx, server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("allowed path was blocked")
	}
}

func TestCanFetch_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("TestBot/1.0", 5*time.Second)
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("missing robots.txt should allow fetches")
	}
}

func TestCanFetch_UnreachableRobotsAllows(t *testing.T) {
	checker := NewRobotsChecker("TestBot/1.0", 100*time.Millisecond)
	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("unreachable robots.txt should allow fetches")
	}
}

func TestCanFetch_CachesPerHost(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(&hits, 1)
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestBot/1.0", 5*time.Second)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, _, err := checker.CanFetch(ctx, server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch: %v", err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", got)
	}

	checker.Clear()
	if _, _, err := checker.CanFetch(ctx, server.URL+"/page"); err != nil {
		t.Fatalf("CanFetch after Clear: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("robots.txt fetched %d times after Clear, want 2", got)
	}
}

func TestCanFetch_CrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nCrawl-delay: 2\n"))
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestBot/1.0", 5*time.Second)
	_, delay, err := checker.CanFetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}
}
