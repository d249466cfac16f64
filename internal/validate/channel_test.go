package validate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/versemeter/versemeter/internal/fetch"
	"github.com/versemeter/versemeter/internal/video"
)

func newTestValidator(serverURL string, keywords []string, enabled bool) *ChannelValidator {
	client := fetch.NewClient(5*time.Second, "test-agent", 1<<20, "", "", "")
	fetcher := video.NewInfoFetcher(client, "test-agent", 5*time.Second)
	return NewChannelValidator(fetcher, keywords, enabled)
}

func aboutServer(t *testing.T, description string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/channel/UCtest/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `<html><body>..."description":"%s"...</body></html>`, description)
	})
	return httptest.NewServer(mux)
}

func TestValidate_KeywordMatch(t *testing.T) {
	server := aboutServer(t, "Weekly sermons from Grace Church of Nashville")
	defer server.Close()

	v := newTestValidator(server.URL, nil, true)
	result := v.Validate(context.Background(), server.URL+"/channel/UCtest")

	if !result.Accepted {
		t.Fatalf("Expected channel to pass: %+v", result)
	}
	if result.Matched != "church" {
		t.Errorf("Matched = %q, want %q", result.Matched, "church")
	}
}

func TestValidate_NoKeywordRejects(t *testing.T) {
	server := aboutServer(t, "Daily cooking videos and recipes")
	defer server.Close()

	v := newTestValidator(server.URL, nil, true)
	result := v.Validate(context.Background(), server.URL+"/channel/UCtest")

	if result.Accepted {
		t.Fatalf("Expected channel to be rejected: %+v", result)
	}
	if !strings.Contains(result.Reason, "church, christ, jesus") {
		t.Errorf("Reason = %q", result.Reason)
	}
}

func TestValidate_CustomKeywordsCaseInsensitive(t *testing.T) {
	server := aboutServer(t, "GOSPEL preaching every Sunday")
	defer server.Close()

	v := newTestValidator(server.URL, []string{"Gospel"}, true)
	result := v.Validate(context.Background(), server.URL+"/channel/UCtest")

	if !result.Accepted || result.Matched != "gospel" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestValidate_SoftFailures(t *testing.T) {
	// Disabled validation passes without any fetch.
	v := newTestValidator("", nil, false)
	if r := v.Validate(context.Background(), "http://example.com/channel/x"); !r.Accepted {
		t.Errorf("disabled validator rejected: %+v", r)
	}

	// Unknown channel URL passes.
	v = newTestValidator("", nil, true)
	if r := v.Validate(context.Background(), ""); !r.Accepted {
		t.Errorf("missing channel URL rejected: %+v", r)
	}

	// Unreachable about page (no description) passes with a reason.
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	v = newTestValidator(server.URL, nil, true)
	r := v.Validate(context.Background(), server.URL+"/channel/UCtest")
	if !r.Accepted || !strings.Contains(r.Reason, "no channel description") {
		t.Errorf("unexpected result: %+v", r)
	}
}
