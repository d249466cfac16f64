package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Stream {
			t.Error("streaming should be disabled")
		}
		if !strings.Contains(req.Prompt, "The Gospel of Mark") {
			t.Errorf("prompt missing report title: %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           req.Model,
			Response:        "The sermon leans on Mark throughout.",
			Done:            true,
			PromptEvalCount: 100,
			EvalCount:       20,
		})
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	resp, err := p.Summarize(context.Background(), SummarizeRequest{Report: summaryReport()})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if resp.Summary != "The sermon leans on Mark throughout." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("TokensUsed = %d, want 120", resp.TokensUsed)
	}
}

func TestOllamaProvider_RequiresModel(t *testing.T) {
	p, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}
	if _, err := p.Summarize(context.Background(), SummarizeRequest{Report: summaryReport()}); err == nil {
		t.Error("Expected error when no model is configured")
	}
}

func TestOllamaProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	p, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "missing"})
	_, err := p.Summarize(context.Background(), SummarizeRequest{Report: summaryReport()})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("err = %v", err)
	}
}
