package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/versemeter/versemeter/internal/model"
)

type fakeProvider struct {
	summary string
	err     error
}

func (f *fakeProvider) Name() string                     { return "fake" }
func (f *fakeProvider) IsAvailable(context.Context) bool { return f.err == nil }
func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &SummarizeResponse{Summary: f.summary, Model: "fake-1", TokensUsed: 42}, nil
}

func summaryReport() *model.VideoReport {
	return &model.VideoReport{
		VideoID:          "dQw4w9WgXcQ",
		Title:            "The Gospel of Mark",
		Channel:          "Grace Church",
		TranscriptLength: 12000,
		Stats: model.Stats{
			ScriptureReferences: 8,
			SuspectReferences:   2,
			FalsePositives:      1,
		},
		Counts: map[string]int{"Mark": 6, "Isaiah": 2, "Jude": 0},
	}
}

func TestGenerateSummary(t *testing.T) {
	s := &Summarizer{provider: &fakeProvider{summary: "A sermon centered on Mark."}}

	got := s.GenerateSummary(context.Background(), summaryReport())
	if !got.Enabled || got.Provider != "fake" || got.Model != "fake-1" {
		t.Errorf("unexpected summary record: %+v", got)
	}
	if got.SummaryMD != "A sermon centered on Mark." {
		t.Errorf("SummaryMD = %q", got.SummaryMD)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", got.Warnings)
	}
}

func TestGenerateSummary_FailureBecomesWarning(t *testing.T) {
	s := &Summarizer{provider: &fakeProvider{err: errors.New("connection refused")}}

	got := s.GenerateSummary(context.Background(), summaryReport())
	if !got.Enabled {
		t.Error("record should mark the attempt as enabled")
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "connection refused") {
		t.Errorf("Warnings = %v", got.Warnings)
	}
	if got.SummaryMD != "" {
		t.Errorf("SummaryMD should be empty on failure, got %q", got.SummaryMD)
	}
}

func TestGenerateSummary_Disabled(t *testing.T) {
	s, err := NewSummarizer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}
	if s.IsEnabled() {
		t.Fatal("default config should be disabled")
	}
	got := s.GenerateSummary(context.Background(), summaryReport())
	if got.Enabled {
		t.Errorf("disabled summarizer produced: %+v", got)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewSummarizer(Config{Provider: "watson"})
	if err == nil || !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("err = %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(summaryReport())

	for _, want := range []string{
		"The Gospel of Mark",
		"Grace Church",
		"8 confirmed, 2 suspect, 1 discarded",
		"- Mark: 6",
		"- Isaiah: 2",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// Zero-count books stay out of the prompt.
	if strings.Contains(prompt, "Jude") {
		t.Error("prompt lists a book with zero confirmed references")
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	md := RenderSeparateMarkdown(&model.LLMSummary{
		Enabled:   true,
		Provider:  "ollama",
		Model:     "llama3.1:8b",
		SummaryMD: "Heavy use of Mark.",
		Warnings:  []string{"slow response"},
	})

	for _, want := range []string{"## AI Summary", "ollama", "llama3.1:8b", "Heavy use of Mark.", "Warning: slow response"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if RenderSeparateMarkdown(nil) != "" {
		t.Error("nil summary should render empty")
	}
	if RenderSeparateMarkdown(&model.LLMSummary{Enabled: false}) != "" {
		t.Error("disabled summary should render empty")
	}
}
