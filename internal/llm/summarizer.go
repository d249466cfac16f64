package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/versemeter/versemeter/internal/model"
)

// Summarizer wraps a Provider and converts failures into warnings so a
// broken or unreachable LLM never fails an analysis.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer from configuration. A disabled
// configuration yields a summarizer whose IsEnabled is false.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary summarizes an analyzed sermon. Errors become warnings
// on the returned record: the report's counts stand regardless of what
// happens here.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.VideoReport) *model.LLMSummary {
	if !s.IsEnabled() {
		return &model.LLMSummary{Enabled: false}
	}

	summary := &model.LLMSummary{
		Enabled:  true,
		Provider: s.provider.Name(),
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("summary generation failed: %v", err))
		return summary
	}

	summary.Model = resp.Model
	summary.SummaryMD = resp.Summary
	if resp.Summary == "" {
		summary.Warnings = append(summary.Warnings, "provider returned an empty summary")
	}
	return summary
}

// RenderSeparateMarkdown renders a summary as its own markdown section,
// clearly fenced off from the statistical report it accompanies.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("## AI Summary\n\n")
	b.WriteString(fmt.Sprintf("_Generated by %s", summary.Provider))
	if summary.Model != "" {
		b.WriteString(fmt.Sprintf(" (%s)", summary.Model))
	}
	b.WriteString(". Advisory only; the counts above are computed without it._\n\n")

	if summary.SummaryMD != "" {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}
	for _, w := range summary.Warnings {
		b.WriteString(fmt.Sprintf("\n> Warning: %s\n", w))
	}
	return b.String()
}
