// Package llm generates optional natural-language summaries of analyzed
// sermons. Summaries are advisory output attached to a report after
// classification; they never feed back into the counts.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/versemeter/versemeter/internal/model"
)

// Provider is implemented by each LLM backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary of an analyzed sermon.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for sermon summarization.
type SummarizeRequest struct {
	// Report is the analyzed sermon to summarize.
	Report *model.VideoReport

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse is the provider's output.
type SummarizeResponse struct {
	// Summary is the generated markdown text.
	Summary string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "".
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI/Anthropic.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns the defaults: disabled, 30s timeout, 1000 tokens.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

const systemPrompt = "You are a helpful assistant that summarizes how a sermon engages scripture, based only on the reference statistics provided."

// BuildPrompt constructs the default summarization prompt from a
// report's statistics. The prompt carries only aggregate numbers, not
// the transcript, so summaries stay short and cheap.
func BuildPrompt(report *model.VideoReport) string {
	prompt := fmt.Sprintf(`Summarize how this sermon engages scripture.

RULES:
1. Describe only what the statistics below show. Do not invent verses,
   quotes, or themes that are not implied by the cited books.
2. If few or no references were found, say so plainly.
3. Keep it to 3-4 sentences of markdown.

Sermon:
- Title: %s
- Channel: %s
- Transcript length: %d characters
- Scripture references: %d confirmed, %d suspect, %d discarded as false positives

Books cited (confirmed references):
%s
Provide the summary now.`,
		report.Title,
		report.Channel,
		report.TranscriptLength,
		report.Stats.ScriptureReferences,
		report.Stats.SuspectReferences,
		report.Stats.FalsePositives,
		citedBooks(report.Counts))

	return prompt
}

// citedBooks renders the nonzero counts, highest first, capped to keep
// the prompt small.
func citedBooks(counts map[string]int) string {
	type entry struct {
		book  string
		count int
	}
	var entries []entry
	for book, count := range counts {
		if count > 0 {
			entries = append(entries, entry{book, count})
		}
	}
	if len(entries) == 0 {
		return "(none)\n"
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].book < entries[j].book
	})

	result := ""
	for i, e := range entries {
		if i >= 15 {
			result += fmt.Sprintf("... and %d more books\n", len(entries)-15)
			break
		}
		result += fmt.Sprintf("- %s: %d\n", e.book, e.count)
	}
	return result
}
