package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/versemeter/versemeter/internal/llm"
	"github.com/versemeter/versemeter/internal/model"
)

// Renderer writes reports as JSON and markdown and prints the console
// summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.VideoReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.VideoReport, path string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", report.Title))
	b.WriteString(fmt.Sprintf("- **Channel:** %s\n", report.Channel))
	if report.Location != "" {
		b.WriteString(fmt.Sprintf("- **Location:** %s\n", report.Location))
	}
	b.WriteString(fmt.Sprintf("- **Video:** https://www.youtube.com/watch?v=%s\n", report.VideoID))
	b.WriteString(fmt.Sprintf("- **Processed:** %s\n", report.ProcessedAt.Format("2006-01-02 15:04 UTC")))
	b.WriteString(fmt.Sprintf("- **Transcript:** %d characters\n\n", report.TranscriptLength))

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	b.WriteString(fmt.Sprintf("| Keyword matches | %d |\n", report.Stats.TotalMatches))
	b.WriteString(fmt.Sprintf("| Scripture references | %d |\n", report.Stats.ScriptureReferences))
	b.WriteString(fmt.Sprintf("| Suspect references | %d |\n", report.Stats.SuspectReferences))
	b.WriteString(fmt.Sprintf("| False positives | %d |\n", report.Stats.FalsePositives))
	b.WriteString(fmt.Sprintf("| Not counted | %d |\n\n", report.Stats.NotCounted))

	cited := citedBooks(report.Counts)
	if len(cited) > 0 {
		b.WriteString("## Books Cited\n\n")
		b.WriteString("| Book | References |\n|---|---|\n")
		for _, c := range cited {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", c.book, c.count))
		}
		b.WriteString("\n")

		b.WriteString("## Sample References\n\n")
		for _, c := range cited {
			writeSamples(&b, c.book, report.Positions[c.book])
		}
	} else {
		b.WriteString("No scripture references were found in this transcript.\n\n")
	}

	if report.LLM != nil && report.LLM.Enabled {
		b.WriteString(llm.RenderSeparateMarkdown(report.LLM))
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Counts reflect keyword context classification of the caption track; ")
		b.WriteString("they measure citation, not content quality._\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// RenderLLMMarkdown writes a pre-rendered summary section to its own
// file.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	return os.WriteFile(path, []byte(markdown), 0644)
}

// RenderSummary prints the one-screen console summary.
func (r *Renderer) RenderSummary(report *model.VideoReport) {
	fmt.Printf("\n%s (%s)\n", report.Title, report.Channel)
	fmt.Printf("Scripture references: %d (suspect: %d, false positives: %d)\n",
		report.Stats.ScriptureReferences, report.Stats.SuspectReferences, report.Stats.FalsePositives)

	cited := citedBooks(report.Counts)
	if len(cited) == 0 {
		fmt.Println("No books cited.")
		return
	}
	top := cited
	if len(top) > 5 {
		top = top[:5]
	}
	parts := make([]string, len(top))
	for i, c := range top {
		parts[i] = fmt.Sprintf("%s (%d)", c.book, c.count)
	}
	fmt.Printf("Top books: %s\n", strings.Join(parts, ", "))
}

type bookCount struct {
	book  string
	count int
}

// citedBooks returns the nonzero counts, highest first, ties
// alphabetical.
func citedBooks(counts map[string]int) []bookCount {
	var cited []bookCount
	for book, count := range counts {
		if count > 0 {
			cited = append(cited, bookCount{book, count})
		}
	}
	sort.Slice(cited, func(i, j int) bool {
		if cited[i].count != cited[j].count {
			return cited[i].count > cited[j].count
		}
		return cited[i].book < cited[j].book
	})
	return cited
}

// writeSamples lists up to three confirmed references for a book, with
// timestamps when the owning segment is known.
func writeSamples(b *strings.Builder, book string, buckets *model.Buckets) {
	if buckets == nil || len(buckets.Valid) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("**%s**\n\n", book))
	refs := buckets.Valid
	if len(refs) > 3 {
		refs = refs[:3]
	}
	for _, ref := range refs {
		if ref.Start != nil {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", formatTimestamp(*ref.Start), ref.Context))
		} else {
			b.WriteString(fmt.Sprintf("- %s\n", ref.Context))
		}
	}
	b.WriteString("\n")
}

// formatTimestamp renders seconds as m:ss or h:mm:ss.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
