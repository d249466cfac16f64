// Harness for running the reference classifier over a local transcript
// file without any network access. Useful when tuning the context
// patterns against a known transcript.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/versemeter/versemeter/internal/books"
	"github.com/versemeter/versemeter/internal/classify"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transcript.txt>\n", os.Args[0])
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read transcript: %v\n", err)
		os.Exit(1)
	}
	text := strings.TrimSpace(string(data))

	engine := classify.NewEngine()
	result := engine.Analyze(text, books.Canon, nil)

	fmt.Printf("Transcript: %d characters\n", len(text))
	fmt.Printf("Keyword matches: %d (capitalized: %d)\n",
		result.Stats.TotalMatches, result.Stats.CapitalizedMatches)
	fmt.Printf("Scripture references: %d, suspect: %d, false positives: %d, not counted: %d\n\n",
		result.Stats.ScriptureReferences, result.Stats.SuspectReferences,
		result.Stats.FalsePositives, result.Stats.NotCounted)

	type row struct {
		book  string
		count int
	}
	var rows []row
	for book, count := range result.Counts {
		if count > 0 {
			rows = append(rows, row{book, count})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].book < rows[j].book
	})

	if len(rows) == 0 {
		fmt.Println("No scripture references found.")
		return
	}

	for _, r := range rows {
		fmt.Printf("%-20s %d\n", r.book, r.count)
		for i, ref := range result.Positions[r.book].Valid {
			if i >= 2 {
				break
			}
			pattern := ref.MatchedPattern
			if pattern == "" {
				pattern = "(capitalization only)"
			}
			fmt.Printf("    %s  %s\n", pattern, truncate(ref.Context, 80))
		}
	}

	suspects := 0
	for _, book := range books.Canon {
		suspects += result.SuspectCounts[book]
	}
	if suspects > 0 {
		fmt.Printf("\nSuspect (lowercase but patterned) matches: %d (see suspect_counts in full reports)\n", suspects)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
