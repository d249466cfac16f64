package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/versemeter/versemeter/internal/model"
)

// Analyzer runs one video analysis. Satisfied by pipeline.Pipeline.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*model.VideoReport, error)
}

// AnalyzeJob is one video URL queued for analysis.
type AnalyzeJob struct {
	URL      string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute waits for rate-limit clearance and runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &AnalyzeResult{URL: j.URL, Error: err}
		}
	}

	report, err := j.Analyzer.AnalyzeURL(ctx, j.URL)
	return &AnalyzeResult{
		URL:    j.URL,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one analysis job.
type AnalyzeResult struct {
	URL    string
	Report *model.VideoReport
	Error  error
}

// GetError returns the job's error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many videos concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor over an analyzer.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     NewLimiter(requestsPerSecond, burst),
		concurrency: concurrency,
	}
}

// ProcessURLs analyzes the given URLs concurrently and returns one
// result per URL, in completion order.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AnalyzeJob{
			URL:      url,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads video URLs from a file and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line, skipping
// blanks and # comments and deduplicating.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
