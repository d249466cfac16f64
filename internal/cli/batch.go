package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/versemeter/versemeter/internal/pipeline"
	"github.com/versemeter/versemeter/internal/store"
	"github.com/versemeter/versemeter/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple sermon videos from a file in parallel",
	Long: `Batch reads video URLs from a file (one per line, # comments allowed),
analyzes them with a bounded worker pool, and writes per-video reports.
Requests to the video host are rate limited across all workers.

Example:
  versemeter batch videos.txt
  versemeter batch videos.txt --workers 8 --output-dir ./reports
  versemeter batch videos.txt --no-validate --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./versemeter-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")

	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip sermon-channel validation")
	batchCmd.Flags().StringVar(&proxyList, "proxies", "", "comma-separated proxy URLs for transcript fetches (overrides PROXY_LIST)")
	batchCmd.Flags().StringVar(&storePath, "store", "", "results store path (default from config)")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM sermon summaries")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open results store: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "Store:      %s\n\n", cfg.Store.Path)

	p := pipeline.New(cfg, st)
	processor := worker.NewBatchProcessor(p, concurrency, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount, skippedCount, failureCount := 0, 0, 0

	for _, result := range results {
		if result.Error != nil {
			if errors.Is(result.Error, pipeline.ErrChannelRejected) {
				skippedCount++
				fmt.Fprintf(os.Stderr, "- %s: %v\n", result.URL, result.Error)
			} else {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			}
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, result.Report.VideoID+".json")
		mdPath := filepath.Join(outputDir, result.Report.VideoID+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %s (%d references)\n",
			result.Report.Title, result.Report.Channel, result.Report.Stats.ScriptureReferences)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d analyzed, %d skipped, %d failed (of %d)\n",
		successCount, skippedCount, failureCount, len(results))
	fmt.Fprintf(os.Stderr, "Reports: %s\n", outputDir)

	return nil
}
