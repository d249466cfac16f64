package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/versemeter/versemeter/internal/pipeline"
	"github.com/versemeter/versemeter/internal/store"
)

var (
	reprocessAll     bool
	reprocessTimeout time.Duration
)

// reprocessCmd represents the reprocess command
var reprocessCmd = &cobra.Command{
	Use:   "reprocess [video-id...]",
	Short: "Re-run classification for already-analyzed videos",
	Long: `Reprocess re-runs the reference classifier over stored videos using
cached transcripts, replacing their reports in the results store. Use it
after the context patterns or book data change. Transcripts that have
fallen out of the cache are refetched.

Example:
  versemeter reprocess dQw4w9WgXcQ
  versemeter reprocess --all`,
	RunE: runReprocess,
}

func init() {
	rootCmd.AddCommand(reprocessCmd)

	reprocessCmd.Flags().BoolVar(&reprocessAll, "all", false, "reprocess every stored video")
	reprocessCmd.Flags().DurationVar(&reprocessTimeout, "timeout", 30*time.Minute, "total timeout")
	reprocessCmd.Flags().StringVar(&storePath, "store", "", "results store path (default from config)")
	reprocessCmd.Flags().StringVar(&proxyList, "proxies", "", "comma-separated proxy URLs for transcript refetches")
}

func runReprocess(cmd *cobra.Command, args []string) error {
	if !reprocessAll && len(args) == 0 {
		return fmt.Errorf("provide video IDs or --all")
	}

	ctx, cancel := context.WithTimeout(context.Background(), reprocessTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open results store: %w", err)
	}

	videoIDs := args
	if reprocessAll {
		videoIDs = videoIDs[:0]
		for _, report := range st.All() {
			videoIDs = append(videoIDs, report.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to reprocess: the store is empty.")
		return nil
	}

	p := pipeline.New(cfg, st)

	failures := 0
	for _, videoID := range videoIDs {
		report, err := p.Reprocess(ctx, videoID)
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", videoID, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %s (%d references)\n",
			videoID, report.Title, report.Stats.ScriptureReferences)
	}

	fmt.Fprintf(os.Stderr, "\nReprocessed %d of %d videos\n", len(videoIDs)-failures, len(videoIDs))
	if failures > 0 {
		return fmt.Errorf("%d video(s) failed", failures)
	}
	return nil
}
