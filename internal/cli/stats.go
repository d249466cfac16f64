package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/versemeter/versemeter/internal/score"
	"github.com/versemeter/versemeter/internal/store"
)

var (
	statsTop  int
	statsJSON bool
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rankings across all analyzed sermons",
	Long: `Stats aggregates the results store into three rankings: the most-cited
books, the channels with the most references, and the sermons densest
in references.

Example:
  versemeter stats
  versemeter stats --top 20
  versemeter stats --json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of entries per ranking")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print rankings as JSON")
	statsCmd.Flags().StringVar(&storePath, "store", "", "results store path (default from config)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open results store: %w", err)
	}

	reports := st.All()
	if len(reports) == 0 {
		fmt.Fprintln(os.Stderr, "The results store is empty. Run 'versemeter analyze' first.")
		return nil
	}

	ranker := score.NewRanker(reports)
	books := ranker.TopBooks(statsTop)
	channels := ranker.TopChannels(statsTop)
	sermons := ranker.TopSermons(statsTop)

	if statsJSON {
		out := struct {
			Videos   int                 `json:"videos"`
			Books    []score.BookRank    `json:"top_books"`
			Channels []score.ChannelRank `json:"top_channels"`
			Sermons  []score.SermonRank  `json:"top_sermons"`
		}{len(reports), books, channels, sermons}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Analyzed sermons: %d\n\n", len(reports))

	fmt.Println("Top books:")
	for i, b := range books {
		fmt.Printf("  %2d. %-20s %d\n", i+1, b.Book, b.Count)
	}

	fmt.Println("\nTop channels:")
	for i, c := range channels {
		line := fmt.Sprintf("  %2d. %-30s %d references across %d video(s)", i+1, c.Channel, c.References, c.Videos)
		if c.Location != "" {
			line += " (" + c.Location + ")"
		}
		fmt.Println(line)
	}

	fmt.Println("\nTop sermons:")
	for i, s := range sermons {
		fmt.Printf("  %2d. %s (%s, %d references)\n", i+1, s.Title, s.Channel, s.References)
	}

	return nil
}
