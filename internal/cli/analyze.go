package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/versemeter/versemeter/internal/model"
	"github.com/versemeter/versemeter/internal/pipeline"
	"github.com/versemeter/versemeter/internal/store"
	"github.com/versemeter/versemeter/internal/util"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noValidate  bool
	proxyList   string
	storePath   string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url|video-id>",
	Short: "Analyze one sermon video and count its scripture references",
	Long: `Analyze retrieves a video's transcript and classifies every Bible-book
keyword occurrence as a confirmed reference, a suspect reference, or a
false positive. The report is persisted to the results store and can be
written as JSON and Markdown.

Example:
  versemeter analyze https://www.youtube.com/watch?v=dQw4w9WgXcQ
  versemeter analyze dQw4w9WgXcQ --json report.json --md report.md
  versemeter analyze dQw4w9WgXcQ --llm --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (default from config)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip sermon-channel validation")
	analyzeCmd.Flags().StringVar(&proxyList, "proxies", "", "comma-separated proxy URLs for transcript fetches (overrides PROXY_LIST)")
	analyzeCmd.Flags().StringVar(&storePath, "store", "", "results store path (default from config)")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM sermon summary")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open results store: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Proxies: %d configured\n", len(cfg.HTTP.Proxies))
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, st)

	report, err := p.AnalyzeURL(ctx, url)
	if err != nil {
		if errors.Is(err, pipeline.ErrChannelRejected) {
			return fmt.Errorf("skipped: %w (use --no-validate to analyze anyway)", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Transcript: %d characters\n", report.TranscriptLength)
		fmt.Fprintf(os.Stderr, "✓ Keyword matches: %d\n", report.Stats.TotalMatches)
		fmt.Fprintf(os.Stderr, "✓ Scripture references: %d\n", report.Stats.ScriptureReferences)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the runtime configuration: defaults, config
// file, environment, then flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if timeout > 0 {
		cfg.HTTP.Timeout = timeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noValidate {
		cfg.Validation.Enabled = false
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Proxy precedence: flag, then config file, then PROXY_LIST.
	if proxyList != "" {
		cfg.HTTP.Proxies = splitProxyList(proxyList)
	} else if len(cfg.HTTP.Proxies) == 0 {
		cfg.HTTP.Proxies = util.LoadProxiesFromEnv()
	}

	if err := applyLLMFlags(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyLLMFlags enables the summary provider when --llm is set and
// resolves its API key from the environment.
func applyLLMFlags(cfg *model.Config) error {
	if !llmEnabled {
		return nil
	}

	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}

func splitProxyList(raw string) []string {
	var proxies []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
