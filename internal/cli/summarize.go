package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wetstraat/kamerdata/internal/cache"
	"github.com/wetstraat/kamerdata/internal/rowsource"
	"github.com/wetstraat/kamerdata/internal/summarize"
)

var (
	summarizeProvider string
	summarizeModel    string
	summarizeTimeout  time.Duration
	summarizeNoCache  bool
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate missing LLM summaries for the dataset",
	Long: `Summarize finds the question topic headers and dossier titles that
have no entry in the summaries table yet, generates short Dutch
summaries through the configured LLM provider and appends them to
the table. Inputs are keyed by content hash, so reruns only pay for
what is actually new.

Example:
  kamerdata summarize
  kamerdata summarize --llm-provider openai --llm-model gpt-4o-mini`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&summarizeProvider, "llm-provider", "", "LLM provider (overrides config)")
	summarizeCmd.Flags().StringVar(&summarizeModel, "llm-model", "", "LLM model name (overrides config)")
	summarizeCmd.Flags().DurationVar(&summarizeTimeout, "timeout", 30*time.Minute, "overall summarize timeout")
	summarizeCmd.Flags().BoolVar(&summarizeNoCache, "no-cache", false, "disable the local summary cache")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if summarizeProvider != "" {
		cfg.LLM.Provider = summarizeProvider
	}
	if summarizeModel != "" {
		cfg.LLM.Model = summarizeModel
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}

	var provider summarize.Provider
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		provider, err = summarize.NewOpenAIProvider(cfg.LLM)
		if err != nil {
			return fmt.Errorf("configure provider: %w", err)
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", cfg.LLM.Provider)
	}

	var store cache.Cache
	if cfg.Cache.Enabled && !summarizeNoCache {
		store = cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.TTL)
	}

	source, err := rowsource.NewDuckDBSource(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing dataset: %v\n", closeErr)
		}
	}()

	s := summarize.NewSummarizer(cfg, source, source, provider, store)
	stats, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ %d pending, %d from cache, %d generated, %d failed\n",
		stats.Pending, stats.Cached, stats.Generated, stats.Failed)
	return nil
}
