package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wetstraat/kamerdata/internal/pipeline"
)

var (
	syncBaseURL string
	syncTimeout time.Duration
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the published dataset tables",
	Long: `Sync fetches every dataset table from the publisher into the local
data directory. Downloads honor the publisher's robots.txt and are
rate limited; a failed table leaves the previous local copy in place.

Example:
  kamerdata sync --base-url https://data.example.org/kamer`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncBaseURL, "base-url", "", "dataset base URL (overrides config)")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 30*time.Minute, "overall sync timeout")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if syncBaseURL != "" {
		cfg.Sync.BaseURL = syncBaseURL
	}

	tables := pipeline.AllTables()
	if verbose {
		fmt.Fprintf(os.Stderr, "Source:  %s\n", cfg.Sync.BaseURL)
		fmt.Fprintf(os.Stderr, "Target:  %s\n", cfg.Data.Dir)
		fmt.Fprintf(os.Stderr, "Tables:  %d\n", len(tables))
		fmt.Fprintln(os.Stderr)
	}

	syncer := pipeline.NewSyncer(cfg)
	if err := syncer.Sync(ctx, tables); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ %d tables synced to %s\n", len(tables), cfg.Data.Dir)
	return nil
}
