package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wetstraat/kamerdata/internal/pipeline"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

var (
	buildDataDir   string
	buildOutputDir string
	buildTimeout   time.Duration
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the site view-models from the local dataset",
	Long: `Build reads the parquet tables from the data directory, joins them
into the per-page view-models, computes the derived statistics
(attendance, vote outliers, voting-similarity graph, top contributors)
and writes one JSON file per page under the output directory.

A table that is missing or unreadable degrades that page to an empty
view-model with a warning; the build itself keeps going.

Example:
  kamerdata build
  kamerdata build --data-dir ./src/data --output ./src/_generated`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildDataDir, "data-dir", "", "dataset directory (overrides config)")
	buildCmd.Flags().StringVar(&buildOutputDir, "output", "", "output directory (overrides config)")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", 10*time.Minute, "overall build timeout")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildDataDir != "" {
		cfg.Data.Dir = buildDataDir
	}
	if buildOutputDir != "" {
		cfg.Data.OutputDir = buildOutputDir
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Dataset: %s\n", cfg.Data.Dir)
		fmt.Fprintf(os.Stderr, "Output:  %s\n", cfg.Data.OutputDir)
		fmt.Fprintln(os.Stderr)
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

	p := pipeline.NewPipeline(cfg, source)
	if err := p.Generate(ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ View-models written to %s\n", cfg.Data.OutputDir)
	return nil
}
