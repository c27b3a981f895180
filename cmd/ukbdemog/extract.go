package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/biocohort/ukbdemog/internal/ioextract"
	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	var (
		sourcePath string
		outputPath string
		chunkSize  int
		memBudget  int
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract demographic columns from a phenotype export",
		Long: `Stream a tab-delimited phenotype export and write a small subtable.

This command:
  1. Reads the header and resolves the columns matched by the
     configured field prefixes (identifier column always included)
  2. Scans the export sequentially in fixed-size row chunks, keeping
     only the selected columns and consolidating buffered chunks
     periodically to bound peak memory
  3. Renames the columns to human-readable labels derived from each
     field's array length and instance count
  4. Writes the result as tab-separated values

The source file is never loaded whole; only the selected subtable has
to fit in memory. A failed run leaves no output file.

Examples:
  # Extract using the configured field panel
  ukbdemog extract --source /data/ukb8045.r.tab

  # Smaller chunks for a memory-constrained node
  ukbdemog extract --source /data/ukb8045.r.tab --chunk-size 1000

  # Abort if resident memory passes 8 GB
  ukbdemog extract --source /data/ukb8045.r.tab --memory-budget 8192`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExtract(cmd, sourcePath, outputPath, chunkSize, memBudget)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	extractCmd.Flags().StringVarP(
		&sourcePath, "source", "s", "",
		"tab-delimited phenotype export to read",
	)
	extractCmd.Flags().StringVarP(
		&outputPath, "output", "o", "",
		"output file for the extracted subtable",
	)
	extractCmd.Flags().IntVarP(
		&chunkSize, "chunk-size", "c", 0,
		"rows read per chunk",
	)
	extractCmd.Flags().IntVarP(
		&memBudget, "memory-budget", "m", 0,
		"abort when resident memory exceeds this many MB (0 = no limit)",
	)

	return extractCmd
}

func runExtract(
	cmd *cobra.Command,
	sourcePath string,
	outputPath string,
	chunkSize int,
	memBudget int,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Build options from explicitly set flags
	var opts []config.Option
	if cmd.Flags().Changed("source") {
		opts = append(opts, config.OptExtractSourcePath(sourcePath))
	}
	if cmd.Flags().Changed("output") {
		opts = append(opts, config.OptExtractOutputPath(outputPath))
	}
	if cmd.Flags().Changed("chunk-size") {
		opts = append(opts, config.OptExtractChunkSize(chunkSize))
	}
	if cmd.Flags().Changed("memory-budget") {
		opts = append(opts, config.OptExtractMemoryBudgetMB(memBudget))
	}
	if len(opts) > 0 {
		cfg.Update(opts)
	}

	if cfg.Extract.SourcePath == "" {
		gn.Warn(`<warn>No source file set</warn>
   Pass <em>--source</em> or set <em>extract.source_path</em> in config.yaml`)
		err := fmt.Errorf("source file not set")
		slog.Error("missing source path", "error", err)
		return err
	}

	ext := ioextract.New(cfg)

	gn.Info("Starting extraction...")
	if err := ext.Extract(ctx); err != nil {
		return err
	}

	gn.Info(`Next step:
	 - Run '<em>ukbdemog filter</em>' to restrict the cohort
`)

	return nil
}
