package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/biocohort/ukbdemog/internal/iofilter"
	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getFilterCmd returns the filter command.
func getFilterCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		idListPath string
		codesPath  string
		sampleRows int
	)

	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Restrict the extracted table to a European cohort",
		Long: `Filter the extracted demographic table by ethnicity codes.

This command:
  1. Loads the ethnicity code sets from codes.yaml
  2. Reads the table produced by 'ukbdemog extract'
  3. Reports the ethnicity code distribution over a leading sample
  4. Keeps subjects whose self-reported ethnic background is in the
     European set in any instance, AND whose genetic ethnic grouping
     is European or missing; without self-reported columns, the
     genetic code alone decides
  5. Writes the filtered table and a headerless subject ID list

Examples:
  # Filter with the default paths from config.yaml
  ukbdemog filter

  # Explicit input and outputs
  ukbdemog filter -i demographic_data.tsv -o europeans.tsv --ids ids.txt

  # A different cohort definition
  ukbdemog filter --codes my_codes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFilter(
				cmd, inputPath, outputPath,
				idListPath, codesPath, sampleRows,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	filterCmd.Flags().StringVarP(
		&inputPath, "input", "i", "",
		"extracted table to filter",
	)
	filterCmd.Flags().StringVarP(
		&outputPath, "output", "o", "",
		"output file for the filtered table",
	)
	filterCmd.Flags().StringVar(
		&idListPath, "ids", "",
		"output file for the subject ID list",
	)
	filterCmd.Flags().StringVar(
		&codesPath, "codes", "",
		"ethnicity codes file (default: codes.yaml in config dir)",
	)
	filterCmd.Flags().IntVar(
		&sampleRows, "sample-rows", 0,
		"rows sampled for the distribution report (0 = skip)",
	)

	return filterCmd
}

func runFilter(
	cmd *cobra.Command,
	inputPath string,
	outputPath string,
	idListPath string,
	codesPath string,
	sampleRows int,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Build options from explicitly set flags
	var opts []config.Option
	if cmd.Flags().Changed("input") {
		opts = append(opts, config.OptFilterInputPath(inputPath))
	}
	if cmd.Flags().Changed("output") {
		opts = append(opts, config.OptFilterOutputPath(outputPath))
	}
	if cmd.Flags().Changed("ids") {
		opts = append(opts, config.OptFilterIDListPath(idListPath))
	}
	if cmd.Flags().Changed("codes") {
		opts = append(opts, config.OptFilterCodesPath(codesPath))
	}
	if cmd.Flags().Changed("sample-rows") {
		opts = append(opts, config.OptFilterSampleRows(sampleRows))
	}
	if len(opts) > 0 {
		cfg.Update(opts)
	}

	fil := iofilter.New(cfg)

	gn.Info("Filtering European cohort...")
	if err := fil.Filter(ctx); err != nil {
		return err
	}

	return nil
}
