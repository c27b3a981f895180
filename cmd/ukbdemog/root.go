package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/biocohort/ukbdemog/internal/iofs"
	"github.com/biocohort/ukbdemog/internal/iologger"
	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ukbdemog",
		Short: "ukbdemog extracts demographic cohorts from UK Biobank exports",
		Long: `ukbdemog works with tab-delimited UK Biobank phenotype exports that
are far too large to load whole. It runs in two stages:

  - extract: stream the export in row chunks, keep only the columns of
    the configured demographic fields, rename them to readable labels
    and write a small subtable
  - filter: restrict the subtable to a European cohort using
    self-reported and genetically inferred ethnicity codes, and write
    the filtered table plus a subject ID list

Configuration precedence (highest to lowest):
  1. CLI flags (--source, --chunk-size, etc.)
  2. Environment variables (UKBDEMOG_*)
  3. Config file (~/.config/ukbdemog/config.yaml)
  4. Built-in defaults

The ethnicity code sets live in ~/.config/ukbdemog/codes.yaml so the
same filtering logic can serve other cohort definitions.`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "ukbdemog version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for ukbdemog")

	rootCmd.AddCommand(getExtractCmd())
	rootCmd.AddCommand(getFilterCmd())

	return rootCmd
}

// bootstrap prepares the environment every command relies on: config
// and log directories, seeded config and codes files, logging, and
// the merged configuration.
func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureCodesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in config.ToOptions().
	v.SetEnvPrefix("UKBDEMOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Extract configuration
	v.BindEnv("extract.source_path", "UKBDEMOG_EXTRACT_SOURCE_PATH")
	v.BindEnv("extract.output_path", "UKBDEMOG_EXTRACT_OUTPUT_PATH")
	v.BindEnv("extract.chunk_size", "UKBDEMOG_EXTRACT_CHUNK_SIZE")
	v.BindEnv("extract.buffer_threshold", "UKBDEMOG_EXTRACT_BUFFER_THRESHOLD")
	v.BindEnv("extract.memory_budget_mb", "UKBDEMOG_EXTRACT_MEMORY_BUDGET_MB")

	// Filter configuration
	v.BindEnv("filter.input_path", "UKBDEMOG_FILTER_INPUT_PATH")
	v.BindEnv("filter.output_path", "UKBDEMOG_FILTER_OUTPUT_PATH")
	v.BindEnv("filter.id_list_path", "UKBDEMOG_FILTER_ID_LIST_PATH")
	v.BindEnv("filter.codes_path", "UKBDEMOG_FILTER_CODES_PATH")
	v.BindEnv("filter.sample_rows", "UKBDEMOG_FILTER_SAMPLE_ROWS")

	// Log configuration
	v.BindEnv("log.level", "UKBDEMOG_LOG_LEVEL")
	v.BindEnv("log.format", "UKBDEMOG_LOG_FORMAT")
	v.BindEnv("log.destination", "UKBDEMOG_LOG_DESTINATION")

	v.AutomaticEnv()
}
