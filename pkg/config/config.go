// Package config provides configuration management for ukbdemog.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify
//     Config
//   - Invalid options are rejected with gn.Warn() - config remains in a
//     valid state
//   - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use UKBDEMOG_ prefix with underscores for nesting:
//
//	UKBDEMOG_EXTRACT_SOURCE_PATH=/data/ukb8045.r.tab
//	UKBDEMOG_EXTRACT_CHUNK_SIZE=5000
//	UKBDEMOG_LOG_LEVEL=info
package config

import (
	"github.com/biocohort/ukbdemog/pkg/phenotab"
)

// Config represents the complete ukbdemog configuration.
type Config struct {
	// Extract contains settings for the extraction stage.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	// Filter contains settings for the European-filter stage.
	Filter FilterConfig `mapstructure:"filter" yaml:"filter"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by the CLI during init, there is no
	// default value for it.
	HomeDir string
}

// ExtractConfig contains settings for the extraction stage.
type ExtractConfig struct {
	// SourcePath is the tab-delimited phenotype export to read. Files
	// in the multi-gigabyte range are expected.
	SourcePath string `mapstructure:"source_path" yaml:"source_path"`

	// OutputPath is the tab-delimited file the extracted subtable is
	// written to.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// ChunkSize is the number of rows read per chunk. Smaller chunks
	// lower peak memory at the cost of throughput.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// BufferThreshold is the number of buffered chunks that triggers an
	// intermediate consolidation. A coarse heuristic; the final table
	// still has to fit in memory.
	BufferThreshold int `mapstructure:"buffer_threshold" yaml:"buffer_threshold"`

	// MemoryBudgetMB aborts the extraction when the resident set grows
	// past this many megabytes, checked before each consolidation.
	// Zero disables the check.
	MemoryBudgetMB int `mapstructure:"memory_budget_mb" yaml:"memory_budget_mb"`

	// Fields is the ordered list of demographic fields to extract.
	Fields []phenotab.FieldSpec `mapstructure:"fields" yaml:"fields"`
}

// FilterConfig contains settings for the European-filter stage.
type FilterConfig struct {
	// InputPath is the extracted subtable to filter. Defaults to the
	// extraction stage's output path.
	InputPath string `mapstructure:"input_path" yaml:"input_path"`

	// OutputPath is the tab-delimited file the filtered table is
	// written to.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// IDListPath is the headerless file listing the identifiers of the
	// retained subjects, one per line.
	IDListPath string `mapstructure:"id_list_path" yaml:"id_list_path"`

	// CodesPath overrides the location of the ethnicity codes file.
	// Empty means the default codes.yaml in the config directory.
	CodesPath string `mapstructure:"codes_path" yaml:"codes_path"`

	// SampleRows is the number of leading rows used for the ethnicity
	// distribution report printed before filtering. Zero disables the
	// report.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values. The returned
// config is always valid and ready to use. Default values can be
// overridden using Option functions via Update(). The default field
// set is the demographic panel of the original cohort definition:
// sex, self-reported ethnicity, age at visit, genetic sex, genetic
// ethnic grouping, 40 principal components and the two genetic
// exclusion flags.
func New() *Config {
	res := &Config{
		Extract: ExtractConfig{
			OutputPath:      "demographic_data.tsv",
			ChunkSize:       5000,
			BufferThreshold: 200,
			Fields:          DefaultFields(),
		},
		Filter: FilterConfig{
			InputPath:  "demographic_data.tsv",
			OutputPath: "european_participants.tsv",
			IDListPath: "european_participant_ids.txt",
			SampleRows: 1000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}
	return res
}

// DefaultFields returns the default demographic field panel.
func DefaultFields() []phenotab.FieldSpec {
	return []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
		{Prefix: "f.21000.", ArrayLength: 1, Instances: 3, Label: "Ethnic_backgr"},
		{Prefix: "f.21003.", ArrayLength: 1, Instances: 3, Label: "Age_at_Visit"},
		{Prefix: "f.22001.", ArrayLength: 1, Instances: 1, Label: "Genetic_sex"},
		{Prefix: "f.22006.", ArrayLength: 1, Instances: 1, Label: "Gen_ethnic_grp"},
		{Prefix: "f.22009.", ArrayLength: 40, Instances: 1, Label: "PC"},
		{Prefix: "f.22010.", ArrayLength: 1, Instances: 1, Label: "Geno_analys_exclns"},
		{Prefix: "f.22018.", ArrayLength: 1, Instances: 1, Label: "Relat_exclns"},
	}
}
