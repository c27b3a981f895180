package config

import (
	"github.com/biocohort/ukbdemog/pkg/phenotab"
)

// Option is a function that modifies a Config.
type Option func(*Config)

// OptExtractSourcePath sets the phenotype export to read.
func OptExtractSourcePath(s string) Option {
	return func(c *Config) {
		if isValidString("Extract.SourcePath", s) {
			c.Extract.SourcePath = s
		}
	}
}

// OptExtractOutputPath sets the extraction output file.
func OptExtractOutputPath(s string) Option {
	return func(c *Config) {
		if isValidString("Extract.OutputPath", s) {
			c.Extract.OutputPath = s
		}
	}
}

// OptExtractChunkSize sets the number of rows read per chunk.
func OptExtractChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Extract.ChunkSize", i) {
			c.Extract.ChunkSize = i
		}
	}
}

// OptExtractBufferThreshold sets the buffered-chunk count that
// triggers an intermediate consolidation.
func OptExtractBufferThreshold(i int) Option {
	return func(c *Config) {
		if isValidInt("Extract.BufferThreshold", i) {
			c.Extract.BufferThreshold = i
		}
	}
}

// OptExtractMemoryBudgetMB sets the resident-set budget in megabytes.
// Zero disables the check, so it is accepted too.
func OptExtractMemoryBudgetMB(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Extract.MemoryBudgetMB = i
		}
	}
}

// OptExtractFields sets the ordered list of fields to extract.
func OptExtractFields(ff []phenotab.FieldSpec) Option {
	return func(c *Config) {
		if len(ff) > 0 {
			c.Extract.Fields = ff
		}
	}
}

// OptFilterInputPath sets the table the filter stage reads.
func OptFilterInputPath(s string) Option {
	return func(c *Config) {
		if isValidString("Filter.InputPath", s) {
			c.Filter.InputPath = s
		}
	}
}

// OptFilterOutputPath sets the filtered-table output file.
func OptFilterOutputPath(s string) Option {
	return func(c *Config) {
		if isValidString("Filter.OutputPath", s) {
			c.Filter.OutputPath = s
		}
	}
}

// OptFilterIDListPath sets the identifier list output file.
func OptFilterIDListPath(s string) Option {
	return func(c *Config) {
		if isValidString("Filter.IDListPath", s) {
			c.Filter.IDListPath = s
		}
	}
}

// OptFilterCodesPath overrides the ethnicity codes file location.
func OptFilterCodesPath(s string) Option {
	return func(c *Config) {
		if isValidString("Filter.CodesPath", s) {
			c.Filter.CodesPath = s
		}
	}
}

// OptFilterSampleRows sets the sample size of the pre-filter
// distribution report. Zero disables the report, so it is accepted.
func OptFilterSampleRows(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Filter.SampleRows = i
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
func OptLogFormat(s string) Option {
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where log output goes.
func OptLogDestination(s string) Option {
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory used to derive config, cache and
// log locations.
func OptHomeDir(s string) Option {
	return func(c *Config) {
		if isValidString("HomeDir", s) {
			c.HomeDir = s
		}
	}
}
