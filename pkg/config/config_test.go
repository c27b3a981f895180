package config_test

import (
	"path/filepath"
	"testing"

	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "ukbdemog"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "ukbdemog"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "ukbdemog", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "ukbdemog", "config.yaml"),
		},
		{
			msg: "codes file",
			fn:  config.CodesFilePath,
			res: filepath.Join(tempHome, ".config", "ukbdemog", "codes.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Extract defaults
		assert.Equal(t, "", cfg.Extract.SourcePath)
		assert.Equal(t, "demographic_data.tsv", cfg.Extract.OutputPath)
		assert.Equal(t, 5000, cfg.Extract.ChunkSize)
		assert.Equal(t, 200, cfg.Extract.BufferThreshold)
		assert.Equal(t, 0, cfg.Extract.MemoryBudgetMB)
		assert.Len(t, cfg.Extract.Fields, 8)

		// Filter defaults
		assert.Equal(t, "demographic_data.tsv", cfg.Filter.InputPath)
		assert.Equal(t, "european_participants.tsv", cfg.Filter.OutputPath)
		assert.Equal(t, "european_participant_ids.txt", cfg.Filter.IDListPath)
		assert.Equal(t, 1000, cfg.Filter.SampleRows)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})

	t.Run("default fields start with the identifier panel", func(t *testing.T) {
		assert.Equal(t, phenotab.FieldSpec{
			Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex",
		}, cfg.Extract.Fields[0])
		assert.Equal(t, phenotab.FieldSpec{
			Prefix: "f.22009.", ArrayLength: 40, Instances: 1, Label: "PC",
		}, cfg.Extract.Fields[5])
	})
}

func TestUpdate(t *testing.T) {
	t.Run("applies valid options", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptExtractSourcePath("/data/ukb.tab"),
			config.OptExtractChunkSize(1000),
			config.OptExtractMemoryBudgetMB(8192),
			config.OptFilterSampleRows(0),
			config.OptLogLevel("debug"),
		})

		assert.Equal(t, "/data/ukb.tab", cfg.Extract.SourcePath)
		assert.Equal(t, 1000, cfg.Extract.ChunkSize)
		assert.Equal(t, 8192, cfg.Extract.MemoryBudgetMB)
		assert.Equal(t, 0, cfg.Filter.SampleRows)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects invalid options, config stays valid", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptExtractChunkSize(-1),
			config.OptExtractOutputPath(""),
			config.OptLogLevel("loud"),
			config.OptLogFormat("xml"),
		})

		assert.Equal(t, 5000, cfg.Extract.ChunkSize)
		assert.Equal(t, "demographic_data.tsv", cfg.Extract.OutputPath)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})
}

func TestToOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptExtractSourcePath("/data/ukb.tab"),
		config.OptExtractChunkSize(2500),
		config.OptFilterCodesPath("/data/codes.yaml"),
		config.OptLogFormat("text"),
		config.OptExtractFields([]phenotab.FieldSpec{
			{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
		}),
	})

	roundTrip := config.New()
	roundTrip.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Extract, roundTrip.Extract)
	assert.Equal(t, cfg.Filter, roundTrip.Filter)
	assert.Equal(t, cfg.Log, roundTrip.Log)
}
