package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in a
// valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Extract.SourcePath
	if s != "" {
		res = append(res, OptExtractSourcePath(s))
	}
	s = c.Extract.OutputPath
	if s != "" {
		res = append(res, OptExtractOutputPath(s))
	}
	i = c.Extract.ChunkSize
	if i > 0 {
		res = append(res, OptExtractChunkSize(i))
	}
	i = c.Extract.BufferThreshold
	if i > 0 {
		res = append(res, OptExtractBufferThreshold(i))
	}
	i = c.Extract.MemoryBudgetMB
	if i > 0 {
		res = append(res, OptExtractMemoryBudgetMB(i))
	}
	if len(c.Extract.Fields) > 0 {
		res = append(res, OptExtractFields(c.Extract.Fields))
	}

	s = c.Filter.InputPath
	if s != "" {
		res = append(res, OptFilterInputPath(s))
	}
	s = c.Filter.OutputPath
	if s != "" {
		res = append(res, OptFilterOutputPath(s))
	}
	s = c.Filter.IDListPath
	if s != "" {
		res = append(res, OptFilterIDListPath(s))
	}
	s = c.Filter.CodesPath
	if s != "" {
		res = append(res, OptFilterCodesPath(s))
	}
	i = c.Filter.SampleRows
	if i > 0 {
		res = append(res, OptFilterSampleRows(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
