package ioextract

import (
	"fmt"
	"runtime"

	"github.com/biocohort/ukbdemog/pkg/errcode"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// SourceStatError creates an error for a missing or unreadable source
// file. Halts before any output is written.
func SourceStatError(path string, err error) error {
	msg := `Cannot access source file <em>%s</em>

Check that the path is correct and the file is readable.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractSourceStatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot stat source: %w", fn, err),
	}
}

// HeaderError creates an error for a source whose header row cannot
// be read.
func HeaderError(path string, err error) error {
	msg := "Cannot read header of <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read header: %w", fn, err),
	}
}

// NoColumnsError creates an error for when no configured field prefix
// matched any header column.
func NoColumnsError(path string, err error) error {
	msg := `No extractable columns in <em>%s</em>

None of the configured field prefixes matched a header column.
Check the <em>fields</em> section of the configuration.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractNoColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

// ReadError creates an error for a malformed row or failed read
// during the chunked scan.
func ReadError(path string, err error) error {
	msg := "Error while reading <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read failed: %w", fn, err),
	}
}

// MemoryBudgetError creates an error for when the resident set grew
// past the configured budget. Carries the actionable hint.
func MemoryBudgetError(rss uint64, budgetMB int) error {
	msg := `Memory budget exceeded: resident set %s, budget %d MB

Reduce <em>chunk_size</em> or raise <em>memory_budget_mb</em>.`
	vars := []any{humanize.Bytes(rss), budgetMB}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractMemoryBudgetError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: resident set %d bytes over %d MB budget",
			fn, rss, budgetMB),
	}
}

// WriteError creates an error for a failed output write.
func WriteError(path string, err error) error {
	msg := "Cannot write output file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write failed: %w", fn, err),
	}
}

// CanceledError creates an error for a user interruption. No partial
// results are persisted.
func CanceledError(err error) error {
	msg := "Extraction interrupted, no output written"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractCanceledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
