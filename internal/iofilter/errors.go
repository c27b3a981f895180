package iofilter

import (
	"fmt"
	"runtime"

	"github.com/biocohort/ukbdemog/pkg/errcode"
	"github.com/gnames/gn"
)

// InputReadError creates an error for a missing or unreadable
// extracted table.
func InputReadError(path string, err error) error {
	msg := `Cannot read extracted table <em>%s</em>

Run <em>'ukbdemog extract'</em> first to produce it.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterInputReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read input: %w", fn, err),
	}
}

// CodesConfigError creates an error for when the ethnicity codes file
// cannot be loaded.
func CodesConfigError(path string, err error) error {
	msg := `Cannot load ethnicity codes

<em>Codes file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate the default on next run`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterCodesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to load codes config: %w", fn, err),
	}
}

// NoEthnicityColumnsError creates an error for a table without
// self-reported or genetic ethnicity columns.
func NoEthnicityColumnsError(path string, err error) error {
	msg := `No ethnicity columns in <em>%s</em>

The table has neither self-reported nor genetic ethnicity columns
matching the codes file. Check the extraction field labels.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterNoEthnicityColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

// WriteError creates an error for a failed filtered-table write.
func WriteError(path string, err error) error {
	msg := "Cannot write filtered table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write failed: %w", fn, err),
	}
}

// IDListWriteError creates an error for a failed identifier list
// write.
func IDListWriteError(path string, err error) error {
	msg := "Cannot write identifier list <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterIDListWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write failed: %w", fn, err),
	}
}

// CanceledError creates an error for a user interruption.
func CanceledError(err error) error {
	msg := "Filtering interrupted, no output written"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterCanceledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
