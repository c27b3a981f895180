package phenotab

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// IDLabel is the fixed output name of the identifier column. It does
// not depend on the field configuration.
const IDLabel = "ID"

// idCandidates are the recognized identifier column names, in priority
// order. UK Biobank exports use f.eid; eid and ID cover tables that
// already went through one round of processing.
var idCandidates = []string{"f.eid", "eid", "ID"}

// ErrNoColumns is returned by Select when no field prefix matched any
// header column, so there is nothing to extract.
var ErrNoColumns = fmt.Errorf("no extractable columns")

// Selection is the resolved list of source columns to extract.
type Selection struct {
	// Columns holds the column names in extraction order: identifier
	// first, then matched columns in field order and, within a field,
	// in header order.
	Columns []string

	// Indexes holds the position of each selected column in the source
	// header, parallel to Columns.
	Indexes []int

	// IDColumn is the name of the column used as subject identifier.
	IDColumn string

	// IDFallback is true when no recognized identifier name was found
	// and the first header column was used instead.
	IDFallback bool
}

// Select resolves which header columns to extract for the given
// fields. The identifier column is always first; every column is kept
// at most once, at its first occurrence. Returns ErrNoColumns when no
// field matched anything beyond the identifier.
func Select(header []string, fields []FieldSpec) (*Selection, error) {
	if len(header) == 0 {
		return nil, ErrNoColumns
	}

	res := &Selection{}

	res.IDColumn, res.IDFallback = findIDColumn(header)
	if res.IDFallback {
		gn.Warn(
			"No identifier column found, using first column <em>%s</em>",
			res.IDColumn,
		)
	}

	seen := make(map[string]struct{})
	add := func(name string, idx int) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		res.Columns = append(res.Columns, name)
		res.Indexes = append(res.Indexes, idx)
	}

	add(res.IDColumn, slices.Index(header, res.IDColumn))

	for _, field := range fields {
		var matched int
		for i, col := range header {
			if strings.HasPrefix(col, field.Prefix) {
				add(col, i)
				matched++
			}
		}
		gn.Info("Field <em>%s</em>: %d columns found", field.Prefix, matched)
	}

	if len(res.Columns) <= 1 {
		return nil, ErrNoColumns
	}

	return res, nil
}

// findIDColumn scans the header for the identifier candidates in
// priority order. Falls back to the first header column.
func findIDColumn(header []string) (string, bool) {
	for _, cand := range idCandidates {
		for _, col := range header {
			if col == cand {
				return col, false
			}
		}
	}
	return header[0], true
}
