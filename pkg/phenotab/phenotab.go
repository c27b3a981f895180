// Package phenotab provides the in-memory representation of a
// phenotype subtable and the pure logic of the extraction stage:
// selecting source columns by field prefix and building the plan of
// human-readable output names.
//
// The package performs no I/O. Non-fatal inconsistencies (missing
// identifier column, fields without matches, name-count mismatches)
// are reported via gn.Warn and degrade gracefully; only an empty
// selection is an error.
package phenotab

import (
	"strings"
)

// FieldSpec describes one configured demographic field of the source
// dataset. Columns belonging to a field share a common name prefix,
// e.g. "f.21000." matches f.21000.0.0, f.21000.1.0 and f.21000.2.0.
type FieldSpec struct {
	// Prefix is the source column-name prefix that identifies the field.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// ArrayLength is the number of parallel sub-values the field has at
	// one assessment, e.g. 40 for genetic principal components. 1 for
	// scalar fields.
	ArrayLength int `mapstructure:"array_length" yaml:"array_length"`

	// Instances is the number of repeated assessment occasions, e.g. 3
	// for a field measured at baseline and two follow-ups. 1 for fields
	// collected once.
	Instances int `mapstructure:"instances" yaml:"instances"`

	// Label is the human-readable base name used for output columns.
	Label string `mapstructure:"label" yaml:"label"`
}

// Table is a row-ordered subtable of a phenotype export. The first
// column is always the subject identifier; rows keep the order of the
// source file. All cells are kept as raw strings, the original column
// types are not preserved.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows (the header is not a row).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1 when the
// table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// PrefixIndexes returns the positions of all columns whose name starts
// with prefix, in table order.
func (t *Table) PrefixIndexes(prefix string) []int {
	var res []int
	for i, col := range t.Columns {
		if strings.HasPrefix(col, prefix) {
			res = append(res, i)
		}
	}
	return res
}
