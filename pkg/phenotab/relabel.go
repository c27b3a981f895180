package phenotab

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
)

// NamePlan is an ordered sequence of output column names, one per
// table column.
type NamePlan []string

// BuildNamePlan derives human-readable output names for every column
// of the table from the per-field cardinality metadata. The first name
// is always IDLabel. For each field, in configuration order:
//
//   - array length > 1: indexed names <label>1..<labelN>, one per
//     matched column, bounded by the declared array length (used for
//     sets like principal components);
//   - otherwise, instance count > 1: <label>_inst1.._instN, bounded by
//     the declared instance count (repeated-visit fields);
//   - otherwise, both equal to 1: the bare label;
//   - otherwise (no usable cardinality metadata): <label>_1.._N over
//     all matched columns.
//
// A field with both array length > 1 and instance count > 1 gets
// array-style names only; the instance dimension is dropped. Fields
// that matched no column are skipped with a warning. The plan is
// padded with Col_<n> placeholders or truncated so its length always
// equals the table's column count.
func BuildNamePlan(t *Table, fields []FieldSpec) NamePlan {
	if t.NumCols() == 0 {
		return NamePlan{}
	}

	names := NamePlan{IDLabel}

	for _, field := range fields {
		matched := 0
		for _, col := range t.Columns[1:] {
			if strings.HasPrefix(col, field.Prefix) {
				matched++
			}
		}

		if matched == 0 {
			gn.Warn("No columns for field <em>%s</em>", field.Prefix)
			continue
		}

		switch {
		case field.ArrayLength == 1 && field.Instances == 1:
			names = append(names, field.Label)
		case field.ArrayLength > 1:
			for j := range min(matched, field.ArrayLength) {
				names = append(names, fmt.Sprintf("%s%d", field.Label, j+1))
			}
		case field.Instances > 1:
			for j := range min(matched, field.Instances) {
				names = append(names, fmt.Sprintf("%s_inst%d", field.Label, j+1))
			}
		default:
			for j := range matched {
				names = append(names, fmt.Sprintf("%s_%d", field.Label, j+1))
			}
		}
	}

	// Defensive guard: the plan must line up with the table exactly.
	for len(names) < len(t.Columns) {
		names = append(names, fmt.Sprintf("Col_%d", len(names)))
	}
	names = names[:len(t.Columns)]

	return names
}

// Apply replaces the table's column names with the plan. The plan is
// applied only when its length equals the column count; otherwise the
// original names are kept and a warning is emitted. Returns true when
// the plan was applied.
func (p NamePlan) Apply(t *Table) bool {
	if len(p) != len(t.Columns) {
		gn.Warn(
			"Name plan has %d names for %d columns, keeping original names",
			len(p), len(t.Columns),
		)
		return false
	}
	copy(t.Columns, p)
	return true
}
