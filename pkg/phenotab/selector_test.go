package phenotab_test

import (
	"testing"

	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_EndToEnd(t *testing.T) {
	header := []string{
		"f.eid", "f.31.0.0",
		"f.21000.0.0", "f.21000.1.0", "f.21000.2.0",
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
		{Prefix: "f.21000.", ArrayLength: 1, Instances: 3, Label: "Ethnic_backgr"},
	}

	sel, err := phenotab.Select(header, fields)
	require.NoError(t, err)

	assert.Equal(t, header, sel.Columns,
		"all columns match, in header order, identifier first")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, sel.Indexes)
	assert.Equal(t, "f.eid", sel.IDColumn)
	assert.False(t, sel.IDFallback)
}

// Without overlapping prefixes the selection length is
// 1 (identifier) + the sum of per-field matches, with no duplicates.
func TestSelect_DisjointPrefixes(t *testing.T) {
	header := []string{
		"f.eid",
		"f.31.0.0",
		"f.21000.0.0", "f.21000.1.0", "f.21000.2.0",
		"f.99.0.0", // not requested
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.31.", Label: "Sex"},
		{Prefix: "f.21000.", Label: "Ethnic_backgr"},
	}

	sel, err := phenotab.Select(header, fields)
	require.NoError(t, err)

	assert.Len(t, sel.Columns, 1+1+3)
	seen := make(map[string]int)
	for _, c := range sel.Columns {
		seen[c]++
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "column %s selected once", c)
	}
	assert.NotContains(t, sel.Columns, "f.99.0.0")
}

// A column matched by two prefixes is kept once, at the position of
// the first field that matched it.
func TestSelect_OverlappingPrefixes(t *testing.T) {
	header := []string{"f.eid", "f.21000.0.0", "f.21000.1.0"}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.21000.0.", Label: "First"},
		{Prefix: "f.21000.", Label: "All"},
	}

	sel, err := phenotab.Select(header, fields)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"f.eid", "f.21000.0.0", "f.21000.1.0"},
		sel.Columns,
		"f.21000.0.0 stays at its first-seen position")
}

func TestSelect_IDPriority(t *testing.T) {
	// eid appears before f.eid in the header, but f.eid has higher
	// priority among the recognized identifier names.
	header := []string{"eid", "f.eid", "f.31.0.0"}
	fields := []phenotab.FieldSpec{{Prefix: "f.31.", Label: "Sex"}}

	sel, err := phenotab.Select(header, fields)
	require.NoError(t, err)

	assert.Equal(t, "f.eid", sel.IDColumn)
	assert.Equal(t, "f.eid", sel.Columns[0])
	assert.False(t, sel.IDFallback)
}

func TestSelect_IDFallback(t *testing.T) {
	header := []string{"subject", "f.31.0.0"}
	fields := []phenotab.FieldSpec{{Prefix: "f.31.", Label: "Sex"}}

	sel, err := phenotab.Select(header, fields)
	require.NoError(t, err)

	assert.True(t, sel.IDFallback)
	assert.Equal(t, "subject", sel.IDColumn)
	assert.Equal(t, []string{"subject", "f.31.0.0"}, sel.Columns)
}

func TestSelect_NoColumns(t *testing.T) {
	header := []string{"f.eid", "f.31.0.0"}
	fields := []phenotab.FieldSpec{{Prefix: "f.99.", Label: "Nothing"}}

	sel, err := phenotab.Select(header, fields)
	require.ErrorIs(t, err, phenotab.ErrNoColumns)
	assert.Nil(t, sel)
}

func TestSelect_EmptyHeader(t *testing.T) {
	_, err := phenotab.Select(nil, config8Fields())
	require.ErrorIs(t, err, phenotab.ErrNoColumns)
}

func config8Fields() []phenotab.FieldSpec {
	return []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
	}
}
