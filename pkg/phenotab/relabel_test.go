package phenotab_test

import (
	"fmt"
	"testing"

	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNamePlan_ArrayField(t *testing.T) {
	cols := []string{"f.eid"}
	for i := range 40 {
		cols = append(cols, fmt.Sprintf("f.22009.0.%d", i+1))
	}
	table := &phenotab.Table{Columns: cols}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.22009.", ArrayLength: 40, Instances: 1, Label: "PC"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	require.Len(t, plan, 41)
	assert.Equal(t, "ID", plan[0])
	for i := range 40 {
		assert.Equal(t, fmt.Sprintf("PC%d", i+1), plan[i+1])
	}
}

func TestBuildNamePlan_InstanceField(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{
			"f.eid", "f.21003.0.0", "f.21003.1.0", "f.21003.2.0",
		},
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.21003.", ArrayLength: 1, Instances: 3, Label: "Age_at_Visit"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{
		"ID",
		"Age_at_Visit_inst1",
		"Age_at_Visit_inst2",
		"Age_at_Visit_inst3",
	}, plan)
}

func TestBuildNamePlan_ScalarField(t *testing.T) {
	table := &phenotab.Table{Columns: []string{"f.eid", "f.31.0.0"}}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{"ID", "Sex"}, plan)
}

// A field without usable cardinality metadata falls back to
// underscore-indexed names over all matched columns.
func TestBuildNamePlan_NoCardinality(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"f.eid", "f.40.0.0", "f.40.1.0"},
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.40.", Label: "Thing"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{"ID", "Thing_1", "Thing_2"}, plan)
}

// Array-style naming wins when both cardinalities are above one; the
// instance dimension is dropped.
func TestBuildNamePlan_ArrayBeatsInstances(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"f.eid", "f.50.0.0", "f.50.1.0"},
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.50.", ArrayLength: 2, Instances: 2, Label: "Both"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{"ID", "Both1", "Both2"}, plan)
}

// Matched columns beyond the declared cardinality stay unnamed by the
// field and get placeholder names instead.
func TestBuildNamePlan_Padding(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"f.eid", "f.21003.0.0", "f.21003.1.0", "f.21003.2.0"},
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.21003.", ArrayLength: 1, Instances: 2, Label: "Age"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{
		"ID", "Age_inst1", "Age_inst2", "Col_3",
	}, plan)
}

// A field with no matching columns is skipped; the hole is padded.
func TestBuildNamePlan_MissingField(t *testing.T) {
	table := &phenotab.Table{Columns: []string{"f.eid", "f.77.0.0"}}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
	}

	plan := phenotab.BuildNamePlan(table, fields)

	assert.Equal(t, phenotab.NamePlan{"ID", "Col_1"}, plan)
}

func TestBuildNamePlan_EndToEndScenario(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{
			"f.eid", "f.31.0.0",
			"f.21000.0.0", "f.21000.1.0", "f.21000.2.0",
		},
	}
	fields := []phenotab.FieldSpec{
		{Prefix: "f.31.", ArrayLength: 1, Instances: 1, Label: "Sex"},
		{Prefix: "f.21000.", ArrayLength: 1, Instances: 3, Label: "Ethnic_backgr"},
	}

	plan := phenotab.BuildNamePlan(table, fields)
	require.True(t, plan.Apply(table))

	assert.Equal(t, []string{
		"ID", "Sex",
		"Ethnic_backgr_inst1", "Ethnic_backgr_inst2", "Ethnic_backgr_inst3",
	}, table.Columns)
}

func TestNamePlan_ApplyMismatch(t *testing.T) {
	table := &phenotab.Table{Columns: []string{"ID", "A", "B"}}
	plan := phenotab.NamePlan{"ID", "X"}

	assert.False(t, plan.Apply(table))
	assert.Equal(t, []string{"ID", "A", "B"}, table.Columns,
		"original names kept on mismatch")
}
