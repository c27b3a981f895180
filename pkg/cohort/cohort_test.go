package cohort_test

import (
	"testing"

	"github.com/biocohort/ukbdemog/pkg/cohort"
	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func europeanCodes() *cohort.Codes {
	return &cohort.Codes{
		SelfReported: cohort.SelfReportedCodes{
			LabelPrefix: "Ethnic_backgr",
			European:    []int{1001, 1002, 1003},
		},
		Genetic: cohort.GeneticCodes{
			Label:    "Gen_ethnic_grp",
			European: []int{1},
		},
	}
}

func TestBuildMask_BothSignals(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{
			"ID", "Sex",
			"Ethnic_backgr_inst1", "Ethnic_backgr_inst2", "Ethnic_backgr_inst3",
			"Gen_ethnic_grp",
		},
		Rows: [][]string{
			// British at baseline, genetic Caucasian
			{"1000001", "0", "1001", "NaN", "NaN", "1"},
			// Indian in all instances, genetic missing
			{"1000002", "1", "3001", "3001", "3001", "NaN"},
			// Irish at follow-up only, genetic missing
			{"1000003", "0", "NA", "1002", "NA", ""},
			// Chinese, genetic Caucasian: self-reported veto stands
			{"1000004", "1", "5", "NA", "NA", "1"},
		},
	}

	mask, err := europeanCodes().BuildMask(table)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, false}, mask)
}

func TestBuildMask_GeneticOnly(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"ID", "Gen_ethnic_grp"},
		Rows: [][]string{
			{"1", "1"},
			{"2", "NaN"},
			{"3", "2"},
		},
	}

	mask, err := europeanCodes().BuildMask(table)
	require.NoError(t, err)

	// Without self-reported columns a missing genetic value is not
	// enough to include.
	assert.Equal(t, []bool{true, false, false}, mask)
}

func TestBuildMask_SelfReportedOnly(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"ID", "Ethnic_backgr_inst1"},
		Rows: [][]string{
			{"1", "1003"},
			{"2", "6"},
			{"3", "NA"},
		},
	}

	mask, err := europeanCodes().BuildMask(table)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, false}, mask)
}

func TestBuildMask_FloatFormattedCodes(t *testing.T) {
	// pandas round-trips integer codes to float formatting
	table := &phenotab.Table{
		Columns: []string{"ID", "Ethnic_backgr_inst1", "Gen_ethnic_grp"},
		Rows: [][]string{
			{"1", "1001.0", "1.0"},
			{"2", "3001.0", "NaN"},
		},
	}

	mask, err := europeanCodes().BuildMask(table)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, mask)
}

func TestBuildMask_NoEthnicityColumns(t *testing.T) {
	table := &phenotab.Table{
		Columns: []string{"ID", "Sex"},
		Rows:    [][]string{{"1", "0"}},
	}

	_, err := europeanCodes().BuildMask(table)
	require.ErrorIs(t, err, cohort.ErrNoEthnicityColumns)
}

func TestMissing(t *testing.T) {
	tests := []struct {
		val string
		res bool
	}{
		{"", true},
		{"NA", true},
		{"NaN", true},
		{"nan", true},
		{" NA ", true},
		{"0", false},
		{"1001", false},
		{"-3", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, cohort.Missing(v.val), "value %q", v.val)
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		val string
		n   int
		ok  bool
	}{
		{"1001", 1001, true},
		{"1001.0", 1001, true},
		{"-3", -3, true},
		{" 1 ", 1, true},
		{"", 0, false},
		{"NA", 0, false},
		{"1001.5", 0, false},
	}
	for _, v := range tests {
		n, ok := cohort.ParseCode(v.val)
		assert.Equal(t, v.ok, ok, "value %q", v.val)
		assert.Equal(t, v.n, n, "value %q", v.val)
	}
}
