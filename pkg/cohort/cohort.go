// Package cohort provides the ethnicity-code configuration schema and
// the inclusion mask used to restrict an extracted subtable to a
// European cohort.
//
// The code sets are domain lookup data, not algorithm: they live in
// codes.yaml so the same filtering logic can serve other cohort
// definitions. This package defines the schema and the mask algebra;
// loading the file is left to the I/O layer.
package cohort

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biocohort/ukbdemog/pkg/phenotab"
)

// Codes represents the codes.yaml configuration file.
type Codes struct {
	// SelfReported configures the self-reported ethnic background
	// signal (UK Biobank field 21000, one column per instance).
	SelfReported SelfReportedCodes `mapstructure:"self_reported" yaml:"self_reported"`

	// Genetic configures the genetically inferred ethnic grouping
	// signal (UK Biobank field 22006, a single column).
	Genetic GeneticCodes `mapstructure:"genetic" yaml:"genetic"`

	// Descriptions maps ethnicity codes to human-readable names. Used
	// only for the distribution report.
	Descriptions map[int]string `mapstructure:"descriptions" yaml:"descriptions,omitempty"`
}

// SelfReportedCodes describes the self-reported ethnicity signal.
type SelfReportedCodes struct {
	// LabelPrefix is the output-column prefix of the self-reported
	// ethnicity instances, e.g. "Ethnic_backgr" matches
	// Ethnic_backgr_inst1..inst3.
	LabelPrefix string `mapstructure:"label_prefix" yaml:"label_prefix"`

	// European lists the codes counted as European, e.g. 1001 British,
	// 1002 Irish, 1003 any other white background.
	European []int `mapstructure:"european" yaml:"european"`
}

// GeneticCodes describes the genetically inferred ethnicity signal.
type GeneticCodes struct {
	// Label is the output column name, e.g. "Gen_ethnic_grp".
	Label string `mapstructure:"label" yaml:"label"`

	// European lists the codes counted as European, e.g. 1 Caucasian.
	European []int `mapstructure:"european" yaml:"european"`
}

// ErrNoEthnicityColumns is returned by BuildMask when the table has
// neither self-reported nor genetic ethnicity columns.
var ErrNoEthnicityColumns = fmt.Errorf("no ethnicity columns in table")

// BuildMask computes the per-row inclusion mask.
//
// The self-reported mask is the OR, over every instance column, of the
// row's value being in the European code set. The genetic predicate is
// the row's value being in the genetic European code set, or missing.
// When both signals are present the masks are AND-combined: a missing
// genetic value does not disqualify a self-reported European. When no
// self-reported columns exist, the genetic code set alone decides (and
// a missing value is then not enough to include).
func (c *Codes) BuildMask(t *phenotab.Table) ([]bool, error) {
	selfIdx := t.PrefixIndexes(c.SelfReported.LabelPrefix)
	genIdx := t.ColumnIndex(c.Genetic.Label)

	if len(selfIdx) == 0 && genIdx < 0 {
		return nil, ErrNoEthnicityColumns
	}

	mask := make([]bool, t.NumRows())

	for _, ci := range selfIdx {
		for ri, row := range t.Rows {
			mask[ri] = mask[ri] || codeIn(row[ci], c.SelfReported.European)
		}
	}

	if genIdx >= 0 {
		anySelf := len(selfIdx) > 0
		for ri, row := range t.Rows {
			v := row[genIdx]
			genetic := codeIn(v, c.Genetic.European)
			if anySelf {
				mask[ri] = mask[ri] && (genetic || Missing(v))
			} else {
				mask[ri] = genetic
			}
		}
	}

	return mask, nil
}

// Missing reports whether a cell counts as a missing value. UK Biobank
// .tab exports use NA; tables that round-tripped through pandas carry
// NaN; an empty cell is missing too.
func Missing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "nan":
		return true
	}
	return false
}

// ParseCode converts a cell to an ethnicity code. Accepts integer
// cells and float-formatted integers such as "1001.0".
func ParseCode(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func codeIn(v string, set []int) bool {
	n, ok := ParseCode(v)
	if !ok {
		return false
	}
	for _, c := range set {
		if c == n {
			return true
		}
	}
	return false
}
