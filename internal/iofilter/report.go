package iofilter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biocohort/ukbdemog/pkg/cohort"
	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/gnames/gn"
)

// reportTopCodes caps how many codes are shown per column.
const reportTopCodes = 10

type codeCount struct {
	desc  string
	count int
}

// reportDistribution prints the per-code counts of every self-reported
// ethnicity column over the first sampleRows rows, with human-readable
// code names from the codes file. Purely informational; mirrors the
// sanity check an analyst runs before trusting a cohort filter.
func reportDistribution(
	t *phenotab.Table,
	codes *cohort.Codes,
	sampleRows int,
) {
	cols := t.PrefixIndexes(codes.SelfReported.LabelPrefix)
	if len(cols) == 0 {
		return
	}

	n := min(sampleRows, t.NumRows())
	gn.Info("Ethnicity distribution over first <em>%d</em> subjects:", n)

	for _, ci := range cols {
		counts := make(map[string]int)
		var missing int
		for _, row := range t.Rows[:n] {
			v := row[ci]
			if cohort.Missing(v) {
				missing++
				continue
			}
			counts[describeCode(v, codes)]++
		}

		top := make([]codeCount, 0, len(counts))
		for desc, cnt := range counts {
			top = append(top, codeCount{desc: desc, count: cnt})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].count != top[j].count {
				return top[i].count > top[j].count
			}
			return top[i].desc < top[j].desc
		})
		if len(top) > reportTopCodes {
			top = top[:reportTopCodes]
		}

		var lines []string
		for _, cc := range top {
			lines = append(lines, fmt.Sprintf("  %s: %d", cc.desc, cc.count))
		}
		if missing > 0 {
			lines = append(lines, fmt.Sprintf("  missing: %d", missing))
		}

		gn.Info("<em>%s</em>:\n%s", t.Columns[ci], strings.Join(lines, "\n"))
	}
}

func describeCode(v string, codes *cohort.Codes) string {
	n, ok := cohort.ParseCode(v)
	if !ok {
		return fmt.Sprintf("unparsable value %q", v)
	}
	if desc, ok := codes.Descriptions[n]; ok {
		return fmt.Sprintf("%d (%s)", n, desc)
	}
	return fmt.Sprintf("%d (unknown code)", n)
}
