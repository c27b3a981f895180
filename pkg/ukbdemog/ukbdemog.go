// Package ukbdemog defines the contracts for the two stages of the
// pipeline: extraction of a demographic subtable from a phenotype
// export, and filtering of that subtable to a European cohort.
package ukbdemog

import (
	"context"
)

// Extractor streams a tab-delimited phenotype export, keeps only the
// columns matched by the configured field prefixes, renames them from
// per-field cardinality metadata, and writes the result to a smaller
// tab-delimited file.
type Extractor interface {
	// Extract runs the full extraction. The source file is scanned
	// exactly once, in fixed-size row chunks, so files much larger
	// than available memory can be processed as long as the selected
	// subtable itself fits in memory. A failed extraction leaves no
	// output file behind.
	Extract(ctx context.Context) error
}

// Filterer reads the extracted subtable, restricts it to subjects with
// European ethnicity codes (self-reported and/or genetically inferred),
// and writes the filtered table plus a headerless subject ID list.
type Filterer interface {
	Filter(ctx context.Context) error
}
