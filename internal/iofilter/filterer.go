// Package iofilter implements the Filterer contract: it reads the
// extracted demographic subtable, restricts it to subjects whose
// self-reported and/or genetically inferred ethnicity codes match the
// configured European sets, and writes the filtered table plus a
// headerless subject ID list.
//
// The mask algebra lives in pkg/cohort; this package does the I/O
// around it.
package iofilter

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/biocohort/ukbdemog/internal/ioextract"
	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/biocohort/ukbdemog/pkg/ukbdemog"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// filterer implements the Filterer interface.
type filterer struct {
	cfg *config.Config
}

// New creates a new Filterer.
func New(cfg *config.Config) ukbdemog.Filterer {
	return &filterer{cfg: cfg}
}

// Filter loads the ethnicity codes and the extracted table, reports
// the pre-filter code distribution, applies the inclusion mask and
// writes the filtered table and the identifier list.
func (f *filterer) Filter(ctx context.Context) error {
	startTime := time.Now()

	codes, err := f.loadCodes()
	if err != nil {
		return err
	}

	inPath := f.cfg.Filter.InputPath
	table, err := readTable(inPath)
	if err != nil {
		return err
	}
	gn.Info("Input: <em>%s</em> subjects, %d columns from <em>%s</em>",
		humanize.Comma(int64(table.NumRows())), table.NumCols(), inPath)

	if n := f.cfg.Filter.SampleRows; n > 0 {
		reportDistribution(table, codes, n)
	}

	if err = ctx.Err(); err != nil {
		return CanceledError(err)
	}

	mask, err := codes.BuildMask(table)
	if err != nil {
		return NoEthnicityColumnsError(inPath, err)
	}

	filtered := applyMask(table, mask)

	outPath := f.cfg.Filter.OutputPath
	if err = ioextract.WriteTable(outPath, filtered); err != nil {
		return WriteError(outPath, err)
	}

	idPath := f.cfg.Filter.IDListPath
	if err = writeIDList(idPath, filtered); err != nil {
		return IDListWriteError(idPath, err)
	}

	var pct float64
	if table.NumRows() > 0 {
		pct = float64(filtered.NumRows()) / float64(table.NumRows()) * 100
	}
	duration := time.Since(startTime)
	slog.Info("Filtering finished",
		"input_rows", table.NumRows(),
		"kept_rows", filtered.NumRows(),
		"percent", pct,
		"output", outPath,
		"id_list", idPath,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("European cohort: <em>%s</em> of %s subjects (%.1f%%)",
		humanize.Comma(int64(filtered.NumRows())),
		humanize.Comma(int64(table.NumRows())),
		pct,
	)
	gn.Info("Filtered table: <em>%s</em>, ID list: <em>%s</em>",
		outPath, idPath)

	return nil
}

// applyMask copies the rows selected by the mask into a new table,
// preserving row order. Column names are shared, not copied: the
// input table is not used afterwards.
func applyMask(t *phenotab.Table, mask []bool) *phenotab.Table {
	res := &phenotab.Table{Columns: t.Columns}
	for i, keep := range mask {
		if keep {
			res.Rows = append(res.Rows, t.Rows[i])
		}
	}
	return res
}

// readTable loads a tab-separated file produced by the extraction
// stage. The extracted table is small, so it is read in one pass
// without chunking.
func readTable(path string) (*phenotab.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, InputReadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, InputReadError(path, err)
	}

	res := &phenotab.Table{
		Columns: append([]string(nil), header...),
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, InputReadError(path, err)
		}
		res.Rows = append(res.Rows, rec)
	}
	return res, nil
}

// writeIDList writes the identifier column, one value per line, no
// header. Same tmp-and-rename discipline as the table writer.
func writeIDList(path string, t *phenotab.Table) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	for _, row := range t.Rows {
		if _, err = f.WriteString(row[0] + "\n"); err != nil {
			break
		}
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
