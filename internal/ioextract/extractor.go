// Package ioextract implements the Extractor contract. It streams a
// tab-delimited phenotype export in fixed-size row chunks, keeps only
// the columns resolved from the configured field prefixes, and
// assembles them into one in-memory table while bounding the number
// of buffered chunks through periodic consolidation.
//
// This is an impure I/O package; the column selection and renaming
// logic it drives lives in pkg/phenotab.
package ioextract

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/biocohort/ukbdemog/pkg/config"
	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/biocohort/ukbdemog/pkg/ukbdemog"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// extractor implements the Extractor interface.
type extractor struct {
	cfg *config.Config
	mem MemProbe
}

// New creates a new Extractor with the default memory probe.
func New(cfg *config.Config) ukbdemog.Extractor {
	return &extractor{cfg: cfg, mem: ProcStatusRSS}
}

// NewWithProbe creates an Extractor with a custom memory probe. A nil
// probe disables memory reporting and the memory budget check.
func NewWithProbe(cfg *config.Config, mem MemProbe) ukbdemog.Extractor {
	return &extractor{cfg: cfg, mem: mem}
}

// Extract runs the full extraction: header peek, column resolution,
// chunked scan, relabeling, output write. The output file appears
// only after the whole pipeline succeeded.
func (e *extractor) Extract(ctx context.Context) error {
	startTime := time.Now()
	srcPath := e.cfg.Extract.SourcePath

	info, err := os.Stat(srcPath)
	if err != nil {
		return SourceStatError(srcPath, err)
	}
	gn.Info("Source file: <em>%s</em> (%s)",
		srcPath, humanize.Bytes(uint64(info.Size())))
	slog.Info("Starting extraction",
		"source", srcPath,
		"size", info.Size(),
		"chunk_size", e.cfg.Extract.ChunkSize,
	)

	header, err := e.peekHeader(srcPath)
	if err != nil {
		return err
	}
	slog.Info("Header read", "columns", len(header))

	sel, err := phenotab.Select(header, e.cfg.Extract.Fields)
	if err != nil {
		if errors.Is(err, phenotab.ErrNoColumns) {
			return NoColumnsError(srcPath, err)
		}
		return err
	}
	gn.Info("Columns to extract: <em>%d</em> of %d",
		len(sel.Columns), len(header))

	table, err := e.scan(ctx, srcPath, info.Size(), sel)
	if err != nil {
		return err
	}

	plan := phenotab.BuildNamePlan(table, e.cfg.Extract.Fields)
	if plan.Apply(table) {
		slog.Info("Columns renamed", "columns", table.NumCols())
	} else {
		slog.Warn("Name plan mismatch, original names kept",
			"names", len(plan), "columns", table.NumCols())
	}

	outPath := e.cfg.Extract.OutputPath
	if err = WriteTable(outPath, table); err != nil {
		return WriteError(outPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return WriteError(outPath, err)
	}

	duration := time.Since(startTime)
	slog.Info("Extraction finished",
		"rows", table.NumRows(),
		"columns", table.NumCols(),
		"output", outPath,
		"output_size", outInfo.Size(),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Extracted <em>%s</em> rows, %d columns to <em>%s</em> (%s) in %s",
		humanize.Comma(int64(table.NumRows())),
		table.NumCols(),
		outPath,
		humanize.Bytes(uint64(outInfo.Size())),
		gnfmt.TimeString(duration.Seconds()),
	)

	return nil
}

// peekHeader reads only the first row of the source file.
func (e *extractor) peekHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, HeaderError(path, err)
	}
	defer f.Close()

	r := newTabReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, HeaderError(path, err)
	}
	return append([]string(nil), header...), nil
}

// scan performs the full sequential pass over the source file, with a
// progress bar proxied over the raw reader.
func (e *extractor) scan(
	ctx context.Context,
	path string,
	size int64,
	sel *phenotab.Selection,
) (*phenotab.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	bar := pb.Full.Start64(size)
	bar.Set("prefix", "Extracting: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	return e.readTable(ctx, bar.NewProxyReader(f), path, sel)
}

func newTabReader(r io.Reader) *csv.Reader {
	res := csv.NewReader(r)
	res.Comma = '\t'
	res.LazyQuotes = true
	return res
}
