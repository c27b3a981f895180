package ioextract

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/biocohort/ukbdemog/pkg/phenotab"
	"github.com/dustin/go-humanize"
)

// progressEvery controls how often chunk progress is logged.
const progressEvery = 10

// readTable streams the source sequentially in chunks of
// cfg.Extract.ChunkSize rows, keeping only the selected columns.
// Chunks accumulate in a buffer; once the buffer holds more than
// cfg.Extract.BufferThreshold chunks it is consolidated into a single
// chunk so peak memory stays bounded by the consolidated table plus
// one buffer generation. Row order is preserved exactly.
func (e *extractor) readTable(
	ctx context.Context,
	r io.Reader,
	path string,
	sel *phenotab.Selection,
) (*phenotab.Table, error) {
	cr := newTabReader(r)
	cr.ReuseRecord = true

	// The header was already consumed by peekHeader on a separate
	// file handle; skip it on this pass.
	if _, err := cr.Read(); err != nil {
		return nil, ReadError(path, err)
	}

	chunkSize := e.cfg.Extract.ChunkSize
	threshold := e.cfg.Extract.BufferThreshold

	var chunks [][][]string
	cur := make([][]string, 0, chunkSize)
	var totalRows, chunkCount int

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadError(path, err)
		}

		row := make([]string, len(sel.Indexes))
		for i, idx := range sel.Indexes {
			row[i] = rec[idx]
		}
		cur = append(cur, row)
		totalRows++

		if len(cur) < chunkSize {
			continue
		}

		chunks = append(chunks, cur)
		cur = make([][]string, 0, chunkSize)
		chunkCount++

		if err = ctx.Err(); err != nil {
			return nil, CanceledError(err)
		}

		if chunkCount%progressEvery == 0 {
			e.logProgress(chunkCount, totalRows)
		}

		if len(chunks) > threshold {
			if chunks, err = e.consolidate(chunks, totalRows); err != nil {
				return nil, err
			}
		}
	}

	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}

	return &phenotab.Table{
		Columns: slices.Clone(sel.Columns),
		Rows:    mergeChunks(chunks),
	}, nil
}

// consolidate merges the buffered chunks into a single chunk. The
// memory budget, when configured, is checked here: consolidation is
// the point where the largest transient allocation happens.
func (e *extractor) consolidate(
	chunks [][][]string,
	totalRows int,
) ([][][]string, error) {
	if err := e.checkMemoryBudget(); err != nil {
		return nil, err
	}

	slog.Info("Intermediate consolidation",
		"buffered_chunks", len(chunks),
		"rows", totalRows,
	)
	merged := mergeChunks(chunks)
	return [][][]string{merged}, nil
}

func mergeChunks(chunks [][][]string) [][]string {
	var n int
	for _, c := range chunks {
		n += len(c)
	}
	rows := make([][]string, 0, n)
	for _, c := range chunks {
		rows = append(rows, c...)
	}
	return rows
}

func (e *extractor) checkMemoryBudget() error {
	budget := e.cfg.Extract.MemoryBudgetMB
	if budget <= 0 || e.mem == nil {
		return nil
	}
	rss, err := e.mem()
	if err != nil {
		// The probe is a diagnostic; a failing probe never aborts.
		return nil
	}
	if rss > uint64(budget)*1024*1024 {
		return MemoryBudgetError(rss, budget)
	}
	return nil
}

func (e *extractor) logProgress(chunkCount, totalRows int) {
	args := []any{
		"chunks", chunkCount,
		"rows", totalRows,
	}
	if e.mem != nil {
		if rss, err := e.mem(); err == nil {
			args = append(args, "rss", humanize.Bytes(rss))
		}
	}
	slog.Info("Chunk progress", args...)
}
