package ioextract

import (
	"encoding/csv"
	"os"

	"github.com/biocohort/ukbdemog/pkg/phenotab"
)

// WriteTable writes the table as tab-separated values, header first.
// The data goes to a temporary file that is renamed into place only
// after a successful flush, so a failed write never leaves a partial
// output file behind. Callers wrap the returned error with their own
// error code.
func WriteTable(path string, t *phenotab.Table) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	err = w.Write(t.Columns)
	for _, row := range t.Rows {
		if err != nil {
			break
		}
		err = w.Write(row)
	}
	if err == nil {
		w.Flush()
		err = w.Error()
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
