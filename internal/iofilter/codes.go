package iofilter

import (
	"os"

	"github.com/biocohort/ukbdemog/pkg/cohort"
	"github.com/biocohort/ukbdemog/pkg/config"
	"gopkg.in/yaml.v3"
)

// loadCodes reads the ethnicity codes file. An explicitly configured
// path wins; otherwise the codes.yaml seeded in the config directory
// is used.
func (f *filterer) loadCodes() (*cohort.Codes, error) {
	path := f.cfg.Filter.CodesPath
	if path == "" {
		path = config.CodesFilePath(f.cfg.HomeDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, CodesConfigError(path, err)
	}

	var codes cohort.Codes
	if err = yaml.Unmarshal(data, &codes); err != nil {
		return nil, CodesConfigError(path, err)
	}

	return &codes, nil
}
