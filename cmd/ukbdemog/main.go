// Package main provides the ukbdemog CLI application.
// ukbdemog extracts a demographic subtable from a UK Biobank
// phenotype export and filters it to a European cohort.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
