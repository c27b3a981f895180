package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Extract errors
	ExtractSourceStatError
	ExtractHeaderError
	ExtractNoColumnsError
	ExtractReadError
	ExtractMemoryBudgetError
	ExtractWriteError
	ExtractCanceledError

	// Filter errors
	FilterInputReadError
	FilterCodesConfigError
	FilterNoEthnicityColumnsError
	FilterWriteError
	FilterIDListWriteError
	FilterCanceledError
)
