// Package tabular reads student rows from uploaded CSV and spreadsheet files
// and writes the CSV export.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file names without a known extension.
var ErrUnsupportedFormat = errors.New("unsupported file format, please upload CSV or Excel")

// Format is the container format of an uploaded file.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatSpreadsheet Format = "spreadsheet"
)

// DetectFormat picks the format from the file name suffix (case-insensitive).
// .xls is routed to the spreadsheet reader together with .xlsx.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatSpreadsheet, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, fileName)
}
