package caseta

import (
	"fmt"
	"strings"
)

// ExportFormat selects the file type written by an Exporter.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat maps user input ("CSV", "excel", "pdf", ...) to a format.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel", "spreadsheet":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", &ValidationError{Field: "format", Reason: fmt.Sprintf("unsupported export format %q", s)}
	}
}

// Extension returns the file extension for the format, without the dot.
func (f ExportFormat) Extension() string {
	return string(f)
}

// Exporter writes a finalized table to dir/baseName.<ext> and returns the
// path of the written file. It owns all format-specific layout.
type Exporter interface {
	Export(table Table, dir, baseName string, format ExportFormat) (string, error)
}
