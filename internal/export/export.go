// Package export writes ledger tables to CSV, XLSX and PDF files.
//
// Every format has the same layout: a header row, one row per ticket and a
// final summary row with a blank id and the TOTAL label.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"casetas-go/internal/caseta"
)

// Header holds the column titles of an exported table.
var Header = []string{"ID", "Toll", "Total", "Sub-Total", "IVA"}

// FileExporter writes tables to files on disk.
type FileExporter struct{}

// NewFileExporter returns a caseta.Exporter backed by the local filesystem.
func NewFileExporter() *FileExporter {
	return &FileExporter{}
}

// Export writes table to dir/baseName.<ext>, creating dir if needed.
func (e *FileExporter) Export(table caseta.Table, dir, baseName string, format caseta.ExportFormat) (string, error) {
	write, err := writerFor(format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, baseName+"."+format.Extension())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	if err := write(f, table); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}

func writerFor(format caseta.ExportFormat) (func(io.Writer, caseta.Table) error, error) {
	switch format {
	case caseta.FormatCSV:
		return WriteCSV, nil
	case caseta.FormatXLSX:
		return WriteXLSX, nil
	case caseta.FormatPDF:
		return WritePDF, nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

// Rows renders table as strings, header first and summary last.
func Rows(table caseta.Table) [][]string {
	rows := make([][]string, 0, len(table.Rows)+2)
	rows = append(rows, Header)
	for _, t := range table.Rows {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Name,
			t.Total.StringFixed(2),
			t.SubTotal.StringFixed(2),
			t.Tax.StringFixed(2),
		})
	}
	s := table.Summary
	rows = append(rows, []string{
		"",
		s.Name,
		s.Total.StringFixed(2),
		s.SubTotal.StringFixed(2),
		s.Tax.StringFixed(2),
	})
	return rows
}

var _ caseta.Exporter = (*FileExporter)(nil)
