package testutil

import (
	"path/filepath"

	"casetas-go/internal/caseta"
)

// ExportCall records the arguments of one RecordingExporter.Export call.
type ExportCall struct {
	Table    caseta.Table
	Dir      string
	BaseName string
	Format   caseta.ExportFormat
}

// RecordingExporter is a caseta.Exporter that writes nothing and remembers
// every call. Err, if set, is returned from Export.
type RecordingExporter struct {
	Calls []ExportCall
	Err   error
}

func NewRecordingExporter() *RecordingExporter {
	return &RecordingExporter{}
}

func (e *RecordingExporter) Export(table caseta.Table, dir, baseName string, format caseta.ExportFormat) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	e.Calls = append(e.Calls, ExportCall{Table: table, Dir: dir, BaseName: baseName, Format: format})
	return filepath.Join(dir, baseName+"."+format.Extension()), nil
}
