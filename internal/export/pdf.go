package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"casetas-go/internal/caseta"
)

var pdfWidths = []float64{15, 85, 30, 30, 30}

// WritePDF writes table as a one-column-per-field A4 document.
func WritePDF(w io.Writer, table caseta.Table) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; names like "Querétaro" need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFillColor(230, 230, 230)

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range Header {
		pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	rows := Rows(table)
	body, summary := rows[1:len(rows)-1], rows[len(rows)-1]

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range body {
		pdfRow(pdf, tr, row, false)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdfRow(pdf, tr, summary, true)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func pdfRow(pdf *fpdf.Fpdf, tr func(string) string, row []string, fill bool) {
	for i, v := range row {
		align := "R"
		if i == 1 {
			align = "L"
		}
		pdf.CellFormat(pdfWidths[i], 6, tr(v), "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}
