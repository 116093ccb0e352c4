package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"casetas-go/internal/caseta"
)

// SheetName is the worksheet that holds the exported tickets.
const SheetName = "Casetas"

// WriteXLSX writes table as an Excel workbook with a single sheet.
// Amounts are stored as numbers so the sheet can be summed further.
func WriteXLSX(w io.Writer, table caseta.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for i, t := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating ticket %d: %w", t.ID, err)
		}
		row := []any{t.ID, t.Name, t.Total.InexactFloat64(), t.SubTotal.InexactFloat64(), t.Tax.InexactFloat64()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing ticket %d: %w", t.ID, err)
		}
	}

	last := len(table.Rows) + 2
	s := table.Summary
	cell, err := excelize.CoordinatesToCellName(1, last)
	if err != nil {
		return fmt.Errorf("locating summary: %w", err)
	}
	summary := []any{"", s.Name, s.Total.InexactFloat64(), s.SubTotal.InexactFloat64(), s.Tax.InexactFloat64()}
	if err := f.SetSheetRow(SheetName, cell, &summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	lastCell := fmt.Sprintf("E%d", last)
	if err := f.SetCellStyle(SheetName, "C2", lastCell, money); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", last), fmt.Sprintf("B%d", last), bold); err != nil {
		return fmt.Errorf("styling summary: %w", err)
	}

	for _, c := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 6},
		{"B", "B", 32},
		{"C", "E", 12},
	} {
		if err := f.SetColWidth(SheetName, c.from, c.to, c.width); err != nil {
			return fmt.Errorf("sizing column %s: %w", c.from, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
