package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"casetas-go/internal/caseta"
)

// WriteCSV writes table as comma-separated values.
func WriteCSV(w io.Writer, table caseta.Table) error {
	cw := csv.NewWriter(w)
	for i, row := range Rows(table) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
