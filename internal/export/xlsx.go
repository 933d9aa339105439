package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var xlsxHeader = []interface{}{
	"category",
	"name",
	"quantity",
	"unit",
	"expiry_date",
}

// XLSX writes one row per item to the first sheet of a new workbook at
// path, below a header row. Dates are written as YYYY-MM-DD text.
func XLSX(path string, snap Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, g := range snap.ListAll() {
		for _, it := range g.Items {
			excelRow := []interface{}{
				g.Category,
				it.Name,
				it.Quantity,
				it.Unit,
				it.ExpiryDate.Format(types.DateLayout),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
			if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
