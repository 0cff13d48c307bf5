// Package export renders history rows to an .xlsx workbook. It consumes a
// finalized row list; all ordering and defaulting is decided upstream.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/marszhhx/recare-tally/pkg/history"
)

const (
	// SheetName is the single sheet the workbook carries.
	SheetName = "Historical Data"

	fileNameLayout = "01-02-2006"
)

// FileName returns the export file name for the given instant,
// e.g. ReCARE_Tally_History_01-15-2024.xlsx.
func FileName(t time.Time) string {
	return fmt.Sprintf("ReCARE_Tally_History_%s.xlsx", t.Format(fileNameLayout))
}

// Write emits the workbook to path: one header row, then one row per day.
func Write(path string, header []string, rows []history.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := writeRow(f, 1, cells); err != nil {
		return err
	}

	for i, row := range rows {
		cells := make([]interface{}, 0, len(row.Values)+2)
		cells = append(cells, row.Weekday, row.Date)
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := sizeColumns(f, len(header)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("export: row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("export: write row %d: %w", rowNum, err)
	}
	return nil
}

// sizeColumns widens the weekday column to 15 and every other column to 20,
// matching the layout the board has always exported.
func sizeColumns(f *excelize.File, columns int) error {
	if columns == 0 {
		return nil
	}
	set := func(col int, width float64) error {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("export: column %d: %w", col, err)
		}
		return f.SetColWidth(SheetName, name, name, width)
	}
	if err := set(1, 15); err != nil {
		return err
	}
	for col := 2; col <= columns; col++ {
		if err := set(col, 20); err != nil {
			return err
		}
	}
	return nil
}
