// Package xlsx exports a dataset as a spreadsheet workbook.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/paceview/paceview/internal/dataset"
)

const sheetName = "Data"

// Write exports the dataset to an .xlsx workbook at path: one column
// per header plus date and hidden columns, one row per observation.
func Write(d *dataset.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setCell(f, 0, 0, "date"); err != nil {
		return err
	}
	for col, header := range d.Headers {
		if err := setCell(f, col+1, 0, header); err != nil {
			return err
		}
	}
	if err := setCell(f, len(d.Headers)+1, 0, "hidden"); err != nil {
		return err
	}

	for i, row := range d.Rows {
		if err := setCell(f, 0, i+1, row.Date.String()); err != nil {
			return err
		}
		for col, header := range d.Headers {
			if err := setCell(f, col+1, i+1, row.Values[header]); err != nil {
				return err
			}
		}
		if err := setCell(f, len(d.Headers)+1, i+1, row.Hidden); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	if err := f.SetCellValue(sheetName, name, value); err != nil {
		return fmt.Errorf("set cell %s: %w", name, err)
	}
	return nil
}
