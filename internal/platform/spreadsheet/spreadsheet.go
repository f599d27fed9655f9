// Package spreadsheet renders tabular exports as XLSX workbooks.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is a single worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Write renders the sheet as a workbook into w.
func Write(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	index, err := f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	f.SetActiveSheet(index)
	if name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	for i, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
	}
	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
