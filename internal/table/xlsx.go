package table

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of an output workbook
type Sheet struct {
	Name    string
	Records [][]string
}

// readXLSX returns the rows of the first worksheet, header first
func readXLSX(table, path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Table: table, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// WriteXLSX writes each sheet into a new workbook at path. Cells that parse
// as numbers are stored as numbers.
func WriteXLSX(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.New("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return err
		}

		for r, record := range sh.Records {
			values := make([]interface{}, len(record))
			for c, cell := range record {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					values[c] = v
				} else {
					values[c] = cell
				}
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
