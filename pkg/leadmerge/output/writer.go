// Package output writes merged tables.
package output

import (
	"io"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet name used for written tables.
const SheetName = "Sheet1"

// ToXLSX builds a workbook holding the table on one sheet: a header row
// followed by one row per record. Empty values leave the cell blank.
func ToXLSX(table *models.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for rowIdx, row := range table.Rows {
		for colIdx, v := range table.Values(row) {
			if v == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cellName, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// WriteXLSX writes the table as an xlsx workbook to w.
func WriteXLSX(w io.Writer, table *models.Table) error {
	f, err := ToXLSX(table)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// SaveXLSX writes the table as an xlsx workbook to path.
func SaveXLSX(path string, table *models.Table) error {
	f, err := ToXLSX(table)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}
