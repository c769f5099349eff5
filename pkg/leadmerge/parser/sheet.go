package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
	"github.com/xuri/excelize/v2"
)

// ReadFirstSheet opens a workbook and extracts the table on its first sheet.
func ReadFirstSheet(r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrNoSheets
	}

	return ExtractTable(f, sheetList[0])
}

// ExtractTable extracts a header-keyed table from a sheet.
// Blank rows between the header and the last data row are kept as rows
// with no values so that row positions match the sheet; trailing blank
// rows are dropped.
func ExtractTable(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	bounds, ok := detectTable(rows)
	if !ok {
		return models.NewTable(), nil
	}

	cells := newCellReader(f, sheetName)
	table := models.NewTable(headerNames(rows[bounds.HeaderRow], bounds)...)
	for rowIdx := bounds.HeaderRow + 1; rowIdx <= bounds.LastRow; rowIdx++ {
		row := rows[rowIdx]
		record := make(models.Row, len(table.Columns))

		for i, col := range table.Columns {
			colIdx := bounds.FirstCol + i
			if colIdx >= len(row) || row[colIdx] == "" {
				continue
			}

			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			record[col] = cells.value(cellName, row[colIdx])
		}

		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// cellReader types raw cell values using the cell type and number format.
type cellReader struct {
	f         *excelize.File
	sheetName string
	date1904  bool
	dateStyle map[int]bool
}

func newCellReader(f *excelize.File, sheetName string) *cellReader {
	c := &cellReader{
		f:         f,
		sheetName: sheetName,
		dateStyle: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		c.date1904 = *props.Date1904
	}
	return c
}

// value keeps text cells as strings, converts date-formatted numbers to
// time.Time, and parses everything else.
func (c *cellReader) value(cellName, raw string) interface{} {
	cellType, err := c.f.GetCellType(c.sheetName, cellName)
	if err == nil {
		switch cellType {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			return raw
		case excelize.CellTypeBool:
			return raw == "1" || strings.EqualFold(raw, "true")
		}
	}

	v := parseValue(raw)
	serial, isNumber := toFloat(v)
	if isNumber && c.isDateCell(cellName) {
		if t, err := excelize.ExcelDateToTime(serial, c.date1904); err == nil {
			return t
		}
	}
	return v
}

func (c *cellReader) isDateCell(cellName string) bool {
	styleID, err := c.f.GetCellStyle(c.sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := c.dateStyle[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := c.f.GetStyle(styleID); err == nil {
		isDate = isDateFormat(style)
	}
	c.dateStyle[styleID] = isDate
	return isDate
}

// isDateFormat reports whether a style's number format displays a date or time.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil && *style.CustomNumFmt != "" {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	switch {
	case style.NumFmt >= 14 && style.NumFmt <= 22,
		style.NumFmt >= 27 && style.NumFmt <= 36,
		style.NumFmt >= 45 && style.NumFmt <= 47,
		style.NumFmt >= 50 && style.NumFmt <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for date or time tokens outside quoted literals
// and bracketed sections such as [Red] or [$-409].
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case inBracket:
		case ch == '\\':
			i++
		default:
			switch ch | 0x20 {
			case 'y', 'd', 'h':
				return true
			}
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
