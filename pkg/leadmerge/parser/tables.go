package parser

import (
	"fmt"
	"strconv"
)

// tableBounds locates the data region of a sheet.
type tableBounds struct {
	HeaderRow int
	LastRow   int
	FirstCol  int
	LastCol   int
}

// detectTable finds the bounding box of non-empty cells. The first
// non-empty row is the header and the last non-empty row ends the data.
// ok is false for a blank sheet.
func detectTable(rows [][]string) (tableBounds, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return tableBounds{}, false
	}
	return tableBounds{HeaderRow: minRow, LastRow: maxRow, FirstCol: minCol, LastCol: maxCol}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// headerNames builds unique column names from a header row.
// Blank cells become "Unnamed: <n>" and repeats get ".1", ".2" suffixes.
func headerNames(header []string, b tableBounds) []string {
	width := b.LastCol - b.FirstCol + 1
	names := make([]string, width)
	used := make(map[string]bool, width)

	for i := 0; i < width; i++ {
		base := ""
		if idx := b.FirstCol + i; idx < len(header) {
			base = header[idx]
		}
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}

		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		used[name] = true
		names[i] = name
	}

	return names
}
