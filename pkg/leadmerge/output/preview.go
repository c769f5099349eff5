package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
)

// maxCellWidth truncates long message text in previews.
const maxCellWidth = 60

// Preview renders up to limit rows of the table for a terminal.
// A limit of zero or less renders every row.
func Preview(t *models.Table, limit int) string {
	columns := len(t.Columns)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for i, row := range t.Rows {
		if limit > 0 && i >= limit {
			break
		}
		r := make(table.Row, columns)
		for j, v := range t.Values(row) {
			r[j] = formatCell(v)
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:           i + 1,
			AlignHeader:      text.AlignLeft,
			WidthMax:         maxCellWidth,
			WidthMaxEnforcer: text.Trim,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02 15:04")
	}
	return fmt.Sprint(v)
}
