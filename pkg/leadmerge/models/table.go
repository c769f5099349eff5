// Package models defines data structures for record merging.
package models

// Row maps column name to cell value.
// Values are int64, float64, string, or nil for an empty cell.
type Row map[string]interface{}

// Table is an ordered set of rows sharing one column list.
type Table struct {
	// Columns lists column names in output order.
	Columns []string `json:"columns"`
	// Rows contains the table rows in source order.
	Rows []Row `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a column unless it already exists.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumns removes the named columns and their values.
// Names that are not present are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept

	for _, row := range t.Rows {
		for n := range drop {
			delete(row, n)
		}
	}
}

// Values returns the row's values in column order.
func (t *Table) Values(row Row) []interface{} {
	values := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = row[c]
	}
	return values
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
