package models

import "strings"

// Table is an untyped relation as read from a source: a header plus string
// rows, with source column names and casing preserved. The readers produce
// Tables; the Normalizer consumes them. SQL NULL and missing JSON keys both
// surface as "".
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, matched
// case-insensitively, or -1 when the table has no such column.
func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// Value returns the row's value in the named column (case-insensitive), or ""
// when the column is absent or the row is short.
func (t Table) Value(row []string, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
