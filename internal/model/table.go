package model

import "strings"

// Column is one field of a raw price table. Header holds one label per
// header level; yfinance-style downloads carry two levels (field, ticker).
type Column struct {
	Header []string
	Values []any // time.Time, string, numeric, or nil for missing
}

// Name returns the header joined across levels. Single-level columns return
// their only label.
func (c Column) Name() string {
	return strings.Join(c.Header, "/")
}

// MultiLevel reports whether the column has a tuple-shaped header.
func (c Column) MultiLevel() bool {
	return len(c.Header) > 1
}

// RawTable is a price history of unknown shape as returned by a data source.
type RawTable struct {
	Index   *Column // optional row index (e.g. "Date"), nil when absent
	Columns []Column
}

// Rows returns the number of rows, taken from the longest column.
func (t *RawTable) Rows() int {
	if t == nil {
		return 0
	}
	n := 0
	if t.Index != nil {
		n = len(t.Index.Values)
	}
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// ColumnNames lists the joined header of every column in order.
func (t *RawTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name()
	}
	return names
}

// Cell returns the value at (col, row), or nil when the column is short.
func (t *RawTable) Cell(col, row int) any {
	vals := t.Columns[col].Values
	if row >= len(vals) {
		return nil
	}
	return vals[row]
}
