// Package table provides the row-oriented container all ingestion paths
// produce and the aggregation engine consumes. It replaces ad-hoc
// per-format record slices with one ordered, loosely typed table.
package table

import (
	"fmt"
	"strconv"
)

// Row maps a column name to a cell value. Cells hold strings for text
// columns and float64 for numeric columns, but readers tolerate both.
type Row map[string]any

// Table is an ordered sequence of rows with an explicit column order.
// Column order matters for CSV export and for rebuilding a table from
// stored records; map iteration order would scramble it.
type Table struct {
	cols []string
	rows []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	t := &Table{cols: make([]string, len(columns))}
	copy(t.cols, columns)
	return t
}

// Append adds a row. Values for unknown columns are kept in the row but
// invisible until the column is added.
func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// HasColumn reports whether the table has a column with that exact name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Rename changes a column name in place, in both the column order and
// every row. Renaming a missing column is a no-op. If the target name
// already exists, the two columns collapse into one and the renamed
// column's cells win.
func (t *Table) Rename(old, new string) {
	if old == new || !t.HasColumn(old) {
		return
	}
	if t.HasColumn(new) {
		// Collapse: drop the existing target column, keep its position
		// taken over by the renamed one below.
		t.dropColumn(new)
	}
	for i, c := range t.cols {
		if c == old {
			t.cols[i] = new
		}
	}
	for _, r := range t.rows {
		if v, ok := r[old]; ok {
			delete(r, old)
			r[new] = v
		} else {
			delete(r, new)
		}
	}
}

func (t *Table) dropColumn(name string) {
	cols := t.cols[:0]
	for _, c := range t.cols {
		if c != name {
			cols = append(cols, c)
		}
	}
	t.cols = cols
}

// Clone returns an independent copy: fresh column slice, fresh row maps.
func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.rows = append(out.rows, nr)
	}
	return out
}

// String returns the cell at (row, col) as a string, or "" when absent.
func (t *Table) String(row int, col string) string {
	v, ok := t.cell(row, col)
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Float returns the cell at (row, col) as a float64. Numeric strings are
// parsed; anything else yields 0.
func (t *Table) Float(row int, col string) float64 {
	v, ok := t.cell(row, col)
	if !ok || v == nil {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Set overwrites the cell at (row, col). Out-of-range rows are ignored.
func (t *Table) Set(row int, col string, v any) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row][col] = v
}

func (t *Table) cell(row int, col string) (any, bool) {
	if row < 0 || row >= len(t.rows) {
		return nil, false
	}
	v, ok := t.rows[row][col]
	return v, ok
}

// Records exports the table as one map per row, the shape the session
// store keeps between requests.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.rows))
	for _, r := range t.rows {
		rec := make(map[string]any, len(r))
		for k, v := range r {
			rec[k] = v
		}
		out = append(out, rec)
	}
	return out
}

// FromRecords rebuilds a table from stored records. The column order is
// supplied separately because maps do not preserve it.
func FromRecords(columns []string, records []map[string]any) *Table {
	t := New(columns...)
	for _, rec := range records {
		r := make(Row, len(rec))
		for k, v := range rec {
			r[k] = v
		}
		t.Append(r)
	}
	return t
}
