package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a required column is absent from a table.
var ErrMissingColumn = errors.New("missing column")

// Table is a fully materialized tabular snapshot.
type Table struct {
	// Columns holds the ordered column names.
	Columns []string

	// Rows holds the cell values, one slice per row, aligned with Columns.
	Rows [][]any
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.Columns))
	}
	row := make([]any, len(values))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// Index returns the position of a column.
func (t *Table) Index(column string) (int, error) {
	for i, c := range t.Columns {
		if c == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// Indexes resolves several columns at once, failing on the first absent one.
func (t *Table) Indexes(columns []string) ([]int, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		pos, err := t.Index(c)
		if err != nil {
			return nil, err
		}
		idx[i] = pos
	}
	return idx, nil
}

// Value returns the cell at the given row and column.
func (t *Table) Value(row int, column string) (any, error) {
	idx, err := t.Index(column)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range", row)
	}
	return t.Rows[row][idx], nil
}

// Filter returns a new table holding the rows for which keep returns true.
// Rows are shared with the receiver, not copied.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.Columns...)
	for i, row := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Clone returns a deep copy of the row slices so cells can be rewritten safely.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]any, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}
