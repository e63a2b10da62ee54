// Package sheet reads delimited sample annotation tables: a header
// row naming the columns, one row per sample, the first column
// holding the sample name.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

// ErrUnreadable marks a missing or malformed annotation source.
var ErrUnreadable = errors.New("annotation sheet unreadable")

// Table is a row-ordered, column-named table. The first column is
// the canonical sample-name column.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// NewTable creates an empty table with the given column names.
func NewTable(cols []string) *Table {
	t := &Table{
		cols:  append([]string{}, cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Read parses a delimited table. The first record is the header; a
// completely empty source yields a valid zero-column, zero-row table.
// Duplicate column names are rejected. delim 0 means comma.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err == io.EOF {
		return NewTable(nil), nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	t := NewTable(header)
	if len(t.index) != len(t.cols) {
		return nil, fmt.Errorf("%w: duplicate column in header %v", ErrUnreadable, header)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// ReadFile opens and parses a delimited table from disk.
func ReadFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	return Read(f, delim)
}

// Append adds one row, which must match the column count.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("%w: row has %d values, header has %d columns", ErrUnreadable, len(row), len(t.cols))
	}
	t.rows = append(t.rows, append([]string{}, row...))
	return nil
}

// NumRows reports the number of data rows (the header excluded).
func (t *Table) NumRows() int { return len(t.rows) }

// Columns returns the column names in declared order.
func (t *Table) Columns() []string { return append([]string{}, t.cols...) }

// Row returns row i in declared column order.
func (t *Table) Row(i int) []string { return append([]string{}, t.rows[i]...) }

// ColumnIndex finds the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the named column's value in row i.
func (t *Table) Value(i int, col string) (string, bool) {
	j, ok := t.index[col]
	if !ok {
		return "", false
	}
	return t.rows[i][j], true
}

// Write emits the header and rows with the given delimiter. delim 0
// means comma.
func (t *Table) Write(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}

	if len(t.cols) > 0 {
		if err := cw.Write(t.cols); err != nil {
			return pfx.Err(err)
		}
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}
	cw.Flush()

	return pfx.Err(cw.Error())
}
