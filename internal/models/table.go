package models

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Table is the people × columns grid. Each row is one person.
// Rows are always as wide as Header.
type Table struct {
	// Header holds the column names in sheet order.
	Header []string

	// Rows holds the raw cell text, one slice per person.
	Rows [][]string

	// Revision fingerprints the contents as last loaded or written.
	// Empty for tables that were never loaded from a backend.
	Revision string
}

// NewTable builds a table from a header row and data rows. The table is as
// wide as the widest row content, so cells past the end of the header are kept.
// Empty or missing header cells are named "Unnamed: <index>" and short rows
// are padded with empty cells. Fully empty trailing rows are dropped.
func NewTable(header []string, rows [][]string) *Table {
	width := len(header)
	for _, r := range rows {
		width = max(width, usedWidth(r))
	}

	t := &Table{Header: make([]string, width)}
	copy(t.Header, header)
	for i, h := range t.Header {
		if h == "" {
			t.Header[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}

	for _, r := range rows {
		row := make([]string, len(t.Header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	for len(t.Rows) > 0 && isBlank(t.Rows[len(t.Rows)-1]) {
		t.Rows = t.Rows[:len(t.Rows)-1]
	}
	return t
}

// usedWidth is the row length without trailing empty cells.
func usedWidth(row []string) int {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return n
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		Header:   append([]string(nil), t.Header...),
		Rows:     make([][]string, len(t.Rows)),
		Revision: t.Revision,
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// ColumnIndex returns the index of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// EnsureColumn returns the index of a column, appending it (with empty
// cells on every row) when missing.
func (t *Table) EnsureColumn(name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// FindRow returns the index of the first row whose column equals value, or -1.
func (t *Table) FindRow(column, value string) int {
	col := t.ColumnIndex(column)
	if col < 0 {
		return -1
	}
	for i, r := range t.Rows {
		if r[col] == value {
			return i
		}
	}
	return -1
}

// Cell returns the text at (row, column). Unknown columns read as empty.
func (t *Table) Cell(row int, column string) string {
	col := t.ColumnIndex(column)
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell writes a cell, creating the column when missing.
func (t *Table) SetCell(row int, column, value string) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	col := t.EnsureColumn(column)
	t.Rows[row][col] = value
	return nil
}

// AppendRow adds a row built from column values. Unknown columns are created.
func (t *Table) AppendRow(values map[string]string) {
	for col := range values {
		t.EnsureColumn(col)
	}
	row := make([]string, len(t.Header))
	for i, h := range t.Header {
		row[i] = values[h]
	}
	t.Rows = append(t.Rows, row)
}

// Fingerprint hashes header and rows. Cells are length-prefixed so that
// moving text between adjacent cells changes the result.
func (t *Table) Fingerprint() string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(strconv.Itoa(len(s)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(s)
	}
	for _, h := range t.Header {
		write(h)
	}
	for _, r := range t.Rows {
		_, _ = d.WriteString("\n")
		for _, c := range r {
			write(c)
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Values returns header followed by rows, the layout backends write.
func (t *Table) Values() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	out = append(out, t.Rows...)
	return out
}
