package models

import (
	"fmt"
	"sort"
)

// Schema names the identity and metadata columns of a table. Every column
// not listed here is a tracked item.
type Schema struct {
	NameColumn    string
	TeamColumn    string
	StorageColumn string
	NotesColumn   string

	// ExtraMetadata lists further non-item columns (credits, blank columns).
	ExtraMetadata []string

	Codec StateCodec
}

// DefaultSchema matches the column names of the unit equipment sheet.
func DefaultSchema() Schema {
	return Schema{
		NameColumn:    "שם",
		TeamColumn:    "צוות",
		StorageColumn: "תא אחסון",
		NotesColumn:   "הערות",
		ExtraMetadata: []string{"Unnamed: 26", "זיכוי"},
		Codec:         DefaultStateCodec,
	}
}

// IsMetadata reports whether a column is identity/metadata.
func (s Schema) IsMetadata(column string) bool {
	switch column {
	case s.NameColumn, s.TeamColumn, s.StorageColumn, s.NotesColumn:
		return true
	}
	for _, m := range s.ExtraMetadata {
		if m == column {
			return true
		}
	}
	return false
}

// Items returns the item columns of a table in header order.
func (s Schema) Items(t *Table) []string {
	var items []string
	for _, h := range t.Header {
		if !s.IsMetadata(h) {
			items = append(items, h)
		}
	}
	return items
}

// Validate checks that a loaded table can be read through this schema.
func (s Schema) Validate(t *Table) error {
	if s.NameColumn == "" {
		return fmt.Errorf("schema has no name column")
	}
	if !t.HasColumn(s.NameColumn) {
		return fmt.Errorf("name column %q not found in table header", s.NameColumn)
	}
	return nil
}

// Names returns the distinct non-empty person names, sorted.
func (s Schema) Names(t *Table) []string {
	col := t.ColumnIndex(s.NameColumn)
	if col < 0 {
		return nil
	}
	seen := make(map[string]bool, len(t.Rows))
	var names []string
	for _, r := range t.Rows {
		n := r[col]
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Person returns the typed view of the first row named name.
func (s Schema) Person(t *Table, name string) (*Person, bool) {
	row := t.FindRow(s.NameColumn, name)
	if row < 0 {
		return nil, false
	}
	return s.personAt(t, row, s.Items(t)), true
}

// People returns typed views of every named row, in table order.
func (s Schema) People(t *Table) []Person {
	items := s.Items(t)
	col := t.ColumnIndex(s.NameColumn)
	var people []Person
	for i, r := range t.Rows {
		if col < 0 || r[col] == "" {
			continue
		}
		people = append(people, *s.personAt(t, i, items))
	}
	return people
}

func (s Schema) personAt(t *Table, row int, items []string) *Person {
	p := &Person{
		Name:        t.Cell(row, s.NameColumn),
		Team:        t.Cell(row, s.TeamColumn),
		StorageCell: t.Cell(row, s.StorageColumn),
		Notes:       t.Cell(row, s.NotesColumn),
		Items:       make(map[string]ItemState, len(items)),
	}
	for _, item := range items {
		p.Items[item] = s.Codec.Decode(t.Cell(row, item))
	}
	return p
}
