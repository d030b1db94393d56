// Package roster adds, removes and edits person rows of a table in memory.
// Persisting the result is up to the caller.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
)

var (
	// ErrInvalidName is returned when a name is empty after trimming.
	ErrInvalidName = errors.New("name is required")

	// ErrDuplicateName is returned when a person with the exact name exists.
	ErrDuplicateName = errors.New("person already exists")
)

// Identity holds the editable non-item fields of a person row.
type Identity struct {
	Team        string
	StorageCell string
}

// Add appends a row for a new person with every item empty.
// The table is left untouched on error.
func Add(t *models.Table, schema models.Schema, name string, id Identity) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if t.FindRow(schema.NameColumn, name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	values := map[string]string{schema.NameColumn: name}
	t.EnsureColumn(schema.NameColumn)
	if schema.TeamColumn != "" {
		t.EnsureColumn(schema.TeamColumn)
		values[schema.TeamColumn] = strings.TrimSpace(id.Team)
	}
	if schema.StorageColumn != "" {
		t.EnsureColumn(schema.StorageColumn)
		values[schema.StorageColumn] = strings.TrimSpace(id.StorageCell)
	}
	t.AppendRow(values)
	return nil
}

// Remove deletes every row named name and returns how many were removed.
func Remove(t *models.Table, schema models.Schema, name string) (int, error) {
	col := t.ColumnIndex(schema.NameColumn)
	if col < 0 {
		return 0, fmt.Errorf("%w: %s", storage.ErrPersonNotFound, name)
	}

	var kept [][]string
	for _, r := range t.Rows {
		if r[col] != name {
			kept = append(kept, r)
		}
	}
	removed := len(t.Rows) - len(kept)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", storage.ErrPersonNotFound, name)
	}
	t.Rows = kept
	return removed, nil
}

// Edit sets team and storage cell on every row named name and returns how
// many rows were updated.
func Edit(t *models.Table, schema models.Schema, name string, id Identity) (int, error) {
	col := t.ColumnIndex(schema.NameColumn)
	var rows []int
	for i, r := range t.Rows {
		if col >= 0 && r[col] == name {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s", storage.ErrPersonNotFound, name)
	}

	for _, i := range rows {
		if schema.TeamColumn != "" {
			_ = t.SetCell(i, schema.TeamColumn, strings.TrimSpace(id.Team))
		}
		if schema.StorageColumn != "" {
			_ = t.SetCell(i, schema.StorageColumn, strings.TrimSpace(id.StorageCell))
		}
	}
	return len(rows), nil
}
