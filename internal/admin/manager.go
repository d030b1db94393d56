// Package admin implements the admin operations: tallies, the diff against
// the backup snapshot, and adding, removing and editing people.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/gearcheck/internal/calculator"
	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/roster"
	"github.com/mmynk/gearcheck/internal/storage"
)

// TableStore is the part of storage.TableStore the manager needs.
type TableStore interface {
	Schema() models.Schema
	Load(ctx context.Context) (*storage.LoadResult, error)
	Write(ctx context.Context, t *models.Table) (string, error)
	EnsureBackup(ctx context.Context) error
	LoadBackup(ctx context.Context) (*models.Table, error)
}

// Manager runs admin operations against a table store. log may be nil.
type Manager struct {
	store TableStore
	log   storage.VerificationLog
}

// NewManager creates a Manager.
func NewManager(store TableStore, log storage.VerificationLog) *Manager {
	return &Manager{store: store, log: log}
}

// SummaryResult is the summary plus where the table came from.
type SummaryResult struct {
	calculator.Summary
	Source   string
	Warnings []string
}

// Summary loads the table and computes every tally.
func (m *Manager) Summary(ctx context.Context) (*SummaryResult, error) {
	res, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		Summary:  calculator.Summarize(res.Table, m.store.Schema()),
		Source:   res.Source,
		Warnings: res.Warnings,
	}, nil
}

// DiffResult is the backup diff. HasBackup is false when there is nothing
// to compare against yet.
type DiffResult struct {
	HasBackup bool
	Diff      calculator.TableDiff
}

// Diff compares the live table with the backup snapshot.
func (m *Manager) Diff(ctx context.Context) (*DiffResult, error) {
	res, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	backup, err := m.store.LoadBackup(ctx)
	if errors.Is(err, storage.ErrNoBackup) {
		return &DiffResult{HasBackup: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load backup: %w", err)
	}

	return &DiffResult{
		HasBackup: true,
		Diff:      calculator.DiffTables(backup, res.Table, m.store.Schema()),
	}, nil
}

// AddUser appends a person and writes the table.
func (m *Manager) AddUser(ctx context.Context, name string, id roster.Identity) (string, error) {
	return m.mutate(ctx, func(t *models.Table, schema models.Schema) error {
		return roster.Add(t, schema, name, id)
	})
}

// RemoveUser deletes every row of a person and writes the table.
func (m *Manager) RemoveUser(ctx context.Context, name string) (string, error) {
	return m.mutate(ctx, func(t *models.Table, schema models.Schema) error {
		n, err := roster.Remove(t, schema, name)
		if err == nil {
			slog.Debug("Rows removed", "name", name, "rows", n)
		}
		return err
	})
}

// EditUser updates team and storage cell of a person and writes the table.
func (m *Manager) EditUser(ctx context.Context, name string, id roster.Identity) (string, error) {
	return m.mutate(ctx, func(t *models.Table, schema models.Schema) error {
		_, err := roster.Edit(t, schema, name, id)
		return err
	})
}

// mutate is a full-table read-modify-write. Nothing is written when fn fails.
func (m *Manager) mutate(ctx context.Context, fn func(*models.Table, models.Schema) error) (string, error) {
	res, err := m.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if err := fn(res.Table, m.store.Schema()); err != nil {
		return "", err
	}
	return m.store.Write(ctx, res.Table)
}

// EnsureBackup creates the backup snapshot if it does not exist yet.
func (m *Manager) EnsureBackup(ctx context.Context) error {
	if _, err := m.store.Load(ctx); err != nil {
		return err
	}
	return m.store.EnsureBackup(ctx)
}

// ListVerifications returns logged verifications, newest first.
func (m *Manager) ListVerifications(ctx context.Context, person string, limit int) ([]models.Verification, error) {
	if m.log == nil {
		return nil, nil
	}
	return m.log.ListVerifications(ctx, person, limit)
}
