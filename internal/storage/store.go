// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/gearcheck/internal/models"
)

var (
	// ErrLoadFailed means no backend could produce the table.
	ErrLoadFailed = errors.New("failed to load table")
	// ErrSaveFailed means the table could not be persisted.
	ErrSaveFailed = errors.New("failed to save table")
	// ErrPersonNotFound means no row carries the requested name.
	ErrPersonNotFound = errors.New("person not found")
	// ErrNoBackup means the backup snapshot has not been created yet.
	ErrNoBackup = errors.New("no backup snapshot")
	// ErrConflict means the table changed in the backend since it was loaded.
	ErrConflict = errors.New("table changed since it was loaded")
)

// Backend is one place a table can live: a remote spreadsheet or a local file.
// Implementations do no locking; a single writer is assumed.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Load reads the full table.
	Load(ctx context.Context) (*models.Table, error)

	// Overwrite replaces the stored table with t and returns a label
	// describing where it was written. It makes sure a backup exists first.
	Overwrite(ctx context.Context, t *models.Table) (string, error)

	// EnsureBackup creates the one-time backup if it does not exist yet.
	// Calling it again is a no-op.
	EnsureBackup(ctx context.Context) error

	// LoadBackup reads the backup snapshot. Returns ErrNoBackup if absent.
	LoadBackup(ctx context.Context) (*models.Table, error)
}

// VerificationLog keeps the history of verification saves.
type VerificationLog interface {
	// RecordVerification persists a record. The ID is assigned when empty.
	RecordVerification(ctx context.Context, v *models.Verification) error

	// ListVerifications returns the newest records first. An empty person
	// lists everyone; limit <= 0 means no limit.
	ListVerifications(ctx context.Context, person string, limit int) ([]models.Verification, error)

	// Close releases any resources held by the log.
	Close() error
}
