// Package localfile stores the table in a local spreadsheet file.
//
// The format follows the file extension: .xlsx files go through excelize,
// .csv files through encoding/csv. Before the first overwrite the original
// file is copied to "<label>_<file name>" next to it, once.
package localfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend = (*Backend)(nil)

// DefaultBackupLabel prefixes the backup file name.
const DefaultBackupLabel = "גיבוי_מקורי"

type format interface {
	read(path string) ([][]string, error)
	write(path string, values [][]string) error
}

// Backend is a storage.Backend over a local .xlsx or .csv file.
type Backend struct {
	path       string
	backupPath string
	format     format
}

// New creates a Backend for path. backupLabel may be empty for the default.
func New(path, backupLabel string) (*Backend, error) {
	if backupLabel == "" {
		backupLabel = DefaultBackupLabel
	}

	var f format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f = xlsxFormat{}
	case ".csv":
		f = csvFormat{}
	default:
		return nil, fmt.Errorf("unsupported table file type %q", filepath.Ext(path))
	}

	return &Backend{
		path:       path,
		backupPath: BackupPath(path, backupLabel),
		format:     f,
	}, nil
}

// BackupPath derives the backup file path from the primary file path.
func BackupPath(path, label string) string {
	return filepath.Join(filepath.Dir(path), label+"_"+filepath.Base(path))
}

// Name implements storage.Backend.
func (b *Backend) Name() string {
	return "file"
}

// Path returns the primary file path.
func (b *Backend) Path() string {
	return b.path
}

// Load implements storage.Backend.
func (b *Backend) Load(ctx context.Context) (*models.Table, error) {
	return b.loadFile(ctx, b.path)
}

func (b *Backend) loadFile(ctx context.Context, path string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, err := b.format.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s has no header row", filepath.Base(path))
	}
	return models.NewTable(values[0], values[1:]), nil
}

// Overwrite implements storage.Backend. The label is the file name.
func (b *Backend) Overwrite(ctx context.Context, t *models.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.EnsureBackup(ctx); err != nil {
		// A missing backup only disables the diff view later.
		slog.Warn("Backup copy failed", "path", b.backupPath, "error", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(b.path)+".tmp"+filepath.Ext(b.path))
	if err := b.format.write(tmp, t.Values()); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(b.path), err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to replace %s: %w", filepath.Base(b.path), err)
	}
	return filepath.Base(b.path), nil
}

// EnsureBackup implements storage.Backend. It copies the primary file to the
// backup path unless the backup exists. A missing primary file has nothing
// to back up and is not an error.
func (b *Backend) EnsureBackup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(b.backupPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat backup: %w", err)
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(b.path), err)
	}
	if err := os.WriteFile(b.backupPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	slog.Info("Backup created", "path", b.backupPath)
	return nil
}

// LoadBackup implements storage.Backend.
func (b *Backend) LoadBackup(ctx context.Context) (*models.Table, error) {
	if _, err := os.Stat(b.backupPath); errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNoBackup
	}
	return b.loadFile(ctx, b.backupPath)
}
