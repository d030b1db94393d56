// Package sqlite provides a SQLite-backed implementation of storage.VerificationLog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
)

// Ensure SQLiteStore implements storage.VerificationLog
var _ storage.VerificationLog = (*SQLiteStore)(nil)

// SQLiteStore implements storage.VerificationLog using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordVerification persists a verification and its regressions.
func (s *SQLiteStore) RecordVerification(ctx context.Context, v *models.Verification) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.VerifiedAt.IsZero() {
		v.VerifiedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO verifications (id, person, verified_at, location, present, donated, absent, notes, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Person, v.VerifiedAt.UnixMilli(), v.Location,
		v.Counts.Present, v.Counts.Donated, v.Counts.Absent, v.Notes, v.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert verification: %w", err)
	}

	for i, item := range v.Regressions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO verification_regressions (verification_id, position, item) VALUES (?, ?, ?)",
			v.ID, i, item,
		)
		if err != nil {
			return fmt.Errorf("failed to insert regression: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListVerifications returns verifications newest first, optionally for one person.
func (s *SQLiteStore) ListVerifications(ctx context.Context, person string, limit int) ([]models.Verification, error) {
	query := `SELECT id, person, verified_at, location, present, donated, absent, notes, error FROM verifications`
	var args []any
	if person != "" {
		query += " WHERE person = ?"
		args = append(args, person)
	}
	query += " ORDER BY verified_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	defer rows.Close()

	var out []models.Verification
	for rows.Next() {
		var v models.Verification
		var verifiedAt int64
		if err := rows.Scan(&v.ID, &v.Person, &verifiedAt, &v.Location,
			&v.Counts.Present, &v.Counts.Donated, &v.Counts.Absent, &v.Notes, &v.Error); err != nil {
			return nil, fmt.Errorf("failed to scan verification: %w", err)
		}
		v.VerifiedAt = time.UnixMilli(verifiedAt)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verifications: %w", err)
	}

	if err := s.loadRegressions(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadRegressions fills Regressions for every verification in one query.
func (s *SQLiteStore) loadRegressions(ctx context.Context, vs []models.Verification) error {
	if len(vs) == 0 {
		return nil
	}

	index := make(map[string]int, len(vs))
	args := make([]any, len(vs))
	for i, v := range vs {
		index[v.ID] = i
		args[i] = v.ID
	}

	query := `SELECT verification_id, item FROM verification_regressions
		WHERE verification_id IN (?` + strings.Repeat(", ?", len(vs)-1) + `)
		ORDER BY verification_id, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get regressions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, item string
		if err := rows.Scan(&id, &item); err != nil {
			return fmt.Errorf("failed to scan regression: %w", err)
		}
		i := index[id]
		vs[i].Regressions = append(vs[i].Regressions, item)
	}
	return rows.Err()
}
