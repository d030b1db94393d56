// Package app wires configured storage for the gearcheck binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/gearcheck/internal/config"
	"github.com/mmynk/gearcheck/internal/metrics"
	"github.com/mmynk/gearcheck/internal/storage"
	"github.com/mmynk/gearcheck/internal/storage/localfile"
	"github.com/mmynk/gearcheck/internal/storage/sheets"
	"github.com/mmynk/gearcheck/internal/storage/sqlite"
)

// NewTableStore builds the table store from config. The Sheets backend is
// only added when a spreadsheet id and credentials are both available;
// missing credentials silently leave the local file as the only backend.
func NewTableStore(ctx context.Context, cfg config.Config, m *metrics.Metrics) (*storage.TableStore, error) {
	var remote, local storage.Backend

	if cfg.Table.SpreadsheetID != "" {
		creds, err := sheets.LoadCredentials(cfg.Table.CredentialsJSON, cfg.Table.CredentialsFile)
		if err != nil {
			slog.Warn("Google Sheets disabled", "error", err)
		} else if creds != nil {
			httpClient, err := sheets.NewHTTPClient(ctx, creds)
			if err != nil {
				slog.Warn("Google Sheets disabled", "error", err)
			} else {
				client := sheets.NewClient(httpClient, cfg.Table.SheetsBaseURL)
				remote = sheets.NewBackend(client, cfg.Table.SpreadsheetID, cfg.Table.BackupLabel)
				slog.Info("Google Sheets backend enabled", "spreadsheet_id", cfg.Table.SpreadsheetID)
			}
		}
	}

	if cfg.Table.DataFile != "" {
		b, err := localfile.New(cfg.Table.DataFile, cfg.Table.BackupLabel)
		if err != nil {
			return nil, err
		}
		local = b
		slog.Info("Local file backend enabled", "path", cfg.Table.DataFile)
	}

	if remote == nil && local == nil {
		return nil, fmt.Errorf("no table backend available")
	}
	return storage.NewTableStore(remote, local, cfg.TableSchema(), m), nil
}

// OpenVerificationLog opens the SQLite verification log, or returns nil when
// it is disabled in config.
func OpenVerificationLog(cfg config.Config) (storage.VerificationLog, error) {
	if cfg.VerificationDB == "" {
		return nil, nil
	}
	log, err := sqlite.New(cfg.VerificationDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open verification log: %w", err)
	}
	slog.Info("Verification log opened", "database", cfg.VerificationDB)
	return log, nil
}
