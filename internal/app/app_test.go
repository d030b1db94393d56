package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/gearcheck/internal/config"
)

func TestNewTableStoreLocalOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equipment.csv")
	require.NoError(t, os.WriteFile(path, []byte("שם,Helmet\nDana,1\n"), 0o644))

	cfg := config.Default()
	cfg.Table.DataFile = path
	cfg.Table.SpreadsheetID = "sheet-123"
	cfg.Table.CredentialsFile = filepath.Join(dir, "missing.json")

	store, err := NewTableStore(context.Background(), cfg, nil)
	require.NoError(t, err)

	res, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Empty(t, res.Warnings, "missing credentials disable the remote backend silently")
}

func TestNewTableStoreNoBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Table.DataFile = ""
	cfg.Table.SpreadsheetID = "sheet-123"
	cfg.Table.CredentialsFile = ""

	_, err := NewTableStore(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestOpenVerificationLog(t *testing.T) {
	cfg := config.Default()
	cfg.VerificationDB = ""
	log, err := OpenVerificationLog(cfg)
	require.NoError(t, err)
	assert.Nil(t, log)

	cfg.VerificationDB = filepath.Join(t.TempDir(), "log.db")
	log, err = OpenVerificationLog(cfg)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NoError(t, log.Close())
}
