package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/gearcheck/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "RSP6551.xlsx", cfg.Table.DataFile)
	assert.Equal(t, 8*time.Hour, cfg.Admin.TokenTTL)

	schema := cfg.TableSchema()
	assert.Equal(t, "שם", schema.NameColumn)
	assert.True(t, schema.IsMetadata("זיכוי"))
	assert.Equal(t, "ת", schema.Codec.Encode(models.Donated))
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gearcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
log_level: debug
session_ttl: 30m
table:
  data_file: ./data/equipment.csv
  spreadsheet_id: from-file
schema:
  name_column: Name
  extra_metadata: [Credit]
admin:
  password: hunter2
  token_secret: file-secret
`), 0o644))

	t.Setenv("GEARCHECK_TABLE_SPREADSHEET_ID", "from-env")
	t.Setenv("GEARCHECK_ADMIN_TOKEN_TTL", "1h")
	t.Setenv("GEARCHECK_SCHEMA_EXTRA_METADATA", "Credit,Comments")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "./data/equipment.csv", cfg.Table.DataFile)
	assert.Equal(t, "from-env", cfg.Table.SpreadsheetID, "env wins over file")
	assert.Equal(t, "Name", cfg.Schema.NameColumn)
	assert.Equal(t, []string{"Credit", "Comments"}, cfg.Schema.ExtraMetadata)
	assert.Equal(t, time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, "file-secret", cfg.Admin.TokenSecret)
	assert.Equal(t, "תא אחסון", cfg.Schema.StorageColumn, "unset keys keep defaults")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no table source", mutate: func(c *Config) { c.Table.DataFile = ""; c.Table.SpreadsheetID = "" }},
		{name: "no name column", mutate: func(c *Config) { c.Schema.NameColumn = " " }},
		{name: "password without secret", mutate: func(c *Config) { c.Admin.Password = "x" }},
		{name: "zero token ttl", mutate: func(c *Config) { c.Admin.TokenTTL = 0 }},
		{name: "zero session ttl", mutate: func(c *Config) { c.SessionTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
