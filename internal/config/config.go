// Package config loads gearcheck settings from an optional YAML file
// overlaid by GEARCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/gearcheck/internal/models"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "GEARCHECK_"

// Config is the full process configuration.
type Config struct {
	Addr      string `yaml:"addr"       env:"ADDR"`
	LogLevel  string `yaml:"log_level"  env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// VerificationDB is the SQLite file of the verification log. Empty
	// disables the log.
	VerificationDB string `yaml:"verification_db" env:"VERIFICATION_DB"`

	// SessionTTL is how long an idle verification session is kept.
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`

	Table  TableConfig  `yaml:"table"  envPrefix:"TABLE_"`
	Schema SchemaConfig `yaml:"schema" envPrefix:"SCHEMA_"`
	Admin  AdminConfig  `yaml:"admin"  envPrefix:"ADMIN_"`
}

// TableConfig locates the table and its backup.
type TableConfig struct {
	// DataFile is the local .xlsx or .csv fallback.
	DataFile string `yaml:"data_file" env:"DATA_FILE"`

	// SpreadsheetID enables the Google Sheets backend when set together
	// with credentials.
	SpreadsheetID string `yaml:"spreadsheet_id" env:"SPREADSHEET_ID"`

	// CredentialsJSON is an inline service-account key. It wins over
	// CredentialsFile.
	CredentialsJSON string `yaml:"credentials_json" env:"CREDENTIALS_JSON"`
	CredentialsFile string `yaml:"credentials_file" env:"CREDENTIALS_FILE"`

	// BackupLabel names the backup worksheet and prefixes the backup file.
	BackupLabel string `yaml:"backup_label" env:"BACKUP_LABEL"`

	// SheetsBaseURL overrides the Sheets API endpoint, for tests.
	SheetsBaseURL string `yaml:"sheets_base_url" env:"SHEETS_BASE_URL"`
}

// SchemaConfig names the metadata columns. Every other column is an item.
type SchemaConfig struct {
	NameColumn     string   `yaml:"name_column"     env:"NAME_COLUMN"`
	TeamColumn     string   `yaml:"team_column"     env:"TEAM_COLUMN"`
	StorageColumn  string   `yaml:"storage_column"  env:"STORAGE_COLUMN"`
	NotesColumn    string   `yaml:"notes_column"    env:"NOTES_COLUMN"`
	ExtraMetadata  []string `yaml:"extra_metadata"  env:"EXTRA_METADATA" envSeparator:","`
	DonationMarker string   `yaml:"donation_marker" env:"DONATION_MARKER"`
}

// AdminConfig guards the admin operations.
type AdminConfig struct {
	// Password is plaintext or a bcrypt hash. Empty disables admin login.
	Password    string        `yaml:"password"     env:"PASSWORD"`
	TokenSecret string        `yaml:"token_secret" env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"TOKEN_TTL"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	schema := models.DefaultSchema()
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "tint",
		VerificationDB: "./data/verifications.db",
		SessionTTL:     2 * time.Hour,
		Table: TableConfig{
			DataFile:        "RSP6551.xlsx",
			CredentialsFile: "service_account.json",
			BackupLabel:     "גיבוי_מקורי",
		},
		Schema: SchemaConfig{
			NameColumn:     schema.NameColumn,
			TeamColumn:     schema.TeamColumn,
			StorageColumn:  schema.StorageColumn,
			NotesColumn:    schema.NotesColumn,
			ExtraMetadata:  schema.ExtraMetadata,
			DonationMarker: models.DefaultDonationMarker,
		},
		Admin: AdminConfig{
			TokenTTL: 8 * time.Hour,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that cannot work at runtime.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Table.DataFile) == "" && c.Table.SpreadsheetID == "" {
		errs = append(errs, errors.New("table: either data_file or spreadsheet_id is required"))
	}
	if strings.TrimSpace(c.Schema.NameColumn) == "" {
		errs = append(errs, errors.New("schema: name_column is required"))
	}
	if c.Admin.Password != "" && c.Admin.TokenSecret == "" {
		errs = append(errs, errors.New("admin: token_secret is required when a password is set"))
	}
	if c.Admin.TokenTTL <= 0 {
		errs = append(errs, errors.New("admin: token_ttl must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TableSchema converts the schema settings.
func (c Config) TableSchema() models.Schema {
	return models.Schema{
		NameColumn:    c.Schema.NameColumn,
		TeamColumn:    c.Schema.TeamColumn,
		StorageColumn: c.Schema.StorageColumn,
		NotesColumn:   c.Schema.NotesColumn,
		ExtraMetadata: c.Schema.ExtraMetadata,
		Codec:         models.StateCodec{DonationMarker: c.Schema.DonationMarker},
	}
}
