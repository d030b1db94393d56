package sqlite

import "database/sql"

// schema sets up the verification log. It runs on startup; every statement
// is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS verifications (
    id TEXT PRIMARY KEY,
    person TEXT NOT NULL,
    verified_at INTEGER NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    present INTEGER NOT NULL DEFAULT 0,
    donated INTEGER NOT NULL DEFAULT 0,
    absent INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS verification_regressions (
    verification_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    item TEXT NOT NULL,
    PRIMARY KEY (verification_id, position),
    FOREIGN KEY (verification_id) REFERENCES verifications(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_verifications_person ON verifications(person, verified_at);
CREATE INDEX IF NOT EXISTS idx_verification_regressions_id ON verification_regressions(verification_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
