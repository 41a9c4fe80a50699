package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
)

const currentSchemaVersion = 1

// schemaDDL mirrors the sections of the archive document.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT
);

CREATE TABLE IF NOT EXISTS issues (
	id                 INTEGER PRIMARY KEY,
	reporter           TEXT NOT NULL,
	assignee           TEXT,
	priority           TEXT NOT NULL,
	status             TEXT NOT NULL,
	kind               TEXT NOT NULL,
	component          TEXT NOT NULL DEFAULT '',
	version            TEXT NOT NULL DEFAULT '',
	milestone          TEXT NOT NULL DEFAULT '',
	created_on         TEXT NOT NULL DEFAULT '',
	updated_on         TEXT NOT NULL DEFAULT '',
	content_updated_on TEXT NOT NULL DEFAULT '',
	title              TEXT NOT NULL,
	content            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id         INTEGER NOT NULL,
	issue_id   INTEGER NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	user       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_on TEXT NOT NULL DEFAULT '',
	updated_on TEXT NOT NULL DEFAULT '',
	seq        INTEGER PRIMARY KEY AUTOINCREMENT
);

CREATE TABLE IF NOT EXISTS attachments (
	issue_id INTEGER NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	filename TEXT NOT NULL,
	path     TEXT NOT NULL,
	user     TEXT NOT NULL,
	PRIMARY KEY (issue_id, path)
);

CREATE TABLE IF NOT EXISTS collections (
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (kind, name)
);

CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status);
CREATE INDEX IF NOT EXISTS idx_issues_priority ON issues(priority);
CREATE INDEX IF NOT EXISTS idx_issues_kind ON issues(kind);
CREATE INDEX IF NOT EXISTS idx_comments_issue_id ON comments(issue_id);
`

// Initialize creates all tables if they don't exist and sets the schema version.
func Initialize(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaDDL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	_, err = tx.Exec(
		`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)`,
		strconv.Itoa(currentSchemaVersion),
	)
	if err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}

	return tx.Commit()
}

// SchemaVersion returns the current schema version from the meta table.
func SchemaVersion(db *sql.DB) (int, error) {
	var val string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&val)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("parsing schema version %q: %w", val, err)
	}

	return v, nil
}
