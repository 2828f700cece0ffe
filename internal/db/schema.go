package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id                   INTEGER PRIMARY KEY,
    title                TEXT NOT NULL,
    price                TEXT NOT NULL,
    contact              TEXT NOT NULL,
    category             TEXT NOT NULL,
    category_description TEXT,
    images               TEXT NOT NULL,
    timestamp            INTEGER NOT NULL,
    apron_size           TEXT,
    apron_color          TEXT,
    delete_key_hash      TEXT
);

CREATE TABLE IF NOT EXISTS reports (
    id        INTEGER PRIMARY KEY,
    message   TEXT NOT NULL,
    item_id   INTEGER,
    timestamp INTEGER NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
