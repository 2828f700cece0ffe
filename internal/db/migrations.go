package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: listing queries sort by timestamp descending; reports are
	// listed newest-first in the admin view.
	`CREATE INDEX IF NOT EXISTS idx_items_timestamp ON items(timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp DESC)`,

	// Migration 2: category filtering on the listing endpoint.
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
