package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCompletedAt(db); err != nil {
		return fmt.Errorf("backfilling completed_at values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		name     TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		name     TEXT PRIMARY KEY,
		color    TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		day TEXT PRIMARY KEY
	)`,

	// Team and category are plain text: tickets may name a team that is no
	// longer configured and must survive untouched.
	`CREATE TABLE IF NOT EXISTS tickets (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		team        TEXT NOT NULL,
		category    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'upcoming'
		            CHECK(status IN ('upcoming','executing','done')),
		start_date  TEXT NOT NULL,
		duration    INTEGER NOT NULL CHECK(duration >= 1),
		order_index INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tickets_order ON tickets(order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	// Dependency flag and completion stamp arrived after the first release.
	`ALTER TABLE tickets ADD COLUMN is_dependent INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE tickets ADD COLUMN completed_at TEXT`,
}

// migrateBackfillCompletedAt stamps done tickets stored before completion
// times were recorded, using midnight UTC of their start date, so they show
// up in the archive. Idempotent.
func migrateBackfillCompletedAt(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`UPDATE tickets SET completed_at = start_date || 'T00:00:00Z'
		 WHERE status = 'done' AND completed_at IS NULL`)
	if err != nil {
		return fmt.Errorf("stamping legacy done tickets: %w", err)
	}
	return nil
}
