package sqlite

import (
	"context"
	"fmt"
)

// migration is one versioned schema step. Steps run in order inside a single
// transaction each and are recorded in schema_migrations.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create sessions",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS sessions (
				id               TEXT PRIMARY KEY,
				room_label       TEXT NOT NULL DEFAULT '',
				round            INTEGER NOT NULL DEFAULT 1,
				scheduled_at     TEXT NOT NULL,
				scheduled_end_at TEXT,
				order_no         INTEGER NOT NULL DEFAULT 1,
				interviewers     TEXT NOT NULL DEFAULT '',
				status           TEXT NOT NULL DEFAULT 'SCHEDULED',
				created_at       TEXT NOT NULL,
				CHECK (scheduled_end_at IS NULL OR scheduled_end_at > scheduled_at)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_scheduled_at ON sessions(scheduled_at)`,
		},
	},
	{
		version: 2,
		name:    "create participants",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS participants (
				id             TEXT PRIMARY KEY,
				name           TEXT NOT NULL UNIQUE,
				applicant_code TEXT UNIQUE,
				position       TEXT NOT NULL DEFAULT '',
				score          INTEGER NOT NULL DEFAULT 0,
				created_at     TEXT NOT NULL
			)`,
		},
	},
	{
		version: 3,
		name:    "create session_participants",
		stmts: []string{
			// No uniqueness on (session_id, participant_id): a name listed
			// twice in one imported row produces two links.
			`CREATE TABLE IF NOT EXISTS session_participants (
				id             TEXT PRIMARY KEY,
				session_id     TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
				participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
				score          INTEGER,
				comment        TEXT,
				file_path      TEXT,
				created_at     TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_session_participants_session ON session_participants(session_id)`,
			`CREATE INDEX IF NOT EXISTS idx_session_participants_participant ON session_participants(participant_id)`,
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("sqlite: migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return err
	}

	return tx.Commit()
}
