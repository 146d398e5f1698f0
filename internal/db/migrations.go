package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
)

// Migration is one schema change. Versions are applied in ascending order,
// each in its own transaction, and recorded in schema_migrations.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the ordered schema history.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL,
			role          TEXT NOT NULL CHECK (role IN ('job_seeker', 'hr')),
			password_hash TEXT NOT NULL,
			linkedin_url  TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_email_role_key UNIQUE (email, role)
		)`,
	},
	{
		Version: 2,
		Name:    "create_analyses",
		SQL: `CREATE TABLE IF NOT EXISTS analyses (
			id             UUID PRIMARY KEY,
			user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			score          INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
			matched_skills TEXT NOT NULL DEFAULT '',
			missing_skills TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS analyses_user_created_idx ON analyses (user_id, created_at)`,
	},
	{
		Version: 3,
		Name:    "create_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company    TEXT NOT NULL,
			role       TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'Applied',
			job_link   TEXT,
			notes      TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS applications_user_created_idx ON applications (user_id, created_at DESC)`,
	},
	{
		Version: 4,
		Name:    "create_session_artifacts",
		SQL: `CREATE TABLE IF NOT EXISTS session_artifacts (
			session_id UUID NOT NULL,
			user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			kind       TEXT NOT NULL,
			filename   TEXT NOT NULL,
			text       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, kind)
		)`,
	},
	{
		Version: 5,
		Name:    "add_analyses_archive_key",
		SQL:     `ALTER TABLE analyses ADD COLUMN IF NOT EXISTS archive_key TEXT`,
	},
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// CurrentVersion returns the highest applied migration version, 0 when none.
func (db *DB) CurrentVersion(ctx context.Context) (int, error) {
	if _, err := db.pool.Exec(ctx, createMigrationsTable); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	var version int
	err := db.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate applies every migration newer than the recorded version and
// returns the versions it applied.
func (db *DB) Migrate(ctx context.Context) ([]int, error) {
	return db.migrate(ctx, Migrations)
}

func (db *DB) migrate(ctx context.Context, migrations []Migration) ([]int, error) {
	current, err := db.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	pending := PendingMigrations(migrations, current)
	applied := make([]int, 0, len(pending))
	for _, m := range pending {
		if err := db.apply(ctx, m); err != nil {
			return applied, err
		}
		applied = append(applied, m.Version)
	}
	return applied, nil
}

func (db *DB) apply(ctx context.Context, m Migration) error {
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.Version, m.Name,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	return nil
}

// PendingMigrations returns migrations with a version above current, in version order.
func PendingMigrations(migrations []Migration, current int) []Migration {
	var pending []Migration
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending
}
