package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wichananm65/entries-backend/internal/infrastructure/config"
)

// Open connects to PostgreSQL through the pgx database/sql driver, applies
// pool settings and pings for fail-fast validation.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL,
		phone text NOT NULL,
		hobbies text[] NOT NULL,
		place text NOT NULL,
		gender text NOT NULL CHECK (gender IN ('Male', 'Female', 'Other')),
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS entries_email_key ON entries (email)`,
	`CREATE INDEX IF NOT EXISTS entries_name_idx ON entries (name)`,
	`CREATE INDEX IF NOT EXISTS entries_phone_idx ON entries (phone)`,
	`CREATE INDEX IF NOT EXISTS entries_place_idx ON entries (place)`,
	`CREATE INDEX IF NOT EXISTS entries_gender_idx ON entries (gender)`,
	`CREATE INDEX IF NOT EXISTS entries_hobbies_idx ON entries USING GIN (hobbies)`,
}

// EnsureSchema creates the entries table and its indexes when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
