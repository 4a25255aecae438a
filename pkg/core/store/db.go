// Package store persists company aggregates in Postgres, or in a local
// directory of JSON files when no database is configured.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool and applies the schema.
func InitDB(ctx context.Context, dbURL string) error {
	var err error
	once.Do(func() {
		if dbURL == "" {
			err = fmt.Errorf("database url not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}
		err = EnsureSchema(ctx, pool)
	})
	return err
}

// GetPool returns the database connection pool, or nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// Schema is the DDL for the companies table. The full aggregate lives in
// data; the other columns are projections for lookups and locking.
const Schema = `
CREATE TABLE IF NOT EXISTS companies (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	version      INTEGER NOT NULL,
	data         JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS companies_user_idx ON companies (user_id) WHERE is_active;
`

// EnsureSchema creates the tables if they are missing.
func EnsureSchema(ctx context.Context, p *pgxpool.Pool) error {
	if _, err := p.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
