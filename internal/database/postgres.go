package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool against databaseURL and verifies it
// with a ping. The pool carries the query tracer for metrics collection.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	config.ConnConfig.Tracer = &MetricsTracer{}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations applies the schema. Every statement is idempotent, so
// running them on each startup is safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS polls (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS options (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_options_poll_id ON options(poll_id)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			option_id UUID NOT NULL REFERENCES options(id) ON DELETE CASCADE,
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_poll_id ON likes(poll_id)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
