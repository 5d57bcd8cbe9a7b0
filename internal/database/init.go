package database

import (
	"context"
	"fmt"

	"github.com/evanchechak/basketball-injury-model/internal/config"
)

const trackedBetsSchema = `
CREATE TABLE IF NOT EXISTS tracked_bets (
	id              UUID PRIMARY KEY,
	player_name     TEXT NOT NULL,
	stat            TEXT NOT NULL,
	line            DOUBLE PRECISION NOT NULL,
	side            TEXT NOT NULL,
	prediction      DOUBLE PRECISION NOT NULL DEFAULT 0,
	amount          NUMERIC(12,2) NOT NULL,
	edge_percent    DOUBLE PRECISION NOT NULL DEFAULT 0,
	win_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
	notes           TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'pending',
	result          TEXT,
	actual          DOUBLE PRECISION,
	profit          NUMERIC(12,2),
	placed_at       TIMESTAMPTZ NOT NULL,
	settled_at      TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tracked_bets_status ON tracked_bets (status, placed_at);
`

// Initialize creates a database connection pool and ensures the bet
// tracker schema exists.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, trackedBetsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure tracked_bets schema: %w", err)
	}

	return db, nil
}
