package database

import (
	"context"
	"testing"
	"time"

	"github.com/evanchechak/basketball-injury-model/internal/config"
)

// SetupTestDB creates a test database connection and verifies it. Tests
// that need a live database should call this and skip when it fails.
func SetupTestDB(t *testing.T) *DB {
	cfg, err := config.LoadWithDefaults("../../config/config.test.yaml")
	if err != nil {
		t.Skipf("failed to load test config: %v", err)
	}
	if !cfg.HasDatabase() {
		t.Skip("no test database configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}
