// Package testutil connects contract tests to a scratch Postgres database.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
)

// OpenMigratedPool opens a pool against the database named by
// TEST_DATABASE_URL, applies the schema, and empties all tables so every test
// starts from a clean slate. Tests calling it are skipped when the variable
// is unset, which keeps the suite runnable without a database.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		TRUNCATE users, trips, participants, expenses, trip_participants, currencies, payments
	`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
