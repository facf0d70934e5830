// Package testdb provides utilities for database integration testing.
// It only depends on the embedded migrations and standard database
// packages, not on specific store implementations.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/nfjones/blogmart-api/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if the DATABASE_URL environment
// variable is set, indicating that integration tests can be run.
func IsIntegrationTestEnvironment() bool {
	return len(os.Getenv("DATABASE_URL")) > 0
}

// GetTestDB opens a connection to the test database named by DATABASE_URL,
// applies the embedded migrations, and registers cleanup. Tests that call
// it are skipped when DATABASE_URL is not set.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open test database connection")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close test database connection")
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")

	goose.SetLogger(&testGooseLogger{t: t})
	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"), "Failed to set migration dialect")
	require.NoError(t, goose.Up(db, "."), "Failed to run migrations")

	return db
}

// WithTx executes a test function within a transaction, automatically
// rolling back after the test completes. This ensures test isolation and
// prevents side effects between tests sharing a database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("Failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// testGooseLogger forwards goose output to the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatalf(format, v...)
}
