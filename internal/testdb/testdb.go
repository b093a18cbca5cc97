package testdb

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// DatabaseURLEnv names the variable pointing at a disposable database.
const DatabaseURLEnv = "TODO_TEST_DATABASE_URL"

// TestTimeout bounds setup operations against the test database.
const TestTimeout = 5 * time.Second

// DatabaseURL returns the test database URL or skips t when none is set.
func DatabaseURL(t *testing.T) string {
	t.Helper()

	dbURL := os.Getenv(DatabaseURLEnv)
	if dbURL == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration tests", DatabaseURLEnv)
	}
	t.Logf("using test database %s", MaskDatabaseURL(dbURL))
	return dbURL
}

// MaskDatabaseURL masks the password in a database URL for safe logging.
func MaskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User == nil {
		return dbURL
	}
	password, hasPassword := parsed.User.Password()
	if !hasPassword {
		return dbURL
	}
	return strings.Replace(dbURL, ":"+password+"@", ":****@", 1)
}

// Tx begins a transaction on db that is rolled back when t finishes,
// so tests can write freely without persisting anything.
func Tx(t *testing.T, db *sql.DB) *sql.Tx {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("database connection failed before transaction: %v", err)
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	})
	return tx
}
