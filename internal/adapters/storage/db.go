package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by the SQLite-backed store, so tests
// and callers can hand in either a raw *sql.DB or a wrapper.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: member and performance tables exist
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY COLLATE NOCASE,
		kind TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		join_date TEXT NOT NULL,
		base_fee REAL NOT NULL DEFAULT 0,
		sessions_per_month INTEGER NOT NULL DEFAULT 0,
		fee_per_session REAL NOT NULL DEFAULT 0,
		spa_access INTEGER NOT NULL DEFAULT 0,
		premium_service_fee REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS performance (
		member_id TEXT NOT NULL,
		month TEXT NOT NULL,
		goal_achieved INTEGER NOT NULL DEFAULT 0,
		rating INTEGER NOT NULL DEFAULT 3,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (member_id, month)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
