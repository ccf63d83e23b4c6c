// Package dbx holds the minimal database/sql surface shared by storage
// code. DBTX is implemented by both *sql.DB and *sql.Tx, so repositories
// can run against either.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our storage layer.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
