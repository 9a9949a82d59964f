package postgres

import (
	"context"
	"database/sql"
)

// DB is the query surface the stores need. *sql.DB satisfies it directly;
// LazyDB satisfies it by resolving the live handle through the Manager on
// every call, so a stale connection is detected and replaced before the
// query runs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ DB = (*sql.DB)(nil)

// LazyDB routes every call through the Manager's liveness check.
type LazyDB struct {
	manager *Manager
}

var _ DB = (*LazyDB)(nil)

// NewLazyDB creates a LazyDB on top of the manager.
func NewLazyDB(manager *Manager) *LazyDB {
	return &LazyDB{manager: manager}
}

// ExecContext implements DB.
func (l *LazyDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	db, err := l.manager.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, query, args...)
}

// QueryContext implements DB.
func (l *LazyDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	db, err := l.manager.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, query, args...)
}

// BeginTx implements DB.
func (l *LazyDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	db, err := l.manager.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.BeginTx(ctx, opts)
}
