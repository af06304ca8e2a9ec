package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the statement surface shared by the pool and an open
// transaction, so repository code runs unchanged inside either.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QueryError wraps a driver-level failure with the statement context and
// the SQLSTATE code when the driver reported one.
type QueryError struct {
	Op   string
	Code string
	Err  error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %v (sqlstate %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// WrapError converts a driver error into a QueryError. pgx.ErrNoRows is
// passed through untouched so callers can translate it to a not-found.
func WrapError(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{Op: op, Code: pgErr.Code, Err: err}
	}
	return &QueryError{Op: op, Err: err}
}

// DB owns the connection pool and transaction boundaries. Built once at
// startup and passed into every component that touches the store.
type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("Database connected successfully")

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	log.Println("Database disconnected")
}

// txBeginner is the slice of the pool that opens transactions.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction: commit when fn returns nil,
// rollback and re-raise otherwise. Rollback also fires if fn panics.
func (db *DB) WithTx(ctx context.Context, fn func(tx DBTX) error) error {
	return runInTx(ctx, db.Pool, fn)
}

func runInTx(ctx context.Context, db txBeginner, fn func(tx DBTX) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return WrapError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return WrapError("commit transaction", err)
	}
	return nil
}
