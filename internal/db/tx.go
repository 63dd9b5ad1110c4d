package db

import "database/sql"

// Querier is the statement-execution surface shared by *sql.DB and *sql.Tx.
// Repositories run their writes through it, so a call can participate in a
// caller-managed transaction or auto-commit against the pool.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// TxFn is one unit of work run against a single transaction.
type TxFn func(tx *sql.Tx) error

// WithTransaction runs fn inside one transaction: commit when fn returns nil,
// rollback on error or panic. The connection is released on every path.
func WithTransaction(pool *sql.DB, fn TxFn) error {
	tx, err := pool.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Runner binds a pool to WithTransaction so services can open units of work
// without holding the pool themselves.
func Runner(pool *sql.DB) func(TxFn) error {
	return func(fn TxFn) error {
		return WithTransaction(pool, fn)
	}
}
