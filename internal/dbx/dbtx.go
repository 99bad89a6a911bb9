// Package dbx holds the small database/sql helpers used by the local
// repositories: the DBTX handle satisfied by both *sql.DB and *sql.Tx, and
// WithTx for running several statements atomically.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxStarter opens transactions. *sql.DB satisfies it.
type TxStarter interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics; panics
// are re-raised after the rollback.
//
//	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := slots.NewSQLiteRepository(tx)
//	    return repo.Set(ctx, "k", v)
//	})
func WithTx(ctx context.Context, db TxStarter, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
