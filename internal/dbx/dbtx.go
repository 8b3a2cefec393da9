// Package dbx holds the SQL plumbing shared by repositories: the DBTX
// handle satisfied by *sql.DB and *sql.Tx, dialect-bound handles that
// rebind '?' placeholders, and a transaction runner.
package dbx

import (
	"context"
	"database/sql"
	"errors"
)

// DBTX is what repositories need from database/sql.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Bind returns a handle that rewrites every query into d's placeholder
// style before passing it to db. SQLite needs no rewriting, so db itself
// is returned.
func Bind(db DBTX, d Dialect) DBTX {
	if d != DialectPostgres {
		return db
	}
	if b, ok := db.(boundDB); ok && b.dialect == d {
		return b
	}
	return boundDB{db: db, dialect: d}
}

type boundDB struct {
	db      DBTX
	dialect Dialect
}

func (b boundDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.db.ExecContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.db.QueryContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.db.QueryRowContext(ctx, b.dialect.Rebind(query), args...)
}

// WithTx runs fn inside a transaction on db. It commits when fn returns nil
// and rolls back otherwise; a failed rollback is joined onto fn's error.
// A panic in fn rolls back and is rethrown.
//
// Repositories used inside fn must be bound to tx, not to db: the SQLite
// store runs with a single connection and would block otherwise.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := m.Users(tx).UpdateHighScore(ctx, id, score)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		finished = true
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	finished = true
	return tx.Commit()
}
