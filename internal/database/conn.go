package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tap-to-win/internal/apperr"
)

// Acquire takes a dedicated connection from the pool. A failure here means
// the database is unreachable and is classified as unavailable. Callers must
// Close the connection, which hands it back to the pool.
func Acquire(ctx context.Context, db *sql.DB, op string) (*sql.Conn, error) {
	c, err := db.Conn(ctx)
	if err != nil {
		log.Error("Failed to acquire database connection", "op", op, "error", err)
		return nil, apperr.UnavailableError(op, err)
	}
	return c, nil
}

// WithTx runs fn in a transaction on c, rolling back unless fn succeeds and
// the commit goes through.
func WithTx(ctx context.Context, c *sql.Conn, fn func(tx *sql.Tx) error) error {
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("Failed to roll back transaction", "error", err)
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
