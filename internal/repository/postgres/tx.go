package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hanulsoft/board-server/internal/model"
)

// runTx executes fn inside a transaction with a single rollback exit
// path: any error out of fn, and any commit failure, leaves the unit
// rolled back. The deferred rollback is a no-op once the commit lands,
// so the unit always reaches a terminal state.
func runTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// uniqueViolation maps a Postgres unique-index violation to the
// matching conflict error. The in-transaction probe catches duplicates
// on the fast path; this is the backstop for concurrent submissions
// that race past the probe.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_email_active_idx":
		return model.ErrEmailTaken
	case "users_nickname_active_idx":
		return model.ErrNicknameTaken
	}
	return nil
}
