package store

import (
	"context"
	"database/sql"
	"fmt"
)

// withTx runs fn inside a transaction.
// The transaction is committed when fn returns nil and rolled back otherwise,
// including when fn panics. Errors returned by fn are passed through unwrapped
// so callers can match ErrNotFound and ErrAlreadyExists.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
