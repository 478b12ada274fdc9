package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Beginner opens transactions on a caller-owned connection.
// *pgx.Conn, *pgxpool.Conn and *pgxpool.Pool satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// execInTransaction runs fn inside a transaction on conn.
// On success the transaction is committed. Every other exit, including a
// panic in fn, rolls it back. conn itself is never closed.
func execInTransaction(ctx context.Context, conn Beginner, log *slog.Logger, fn func(tx pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	log.Debug("transaction open")

	committed := false

	defer func() {
		if committed {
			return
		}

		// Roll back even if ctx was cancelled, so the connection is handed
		// back to the caller outside a transaction.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn("rolling back transaction", "error", rbErr)
			return
		}

		log.Debug("transaction rolled back")
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	committed = true

	log.Debug("transaction committed")

	return nil
}
