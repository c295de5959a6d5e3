package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFn runs inside a transaction. Returning an error rolls the transaction back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTx executes fn in a transaction bound to ctx. The transaction is committed only if fn
// returns nil; on error, panic or cancellation it is rolled back before RunInTx returns.
func RunInTx(ctx context.Context, db *sql.DB, logger *zap.Logger, fn TxFn) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Failed to roll back transaction", zap.Error(rbErr))
		}
		if p := recover(); p != nil {
			logger.Error("Rolled back transaction after panic", zap.Any("panic", p))
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		logger.Debug("Rolling back transaction", zap.Error(err))
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
