package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auction-house/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jpillora/backoff"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type TxRunner struct {
	pool       *pgxpool.Pool
	logger     *slog.Logger
	maxRetries int
	backoff    backoff.Backoff
}

func NewTxRunner(pool *pgxpool.Pool, logger *slog.Logger) *TxRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &TxRunner{
		pool:       pool,
		logger:     logger,
		maxRetries: 3,
		backoff:    backoff.Backoff{Min: 20 * time.Millisecond, Max: 500 * time.Millisecond, Factor: 2, Jitter: true},
	}
}

// Serializable runs fn in a SERIALIZABLE transaction, retrying the whole
// transaction on serialization failures and deadlocks.
func (r *TxRunner) Serializable(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (r *TxRunner) run(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	b := r.backoff
	for attempt := 0; ; attempt++ {
		tx, err := r.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = tx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			r.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}

		if !IsRetryable(err) {
			return err
		}
		if attempt >= r.maxRetries {
			r.logger.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, ErrMaxRetriesExceeded)
		}

		wait := b.Duration()
		r.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
