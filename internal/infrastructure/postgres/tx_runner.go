package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/genxsop/genxsop/internal/domain/repository"
)

// TxRunner runs a function inside a database transaction. The function gets a
// Querier bound to the transaction, so repositories built over it share one tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// WithinTx begins a transaction, invokes fn with it, and commits on success or
// rolls back on error.
func (t *TxRunner) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ForecastTxRunner adapts TxRunner to the forecast use case's transaction
// port: the callback gets a forecast repository bound to the transaction.
type ForecastTxRunner struct {
	inner *TxRunner
}

func NewForecastTxRunner(pool *pgxpool.Pool) *ForecastTxRunner {
	return &ForecastTxRunner{inner: NewTxRunner(pool)}
}

func (t *ForecastTxRunner) Run(ctx context.Context, fn func(forecasts repository.ForecastRepository) error) error {
	return t.inner.WithinTx(ctx, func(q Querier) error {
		return fn(NewForecastRepository(q))
	})
}
