package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
)

// Ensure TxRunner implements warehousing.TxRunner.
var _ warehousing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repositorios del kardex
// atados a esa tx y hace Commit o Rollback. Es el único límite transaccional
// de los motores compuestos: validación, chequeo de saldo y posteo viven
// dentro del mismo Run.
func (r *TxRunner) Run(ctx context.Context, fn func(repos warehousing.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := warehousing.Repos{
		Ledger:      NewLedgerRepository(tx),
		Locations:   NewLocationRepository(tx),
		Claims:      NewBatchClaimRepository(tx),
		Adjustments: NewAdjustmentRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
