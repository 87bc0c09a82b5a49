package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/distrifarma-api/internal/application/purchase"
	"github.com/tu-usuario/distrifarma-api/internal/application/stock"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// Ensure TxRunner implements purchase.TxRunner and stock.TxRunner.
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repositorios de la compra atados a la tx
// y hace Commit o Rollback en un único punto de salida (para el intake de compras).
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	batches repository.BatchRepository,
	suppliers repository.SupplierRepository,
	purchases repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewBatchRepository(tx),
		NewSupplierRepository(tx),
		NewPurchaseRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repositorios del libro de stock
// (para correcciones manuales e incrementos de lote).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	batches repository.BatchRepository,
	adjustments repository.StockAdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBatchRepository(tx), NewStockAdjustmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
