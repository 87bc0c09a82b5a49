package stock

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del libro de stock atados a esa tx. Toda mutación de la
// existencia de un lote pasa por aquí (FOR UPDATE + Commit/Rollback), nunca
// por un read-modify-write fuera de transacción.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		batches repository.BatchRepository,
		adjustments repository.StockAdjustmentRepository,
	) error) error
}
