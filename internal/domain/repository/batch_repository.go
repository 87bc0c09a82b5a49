package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// ExpiringBatchRow lote próximo a vencer con el detalle de su producto.
type ExpiringBatchRow struct {
	Batch   entity.Batch
	Product entity.Product
}

// BatchRepository define el puerto de persistencia para lotes.
// Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción; devuelven (nil, nil) si el lote no existe.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	GetByProductAndNumberForUpdate(ctx context.Context, productID, batchNumber string) (*entity.Batch, error)
	// Update persiste stock, precios y vencimiento del lote.
	Update(ctx context.Context, batch *entity.Batch) error
	// ListByProduct devuelve los lotes de un producto; onlyInStock limita a current_stock > 0.
	ListByProduct(ctx context.Context, productID string, onlyInStock bool) ([]*entity.Batch, error)
	// ListExpiring devuelve lotes con vencimiento en (from, to], con su producto.
	ListExpiring(ctx context.Context, from, to time.Time) ([]ExpiringBatchRow, error)
}
