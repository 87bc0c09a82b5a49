package repository

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto del log de correcciones manuales.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.StockAdjustment) error
	ListByBatch(ctx context.Context, batchID string, limit int) ([]*entity.StockAdjustment, error)
}
