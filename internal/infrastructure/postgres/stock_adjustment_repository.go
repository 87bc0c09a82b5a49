package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación del log de correcciones manuales sobre PostgreSQL.
// Solo INSERT y SELECT: el log es inmutable.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create inserta un registro de corrección manual.
func (r *StockAdjustmentRepo) Create(ctx context.Context, adj *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, batch_id, previous_qty, new_qty, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.BatchID, adj.PreviousQty, adj.NewQty, adj.Reason, adj.CreatedBy, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// ListByBatch devuelve el historial de correcciones de un lote, reciente primero.
func (r *StockAdjustmentRepo) ListByBatch(ctx context.Context, batchID string, limit int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, batch_id, previous_qty, new_qty, reason, created_by, created_at
		FROM stock_adjustments WHERE batch_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, batchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAdjustment
	for rows.Next() {
		var adj entity.StockAdjustment
		if err := rows.Scan(
			&adj.ID, &adj.BatchID, &adj.PreviousQty, &adj.NewQty,
			&adj.Reason, &adj.CreatedBy, &adj.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &adj)
	}
	return list, rows.Err()
}
