package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, batch_number, expiry_date, current_stock, purchase_price, sale_price, created_at, updated_at`

// Create inserta un lote nuevo. La unicidad de (product_id, batch_number)
// la garantiza el constraint de la tabla.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ProductID, b.BatchNumber, b.ExpiryDate, b.CurrentStock,
		b.PurchasePrice, b.SalePrice, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// GetByProductAndNumberForUpdate busca por la clave única (product_id, batch_number)
// y bloquea la fila. (nil, nil) si el lote aún no existe.
func (r *BatchRepo) GetByProductAndNumberForUpdate(ctx context.Context, productID, batchNumber string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE product_id = $1 AND batch_number = $2 FOR UPDATE`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, productID, batchNumber).Scan(
		&b.ID, &b.ProductID, &b.BatchNumber, &b.ExpiryDate, &b.CurrentStock,
		&b.PurchasePrice, &b.SalePrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return &b, nil
}

// Update persiste stock, precios y vencimiento de un lote existente.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches
		SET current_stock = $2, purchase_price = $3, sale_price = $4, expiry_date = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.CurrentStock, b.PurchasePrice, b.SalePrice, b.ExpiryDate, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProduct devuelve los lotes de un producto; onlyInStock limita a existencia > 0.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID string, onlyInStock bool) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE product_id = $1`
	if onlyInStock {
		query += ` AND current_stock > 0`
	}
	query += ` ORDER BY expiry_date ASC`

	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.BatchNumber, &b.ExpiryDate, &b.CurrentStock,
			&b.PurchasePrice, &b.SalePrice, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListExpiring devuelve lotes con vencimiento en (from, to], con su producto,
// ordenados por vencimiento más próximo.
func (r *BatchRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]repository.ExpiringBatchRow, error) {
	query := `
		SELECT b.id, b.product_id, b.batch_number, b.expiry_date, b.current_stock,
		       b.purchase_price, b.sale_price, b.created_at, b.updated_at,
		       p.id, p.name, p.manufacturer, p.hsn_code, p.tax_rate, p.retail_price,
		       p.reorder_level, p.created_at, p.updated_at
		FROM batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.expiry_date > $1 AND b.expiry_date <= $2
		ORDER BY b.expiry_date ASC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpiringBatchRow
	for rows.Next() {
		var row repository.ExpiringBatchRow
		if err := rows.Scan(
			&row.Batch.ID, &row.Batch.ProductID, &row.Batch.BatchNumber, &row.Batch.ExpiryDate,
			&row.Batch.CurrentStock, &row.Batch.PurchasePrice, &row.Batch.SalePrice,
			&row.Batch.CreatedAt, &row.Batch.UpdatedAt,
			&row.Product.ID, &row.Product.Name, &row.Product.Manufacturer, &row.Product.HSNCode,
			&row.Product.TaxRate, &row.Product.RetailPrice, &row.Product.ReorderLevel,
			&row.Product.CreatedAt, &row.Product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expiring batch: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *BatchRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Batch, error) {
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ProductID, &b.BatchNumber, &b.ExpiryDate, &b.CurrentStock,
		&b.PurchasePrice, &b.SalePrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}
