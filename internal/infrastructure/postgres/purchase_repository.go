package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
// Las compras son inmutables: solo INSERT y SELECT.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, bill_number, sub_total, tax_amount, net_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.BillNumber, p.SubTotal, p.TaxAmount, p.NetAmount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de compra. position preserva el orden de entrada.
func (r *PurchaseRepo) CreateItem(ctx context.Context, item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, batch_id, quantity, purchase_price, tax_rate, tax_amount, total_amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT COUNT(*) FROM purchase_items WHERE purchase_id = $2))`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.PurchaseID, item.ProductID, item.BatchID, item.Quantity,
		item.PurchasePrice, item.TaxRate, item.TaxAmount, item.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID devuelve la compra con su proveedor y sus líneas en el orden original;
// (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `
		SELECT pu.id, pu.supplier_id, pu.bill_number, pu.sub_total, pu.tax_amount, pu.net_amount, pu.created_at,
		       s.id, s.name, s.contact, s.balance, s.created_at, s.updated_at
		FROM purchases pu
		JOIN suppliers s ON s.id = pu.supplier_id
		WHERE pu.id = $1`
	var p entity.Purchase
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SupplierID, &p.BillNumber, &p.SubTotal, &p.TaxAmount, &p.NetAmount, &p.CreatedAt,
		&s.ID, &s.Name, &s.Contact, &s.Balance, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p.Supplier = &s

	itemsQuery := `
		SELECT id, purchase_id, product_id, batch_id, quantity, purchase_price, tax_rate, tax_amount, total_amount
		FROM purchase_items WHERE purchase_id = $1 ORDER BY position ASC`
	rows, err := r.q.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.PurchaseItem
		if err := rows.Scan(
			&item.ID, &item.PurchaseID, &item.ProductID, &item.BatchID, &item.Quantity,
			&item.PurchasePrice, &item.TaxRate, &item.TaxAmount, &item.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		p.Items = append(p.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}
