package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, manufacturer, hsn_code, tax_rate, retail_price, reorder_level, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Manufacturer, p.HSNCode, p.TaxRate, p.RetailPrice,
		p.ReorderLevel, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos ordenados por nombre con filtro substring
// case-insensitive sobre nombre, código HSN y laboratorio. Devuelve también
// el total de coincidencias para la paginación.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ``
	args := []any{}
	if filter.Search != "" {
		where = `WHERE name ILIKE $1 OR hsn_code ILIKE $1 OR manufacturer ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// LowStock devuelve los productos cuyo stock total (suma de lotes, 0 si no
// tiene lotes) es menor o igual a su nivel de reorden.
func (r *ProductRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.name, p.manufacturer, p.hsn_code, p.tax_rate, p.retail_price,
		       p.reorder_level, p.created_at, p.updated_at,
		       COALESCE(SUM(b.current_stock), 0) AS total_stock
		FROM products p
		LEFT JOIN batches b ON b.product_id = p.id
		GROUP BY p.id
		HAVING COALESCE(SUM(b.current_stock), 0) <= p.reorder_level
		ORDER BY (p.reorder_level - COALESCE(SUM(b.current_stock), 0)) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.Product.ID, &row.Product.Name, &row.Product.Manufacturer, &row.Product.HSNCode,
			&row.Product.TaxRate, &row.Product.RetailPrice, &row.Product.ReorderLevel,
			&row.Product.CreatedAt, &row.Product.UpdatedAt, &row.TotalStock,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Manufacturer, &p.HSNCode, &p.TaxRate,
		&p.RetailPrice, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
