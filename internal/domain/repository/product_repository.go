package repository

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// ProductFilter filtros para el listado paginado de productos.
// Search aplica substring case-insensitive sobre nombre, código HSN y laboratorio.
type ProductFilter struct {
	Search string
	Limit  int
	Offset int
}

// LowStockRow producto cuyo stock total (suma de lotes) está en o bajo su nivel de reorden.
type LowStockRow struct {
	Product    entity.Product
	TotalStock int64
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List devuelve la página de productos ordenada por nombre ascendente
	// y el total de coincidencias (para calcular has_more).
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// LowStock devuelve los productos con SUM(stock de lotes) <= reorder_level.
	LowStock(ctx context.Context) ([]LowStockRow, error)
}
