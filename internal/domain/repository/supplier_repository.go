package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, int, error)
	// AddToBalance incrementa el saldo adeudado de forma atómica
	// (UPDATE balance = balance + amount), seguro bajo compras concurrentes.
	AddToBalance(ctx context.Context, supplierID string, amount decimal.Decimal) error
}
