package repository

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
// Las compras son inmutables: solo Create y lecturas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	// GetByID devuelve la compra con sus líneas en el orden original y el proveedor.
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
}
