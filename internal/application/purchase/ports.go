package purchase

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la compra, los lotes y el saldo
// del proveedor se confirmen o se reviertan como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		batches repository.BatchRepository,
		suppliers repository.SupplierRepository,
		purchases repository.PurchaseRepository,
	) error) error
}
