package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa la cabecera de una compra a proveedor.
// Es un registro inmutable: una vez confirmada la transacción no se
// recalculan sus totales aunque cambien los precios del producto o del lote.
type Purchase struct {
	ID         string
	SupplierID string
	BillNumber string          // número de factura del proveedor
	SubTotal   decimal.Decimal // suma de líneas antes de impuestos
	TaxAmount  decimal.Decimal // suma de impuestos de todas las líneas
	NetAmount  decimal.Decimal // SubTotal + TaxAmount
	CreatedAt  time.Time

	Items    []*PurchaseItem // en el orden de entrada de la factura
	Supplier *Supplier       // cargado en lecturas, no se persiste aquí
}
