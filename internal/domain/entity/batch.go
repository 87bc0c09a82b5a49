package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote de un producto: una recepción física con su propia
// fecha de vencimiento, precios y cantidad en existencia.
// (product_id, batch_number) es único; CurrentStock nunca es negativo.
type Batch struct {
	ID            string
	ProductID     string
	BatchNumber   string
	ExpiryDate    time.Time
	CurrentStock  int64
	PurchasePrice decimal.Decimal // costo de la última compra
	SalePrice     decimal.Decimal // precio de venta de la última compra
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
