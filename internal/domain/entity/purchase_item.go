package entity

import "github.com/shopspring/decimal"

// PurchaseItem representa una línea de compra: snapshot de cantidad, costo y
// tarifa de impuesto fijados al momento de la transacción.
type PurchaseItem struct {
	ID            string
	PurchaseID    string
	ProductID     string
	BatchID       string
	Quantity      int64
	PurchasePrice decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje del producto al momento de comprar
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal // cantidad×precio + TaxAmount
}
