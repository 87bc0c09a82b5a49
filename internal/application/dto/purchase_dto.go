package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest una línea de la factura del proveedor.
type PurchaseItemRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	BatchNumber   string          `json:"batch_number" validate:"required"`
	Quantity      int64           `json:"quantity" validate:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	ExpiryDate    time.Time       `json:"expiry_date"`
}

// CreatePurchaseRequest entrada para registrar una compra a proveedor.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	BillNumber string                `json:"bill_number" validate:"required"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse snapshot de una línea de compra.
type PurchaseItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	BatchID       string          `json:"batch_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// PurchaseResponse compra materializada con líneas y proveedor.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id"`
	BillNumber string                 `json:"bill_number"`
	SubTotal   decimal.Decimal        `json:"sub_total"`
	TaxAmount  decimal.Decimal        `json:"tax_amount"`
	NetAmount  decimal.Decimal        `json:"net_amount"`
	CreatedAt  time.Time              `json:"created_at"`
	Items      []PurchaseItemResponse `json:"items"`
	Supplier   *SupplierResponse      `json:"supplier,omitempty"`
}
