package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	CurrentStock  int64           `json:"current_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpiringBatchResponse lote próximo a vencer con el producto al que pertenece.
type ExpiringBatchResponse struct {
	Batch   BatchResponse   `json:"batch"`
	Product ProductResponse `json:"product"`
}
