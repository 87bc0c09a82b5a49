package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Manufacturer string          `json:"manufacturer"`
	HSNCode      string          `json:"hsn_code"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	ReorderLevel int64           `json:"reorder_level"`
}

// ProductResponse salida de un producto; Batches se incluye solo si se pidió detalle.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	HSNCode      string          `json:"hsn_code"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	ReorderLevel int64           `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Batches []BatchResponse `json:"batches,omitempty"`
}

// ProductListRequest parámetros del listado de productos.
type ProductListRequest struct {
	PageRequest
	Search      string `query:"search"`
	WithBatches bool   `query:"with_batches"`
	OnlyInStock bool   `query:"only_in_stock"`
}

// ProductListResponse lista paginada de productos (envelope data/total/has_more).
type ProductListResponse struct {
	Data    []ProductResponse `json:"data"`
	Total   int               `json:"total"`
	HasMore bool              `json:"has_more"`
}

// LowStockProductResponse producto bajo su nivel de reorden con el stock total actual.
type LowStockProductResponse struct {
	Product    ProductResponse `json:"product"`
	TotalStock int64           `json:"total_stock"`
}
