package dto

// StockCorrectionRequest entrada para una corrección manual de stock.
// Quantity reemplaza (no incrementa) la existencia actual del lote.
type StockCorrectionRequest struct {
	Quantity int64  `json:"quantity" validate:"min=0"`
	Reason   string `json:"reason" validate:"required,min=1"`
}

// StockCorrectionResponse lote actualizado con el detalle de su producto.
type StockCorrectionResponse struct {
	Batch   BatchResponse   `json:"batch"`
	Product ProductResponse `json:"product"`
}
