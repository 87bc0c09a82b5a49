package entity

import "time"

// StockAdjustment es el registro de auditoría inmutable de una corrección
// manual de stock: quién la hizo, por qué y qué cantidad reemplazó a cuál.
type StockAdjustment struct {
	ID          string
	BatchID     string
	PreviousQty int64
	NewQty      int64
	Reason      string
	CreatedBy   string // UserID del que corrige
	CreatedAt   time.Time
}
