package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un medicamento o producto farmacéutico del catálogo.
// El stock físico vive en los lotes (Batch); el stock del producto siempre
// se deriva sumando sus lotes, nunca se almacena aquí.
type Product struct {
	ID           string
	Name         string
	Manufacturer string          // laboratorio fabricante
	HSNCode      string          // código arancelario para impuestos
	TaxRate      decimal.Decimal // porcentaje: ej. 0, 5, 12, 18
	RetailPrice  decimal.Decimal // precio de venta al público sugerido
	ReorderLevel int64           // stock total mínimo antes de considerarse "bajo"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
