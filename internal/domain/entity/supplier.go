package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor (droguería/laboratorio).
// Balance es el saldo acumulado que el negocio le debe; solo crece con cada
// compra registrada. Los pagos/abonos se manejan en otro subsistema.
type Supplier struct {
	ID        string
	Name      string
	Contact   string // teléfono o email de contacto comercial
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
