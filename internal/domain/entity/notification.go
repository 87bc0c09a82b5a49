package entity

import "time"

// Tipos de notificación generados por el motor de alertas.
const (
	NotificationTypeLowStock = "LOW_STOCK"
	NotificationTypeExpiry   = "EXPIRY"
)

// Notification representa una alerta persistida (stock bajo o vencimiento).
// La deduplicación es lógica: no se crea una notificación con el mismo
// (Type, Message) mientras exista una gemela sin leer.
type Notification struct {
	ID        string
	Type      string
	Message   string
	Read      bool
	CreatedAt time.Time
}
