package dto

import "time"

// NotificationResponse salida de una notificación del motor de alertas.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanSummaryResponse resultado de una pasada del motor de alertas.
type ScanSummaryResponse struct {
	Detected int `json:"detected"` // condiciones encontradas (stock bajo + vencimientos)
	Inserted int `json:"inserted"` // notificaciones nuevas creadas
	Skipped  int `json:"skipped"`  // omitidas por deduplicación
}
