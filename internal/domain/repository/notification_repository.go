package repository

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ExistsUnread verifica si hay una notificación sin leer con el mismo (type, message).
	ExistsUnread(ctx context.Context, ntype, message string) (bool, error)
	// ListRecent devuelve las más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.Notification, error)
	// MarkRead marca como leída; devuelve false si el ID no existe.
	// Marcar una ya leída vuelve a afectar la fila (no-op idempotente).
	MarkRead(ctx context.Context, id string) (bool, error)
}
