package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
	"github.com/tu-usuario/distrifarma-api/pkg/logger"
)

// ExpiryWindowDays ventana de detección de vencimientos del escaneo.
const ExpiryWindowDays = 30

// Engine detecta stock bajo y vencimientos próximos y emite notificaciones
// deduplicadas. Cada pasada es sin estado: solo cuentan las filas persistidas.
// Lo invocan el scheduler (cada hora) y la acción manual check-now, por el
// mismo camino, así que nunca se duplica una condición aún sin leer.
type Engine struct {
	productRepo      repository.ProductRepository
	batchRepo        repository.BatchRepository
	notificationRepo repository.NotificationRepository
	mailer           Mailer // puede ser nil (sin canal de correo)
	appEnv           string // solo "production" envía correos
	log              *logger.Logger
}

// NewEngine construye el motor de alertas.
func NewEngine(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	notificationRepo repository.NotificationRepository,
	mailer Mailer,
	appEnv string,
	log *logger.Logger,
) *Engine {
	return &Engine{
		productRepo:      productRepo,
		batchRepo:        batchRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		appEnv:           appEnv,
		log:              log,
	}
}

// ScanSummary resultado de una pasada del motor.
type ScanSummary struct {
	Detected int
	Inserted int
	Skipped  int
}

// RunScan ejecuta una pasada completa: stock bajo, vencimientos, dedup e
// inserción, y entrega best-effort por correo de las notificaciones nuevas.
// Un fallo de entrega no aborta la detección ni la inserción de las siguientes.
func (e *Engine) RunScan(ctx context.Context) (*ScanSummary, error) {
	summary := &ScanSummary{}

	lowStock, err := e.productRepo.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("detectar stock bajo: %w", err)
	}
	for _, row := range lowStock {
		msg := fmt.Sprintf("Stock bajo: %s tiene %d unidades (nivel de reorden %d)",
			row.Product.Name, row.TotalStock, row.Product.ReorderLevel)
		e.raise(ctx, entity.NotificationTypeLowStock, msg, summary)
	}

	now := time.Now()
	expiring, err := e.batchRepo.ListExpiring(ctx, now, now.AddDate(0, 0, ExpiryWindowDays))
	if err != nil {
		return nil, fmt.Errorf("detectar vencimientos: %w", err)
	}
	for _, row := range expiring {
		msg := fmt.Sprintf("Lote %s de %s vence el %s",
			row.Batch.BatchNumber, row.Product.Name, row.Batch.ExpiryDate.Format("2006-01-02"))
		e.raise(ctx, entity.NotificationTypeExpiry, msg, summary)
	}

	e.log.Info().
		Int("detected", summary.Detected).
		Int("inserted", summary.Inserted).
		Int("skipped", summary.Skipped).
		Msg("escaneo de alertas completado")
	return summary, nil
}

// raise inserta la notificación si no hay una gemela sin leer y la entrega
// por correo. Errores de persistencia de una condición se registran y no
// interrumpen el resto del escaneo.
func (e *Engine) raise(ctx context.Context, ntype, message string, summary *ScanSummary) {
	summary.Detected++

	exists, err := e.notificationRepo.ExistsUnread(ctx, ntype, message)
	if err != nil {
		e.log.Error().Err(err).Str("type", ntype).Msg("verificar duplicado de notificación")
		return
	}
	if exists {
		summary.Skipped++
		return
	}

	n := &entity.Notification{
		ID:        uuid.New().String(),
		Type:      ntype,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := e.notificationRepo.Create(ctx, n); err != nil {
		e.log.Error().Err(err).Str("type", ntype).Msg("insertar notificación")
		return
	}
	summary.Inserted++
	e.deliver(n)
}

// deliver reenvía la notificación por correo solo en producción.
// La inserción es el hecho durable; la entrega es best-effort.
func (e *Engine) deliver(n *entity.Notification) {
	if e.mailer == nil || e.appEnv != "production" {
		return
	}
	subject := "Alerta de inventario: " + n.Type
	if err := e.mailer.Send(subject, n.Message); err != nil {
		e.log.Warn().Err(err).Str("type", n.Type).Msg("entrega de correo fallida")
	}
}

// ListNotifications devuelve las notificaciones más recientes primero.
// limit <= 0 usa el valor de referencia de 20.
func (e *Engine) ListNotifications(ctx context.Context, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := e.notificationRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación como leída. Marcar una ya leída es un
// no-op exitoso; tras leerla, un escaneo posterior puede volver a levantar
// la misma condición como fila nueva.
func (e *Engine) MarkRead(ctx context.Context, id string) error {
	found, err := e.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
