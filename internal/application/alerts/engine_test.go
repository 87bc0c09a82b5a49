package alerts_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/memory"
	"github.com/tu-usuario/distrifarma-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeMailer registra los envíos y puede simular fallos de SMTP.
type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(subject, body string) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, subject+" | "+body)
	return nil
}

// seedStore crea un producto con nivel de reorden 100 y dos lotes (5+3=8),
// claramente por debajo del umbral, más un lote que vence en 10 días.
func seedStore() *memory.Store {
	s := memory.NewStore()
	s.Products["prod-1"] = &entity.Product{
		ID:           "prod-1",
		Name:         "Ibuprofeno 400mg",
		ReorderLevel: 100,
	}
	s.Batches["batch-1"] = &entity.Batch{
		ID: "batch-1", ProductID: "prod-1", BatchNumber: "L-A",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, 10),
	}
	s.Batches["batch-2"] = &entity.Batch{
		ID: "batch-2", ProductID: "prod-1", BatchNumber: "L-B",
		CurrentStock: 3, ExpiryDate: time.Now().AddDate(2, 0, 0),
	}
	return s
}

func newEngine(s *memory.Store, mailer alerts.Mailer, appEnv string) *alerts.Engine {
	return alerts.NewEngine(
		memory.NewProductRepository(s),
		memory.NewBatchRepository(s),
		memory.NewNotificationRepository(s),
		mailer,
		appEnv,
		logger.Nop(),
	)
}

func countByType(s *memory.Store, ntype string) int {
	var n int
	for _, notif := range s.Notifications {
		if notif.Type == ntype {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RunScan — detección y deduplicación
// ──────────────────────────────────────────────────────────────────────────────

// El producto con stock total 8 y reorden 100 genera UNA alerta LOW_STOCK
// (una por producto, no por lote), y el lote que vence en 10 días una EXPIRY.
func TestRunScan_DetectaStockBajoYVencimiento(t *testing.T) {
	s := seedStore()
	engine := newEngine(s, nil, "development")

	summary, err := engine.RunScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Detected)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 0, summary.Skipped)

	assert.Equal(t, 1, countByType(s, entity.NotificationTypeLowStock),
		"una sola alerta de stock bajo por producto")
	assert.Equal(t, 1, countByType(s, entity.NotificationTypeExpiry))

	expected := "Stock bajo: Ibuprofeno 400mg tiene 8 unidades (nivel de reorden 100)"
	var found bool
	for _, n := range s.Notifications {
		if n.Message == expected {
			found = true
		}
	}
	assert.True(t, found, "el mensaje debe incluir producto, stock total y umbral")
}

// Un segundo escaneo con la condición vigente no duplica: la notificación
// sin leer actúa como dedup.
func TestRunScan_NoDuplicaMientrasSigaSinLeer(t *testing.T) {
	s := seedStore()
	engine := newEngine(s, nil, "development")

	_, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	summary, err := engine.RunScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Detected)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, s.Notifications, 2, "el total de notificaciones no debe crecer")
}

// Tras marcar como leída, la condición que persiste se vuelve a levantar
// como una fila nueva en el siguiente escaneo.
func TestRunScan_CondicionPersistenteSeRelevantaTrasLeer(t *testing.T) {
	s := seedStore()
	engine := newEngine(s, nil, "development")

	_, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Notifications, 2)

	for _, n := range s.Notifications {
		require.NoError(t, engine.MarkRead(context.Background(), n.ID))
	}

	summary, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted, "las condiciones siguen vigentes y deben reaparecer")
	assert.Len(t, s.Notifications, 4)
}

// El lote que vence fuera de la ventana de 30 días no genera alerta.
func TestRunScan_VencimientoFueraDeVentana(t *testing.T) {
	s := memory.NewStore()
	s.Products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Loratadina", ReorderLevel: 0}
	s.Batches["batch-1"] = &entity.Batch{
		ID: "batch-1", ProductID: "prod-1", BatchNumber: "L-C",
		CurrentStock: 50, ExpiryDate: time.Now().AddDate(0, 6, 0),
	}
	engine := newEngine(s, nil, "development")

	summary, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, countByType(s, entity.NotificationTypeExpiry))
	assert.Equal(t, 0, summary.Detected, "stock 50 > reorden 0 y vencimiento lejano: nada que alertar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests entrega por correo
// ──────────────────────────────────────────────────────────────────────────────

// En producción cada notificación nueva se entrega por correo.
func TestRunScan_EnviaCorreoEnProduccion(t *testing.T) {
	s := seedStore()
	mailer := &fakeMailer{}
	engine := newEngine(s, mailer, "production")

	_, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 2)
}

// Fuera de producción no se envía nada aunque haya mailer configurado.
func TestRunScan_NoEnviaCorreoEnDesarrollo(t *testing.T) {
	s := seedStore()
	mailer := &fakeMailer{}
	engine := newEngine(s, mailer, "development")

	_, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

// La entrega es best-effort: un SMTP caído no aborta el escaneo y las
// notificaciones quedan persistidas igual.
func TestRunScan_FalloDeCorreoNoAbortaElEscaneo(t *testing.T) {
	s := seedStore()
	mailer := &fakeMailer{fail: true}
	engine := newEngine(s, mailer, "production")

	summary, err := engine.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
	assert.Len(t, s.Notifications, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListNotifications / MarkRead
// ──────────────────────────────────────────────────────────────────────────────

func TestListNotifications_MasRecientesPrimeroConLimite(t *testing.T) {
	s := memory.NewStore()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		s.Notifications = append(s.Notifications, &entity.Notification{
			ID:        fmt.Sprintf("n-%d", i),
			Type:      entity.NotificationTypeLowStock,
			Message:   fmt.Sprintf("mensaje %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	engine := newEngine(s, nil, "development")

	out, err := engine.ListNotifications(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "n-4", out[0].ID, "la más reciente va primero")
	assert.Equal(t, "n-2", out[2].ID)
}

func TestMarkRead_EsIdempotente(t *testing.T) {
	s := memory.NewStore()
	s.Notifications = append(s.Notifications, &entity.Notification{
		ID: "n-1", Type: entity.NotificationTypeExpiry, Message: "m", CreatedAt: time.Now(),
	})
	engine := newEngine(s, nil, "development")

	require.NoError(t, engine.MarkRead(context.Background(), "n-1"))
	require.NoError(t, engine.MarkRead(context.Background(), "n-1"),
		"marcar dos veces debe ser un no-op exitoso")
	assert.True(t, s.Notifications[0].Read)
}

func TestMarkRead_Inexistente(t *testing.T) {
	s := memory.NewStore()
	engine := newEngine(s, nil, "development")

	err := engine.MarkRead(context.Background(), "n-no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
