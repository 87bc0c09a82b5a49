package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
)

// AlertHandler expone las notificaciones del motor de alertas (protegido).
type AlertHandler struct {
	engine *alerts.Engine
}

// NewAlertHandler construye el handler.
func NewAlertHandler(engine *alerts.Engine) *AlertHandler {
	return &AlertHandler{engine: engine}
}

// List godoc
// @Summary      Listar notificaciones recientes
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {array}  dto.NotificationResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}
	out, err := h.engine.ListNotifications(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Description  Idempotente: marcar una notificación ya leída responde 200 sin cambio.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  nil
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.engine.MarkRead(c.UserContext(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}

// CheckNow godoc
// @Summary      Ejecutar el escaneo de alertas ahora
// @Description  Corre una pasada del motor fuera del horario programado. Solo admin.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ScanSummaryResponse
// @Router       /api/alerts/check-now [post]
func (h *AlertHandler) CheckNow(c *fiber.Ctx) error {
	summary, err := h.engine.RunScan(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ScanSummaryResponse{
		Detected: summary.Detected,
		Inserted: summary.Inserted,
		Skipped:  summary.Skipped,
	})
}
