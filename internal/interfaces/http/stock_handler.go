package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/application/stock"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
)

// StockHandler maneja las correcciones manuales de stock (protegido, rol bodeguero).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Correct godoc
// @Summary      Corrección manual de stock de un lote
// @Description  Reemplaza la existencia del lote por la cantidad indicada y deja rastro del ajuste con su motivo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Param        body     body  dto.StockCorrectionRequest  true  "Cantidad nueva y motivo"
// @Success      200      {object}  dto.StockCorrectionResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stock/{batchId} [patch]
func (h *StockHandler) Correct(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "batchId es requerido"})
	}
	var in dto.StockCorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyCorrection(c.UserContext(), stock.CorrectionInput{
		BatchID:  batchID,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		UserID:   GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
