package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/application/inventory"
)

// InventoryHandler expone las consultas operativas del inventario (protegido).
type InventoryHandler struct {
	queryUC *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC}
}

// LowStock godoc
// @Summary      Productos bajo su nivel de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.queryUC.LowStockProducts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes que vencen dentro de la ventana indicada
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días de la ventana"  default(30)
// @Success      200   {array}  dto.ExpiringBatchResponse
// @Router       /api/inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", inventory.DefaultExpiryWindowDays)
	out, err := h.queryUC.ExpiringBatches(c.UserContext(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
