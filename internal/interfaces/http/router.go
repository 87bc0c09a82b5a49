package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/internal/application/auth"
	"github.com/tu-usuario/distrifarma-api/internal/application/catalog"
	"github.com/tu-usuario/distrifarma-api/internal/application/inventory"
	"github.com/tu-usuario/distrifarma-api/internal/application/purchase"
	"github.com/tu-usuario/distrifarma-api/internal/application/stock"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.CatalogUseCase
	QueryUC     *inventory.QueryUseCase
	PurchaseUC  *purchase.IntakeUseCase
	StockUC     *stock.LedgerUseCase
	AlertEngine *alerts.Engine
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; alta solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.QueryUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Suppliers (protegido; alta admin o comprador)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.CatalogUC)
	suppliers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Inventory queries (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.QueryUC)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/expiring", inventoryHandler.Expiring)

	// Purchases (protegido; registro admin o comprador)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Stock corrections (protegido; admin o bodeguero)
	stockGroup := protected.Group("/stock", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Patch("/:batchId", stockHandler.Correct)

	// Alerts (protegido; escaneo manual solo admin)
	alertsGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertEngine)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Patch("/:id/read", alertHandler.MarkRead)
	alertsGroup.Post("/check-now", RequireRole(entity.RoleAdmin), alertHandler.CheckNow)
}
