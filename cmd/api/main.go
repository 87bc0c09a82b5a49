package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/internal/application/auth"
	"github.com/tu-usuario/distrifarma-api/internal/application/catalog"
	"github.com/tu-usuario/distrifarma-api/internal/application/inventory"
	"github.com/tu-usuario/distrifarma-api/internal/application/purchase"
	"github.com/tu-usuario/distrifarma-api/internal/application/stock"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/mail"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/scheduler"
	httpRouter "github.com/tu-usuario/distrifarma-api/internal/interfaces/http"
	"github.com/tu-usuario/distrifarma-api/pkg/config"
	"github.com/tu-usuario/distrifarma-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(productRepo, supplierRepo)
	queryUC := inventory.NewQueryUseCase(productRepo, batchRepo)
	purchaseUC := purchase.NewIntakeUseCase(txRunner, purchaseRepo)
	stockUC := stock.NewLedgerUseCase(txRunner, productRepo)

	// Canal de correo para alertas: deshabilitado si SMTP_HOST está vacío.
	var mailer alerts.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}
	alertEngine := alerts.NewEngine(productRepo, batchRepo, notificationRepo, mailer, cfg.App.Env, log)

	// Escaneo periódico de stock bajo y vencimientos próximos.
	schedCtx, schedCancel := context.WithCancel(ctx)
	defer schedCancel()
	alertScheduler := scheduler.NewAlertScheduler(
		alertEngine,
		time.Duration(cfg.Alerts.ScanIntervalMinutes)*time.Minute,
		log,
	)
	alertScheduler.Start(schedCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DistriFarma API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		QueryUC:     queryUC,
		PurchaseUC:  purchaseUC,
		StockUC:     stockUC,
		AlertEngine: alertEngine,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	alertScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
