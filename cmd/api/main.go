// @title        Dispensary API
// @version      1.0
// @description  Multi-tenant cannabis retail platform: catalog, aggregated inventory, tiered pricing, POS and register sessions.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
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

	_ "github.com/greenrail/dispensary-api/docs"
	"github.com/greenrail/dispensary-api/internal/application/auth"
	"github.com/greenrail/dispensary-api/internal/application/inventory"
	"github.com/greenrail/dispensary-api/internal/application/pos"
	"github.com/greenrail/dispensary-api/internal/application/storefront"
	"github.com/greenrail/dispensary-api/internal/application/usecase"
	infraexport "github.com/greenrail/dispensary-api/internal/infrastructure/export"
	infrapdf "github.com/greenrail/dispensary-api/internal/infrastructure/pdf"
	"github.com/greenrail/dispensary-api/internal/infrastructure/postgres"
	httpRouter "github.com/greenrail/dispensary-api/internal/interfaces/http"
	"github.com/greenrail/dispensary-api/pkg/config"
	"github.com/greenrail/dispensary-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	vendorRepo := postgres.NewVendorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	sessionRepo := postgres.NewCashSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	inventoryUC := inventory.NewUseCase(inventoryRepo, productRepo, movementRepo)
	mutationUC := inventory.NewMutationUseCase(txRunner, productRepo, locationRepo)
	manifestBuilder := infraexport.NewManifestBuilder()
	exportUC := inventory.NewExportUseCase(inventoryUC, vendorRepo, manifestBuilder)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	saleUC := pos.NewSaleUseCase(txRunner, productRepo, locationRepo, vendorRepo, saleRepo, receiptGenerator)
	sessionUC := pos.NewCashSessionUseCase(sessionRepo, locationRepo)

	storefrontUC := storefront.NewUseCase(vendorRepo, inventoryUC)

	authUC := auth.NewAuthUseCase(userRepo, vendorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dispensary API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		VendorUC:      vendorUC,
		LocationUC:    locationUC,
		ProductUC:     productUC,
		InventoryUC:   inventoryUC,
		MutationUC:    mutationUC,
		ExportUC:      exportUC,
		SaleUC:        saleUC,
		CashSessionUC: sessionUC,
		StorefrontUC:  storefrontUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
