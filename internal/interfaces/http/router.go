package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenrail/dispensary-api/internal/application/auth"
	"github.com/greenrail/dispensary-api/internal/application/inventory"
	"github.com/greenrail/dispensary-api/internal/application/pos"
	"github.com/greenrail/dispensary-api/internal/application/storefront"
	"github.com/greenrail/dispensary-api/internal/application/usecase"
	"github.com/greenrail/dispensary-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	VendorUC      *usecase.VendorUseCase
	LocationUC    *usecase.LocationUseCase
	ProductUC     *usecase.ProductUseCase
	InventoryUC   *inventory.UseCase
	MutationUC    *inventory.MutationUseCase
	ExportUC      *inventory.ExportUseCase
	SaleUC        *pos.SaleUseCase
	CashSessionUC *pos.CashSessionUseCase
	StorefrontUC  *storefront.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Storefront (public menu by slug)
	storefrontHandler := NewStorefrontHandler(deps.StorefrontUC)
	api.Get("/storefront/:slug/products", storefrontHandler.Menu)

	// Vendors (public onboarding for now; lock down once self-service closes)
	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Locations (protected, managers)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", managers, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", managers, locationHandler.Update)
	locations.Delete("/:id", managers, locationHandler.Delete)

	// Products (protected; catalog writes for managers)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", managers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)
	products.Get("/:id/tiers/select", productHandler.SelectTier)

	// Inventory (protected; mutations for managers)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.MutationUC, deps.ExportUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Post("/adjustments", managers, inventoryHandler.Adjust)
	invGroup.Post("/transfers", managers, inventoryHandler.Transfer)
	invGroup.Post("/import", managers, inventoryHandler.Import)
	invGroup.Get("/export", managers, inventoryHandler.Export)

	// POS (protected; any authenticated role can sell)
	posHandler := NewPOSHandler(deps.SaleUC, deps.CashSessionUC)
	sales := protected.Group("/sales")
	sales.Post("/", posHandler.CreateSale)
	sales.Get("/:id/receipt", posHandler.Receipt)

	sessions := protected.Group("/cash-sessions")
	sessions.Post("/", posHandler.OpenSession)
	sessions.Get("/:id", posHandler.GetSession)
	sessions.Post("/:id/close", posHandler.CloseSession)
}
