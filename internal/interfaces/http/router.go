package http

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers agrupa los handlers que el router necesita.
type Handlers struct {
	Auth      *AuthHandler
	Product   *ProductHandler
	Warehouse *WarehouseHandler
	Inventory *InventoryHandler
	Report    *ReportHandler
}

// SetupRoutes registra todas las rutas de la API. Auth es público; el resto va
// detrás del middleware JWT.
func SetupRoutes(app *fiber.App, h Handlers, jwtSecret string) {
	api := app.Group("/api")

	// Rutas públicas
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	// Rutas protegidas
	protected := api.Group("", AuthMiddleware(jwtSecret))

	products := protected.Group("/products")
	products.Post("/", h.Product.Create)
	products.Get("/", h.Product.List)
	products.Get("/:id", h.Product.GetByID)
	products.Get("/:id/stock", h.Inventory.GetProductStock)
	products.Get("/:id/movements", h.Inventory.ListProductMovements)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", h.Warehouse.Create)
	warehouses.Get("/", h.Warehouse.List)
	warehouses.Get("/:id", h.Warehouse.GetByID)
	warehouses.Get("/:id/products/:productId/stock", h.Inventory.GetWarehouseProductStock)

	inv := protected.Group("/inventory")
	inv.Post("/movements", h.Inventory.RegisterMovement)
	inv.Post("/transfers", h.Inventory.Transfer)

	protected.Get("/alerts", h.Inventory.ListLowStockAlerts)
	protected.Get("/reports/low-stock.pdf", h.Report.LowStockPDF)
}
