package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/loyalty"
	"github.com/jhoicas/Inventario-pos/internal/application/purchasing"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/usecase"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SupplierUC *usecase.SupplierUseCase
	LoyaltyUC  *loyalty.LoyaltyUseCase
	SaleUC     *sales.SaleUseCase
	PurchaseUC *purchasing.PurchaseUseCase
	StockUC    *inventory.StockUseCase
	AlertUC    *inventory.AlertUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", warehouse, productHandler.Create)
	products.Put("/:id", warehouse, productHandler.Update)

	// Customers + fidelización
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.LoyaltyUC)
	customers.Post("/", sellers, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/loyalty", customerHandler.GetLoyalty)
	customers.Post("/:id/loyalty", sellers, customerHandler.EnrollLoyalty)
	customers.Delete("/:id/loyalty", sellers, customerHandler.DisableLoyalty)
	customers.Post("/:id/loyalty/points", sellers, customerHandler.AddPoints)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", warehouse, supplierHandler.Create)

	// Sales (admin, vendedor)
	salesGroup := protected.Group("/sales", sellers)
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Purchases (admin, bodeguero)
	purchases := protected.Group("/purchases", warehouse)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Post("/:id/receive", purchaseHandler.Receive)

	// Inventory
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.AlertUC)
	inv.Post("/adjustments", warehouse, inventoryHandler.Adjust)
	inv.Get("/movements", inventoryHandler.Movements)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/alerts/summary", inventoryHandler.AlertSummary)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func Health(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	}
}
