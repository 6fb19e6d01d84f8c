package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/catalog"
	"github.com/jhoicas/Gestion-api/internal/application/contacts"
	"github.com/jhoicas/Gestion-api/internal/application/movements"
	"github.com/jhoicas/Gestion-api/internal/application/purchases"
	"github.com/jhoicas/Gestion-api/internal/application/quotations"
	"github.com/jhoicas/Gestion-api/internal/application/reports"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	PurchaseUC  *purchases.UseCase
	SaleUC      *sales.UseCase
	MovementUC  *movements.UseCase
	QuotationUC *quotations.UseCase
	ContactUC   *contacts.UseCase
	ReportUC    *reports.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Vitrina pública (sin autenticación)
	public := app.Group("/public")
	publicHandler := NewPublicHandler(deps.CatalogUC, deps.QuotationUC)
	public.Get("/products", publicHandler.ListProducts)
	public.Post("/quotations", publicHandler.SubmitQuotation)

	api := app.Group("/api")

	// Auth: login público, registro solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Compras
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Put("/:id", purchaseHandler.Update)
	purchasesGroup.Delete("/:id", purchaseHandler.Delete)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Patch("/:id/status", saleHandler.UpdateStatus)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Movimientos internos
	movementsGroup := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movementsGroup.Post("/", movementHandler.Create)
	movementsGroup.Get("/", movementHandler.List)
	movementsGroup.Get("/:id", movementHandler.GetByID)
	movementsGroup.Delete("/:id", movementHandler.Delete)

	// Cotizaciones (back-office)
	quotationsGroup := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotationsGroup.Post("/", quotationHandler.Create)
	quotationsGroup.Get("/", quotationHandler.List)
	quotationsGroup.Get("/:id", quotationHandler.GetByID)
	quotationsGroup.Patch("/:id/status", quotationHandler.UpdateStatus)

	// Clientes y proveedores
	contactHandler := NewContactHandler(deps.ContactUC)
	clientsGroup := protected.Group("/clients")
	clientsGroup.Post("/", contactHandler.CreateClient)
	clientsGroup.Get("/", contactHandler.ListClients)
	clientsGroup.Get("/:id", contactHandler.GetClient)
	clientsGroup.Put("/:id", contactHandler.UpdateClient)
	clientsGroup.Delete("/:id", contactHandler.DeleteClient)

	suppliersGroup := protected.Group("/suppliers")
	suppliersGroup.Post("/", contactHandler.CreateSupplier)
	suppliersGroup.Get("/", contactHandler.ListSuppliers)
	suppliersGroup.Get("/:id", contactHandler.GetSupplier)
	suppliersGroup.Put("/:id", contactHandler.UpdateSupplier)
	suppliersGroup.Delete("/:id", contactHandler.DeleteSupplier)

	// Reportes (solo admin)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/cash-flow", reportHandler.CashFlow)
	reportsGroup.Get("/valuation", reportHandler.InventoryValuation)
}
