package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-ar/internal/application/auth"
	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/sales"
	"github.com/jhoicas/ventas-pos-ar/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CompanyUC  *usecase.CompanyUseCase
	ProductUC  *usecase.ProductUseCase
	PosUC      *usecase.PointOfSaleUseCase
	CustomerUC *billing.CustomerUseCase
	SaleUC     *sales.SaleUseCase
	InvoiceUC  *billing.CreateInvoiceUseCase
	PDFUC      *billing.PDFUseCase
	WSFEUC     *billing.WSFEUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público: se necesita antes del primer usuario)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)

	companies := protected.Group("/companies")
	companies.Get("/", adminOnly, companyHandler.List)
	companies.Get("/:id", anyRole, companyHandler.GetByID)
	companies.Put("/:id/iva-condition", adminOnly, companyHandler.UpdateIVACondition)

	// Products: lectura para todos, escritura admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Puntos de venta y secuencias (configuración fiscal: admin)
	pos := protected.Group("/pos")
	posHandler := NewPointOfSaleHandler(deps.PosUC)
	pos.Post("/", adminOnly, posHandler.Create)
	pos.Get("/", anyRole, posHandler.List)
	pos.Get("/:id", anyRole, posHandler.GetByID)
	pos.Post("/:id/sequences", adminOnly, posHandler.AddSequence)

	customers := protected.Group("/customers", anyRole)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	salesGroup := protected.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.InvoiceUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/lines", saleHandler.AddLine)
	salesGroup.Delete("/:id/lines/:lineId", saleHandler.RemoveLine)
	salesGroup.Put("/:id/party", saleHandler.ChangeParty)
	salesGroup.Put("/:id/pos", saleHandler.ChangePos)
	salesGroup.Post("/:id/confirm", saleHandler.Confirm)
	salesGroup.Post("/:id/invoice", saleHandler.CreateInvoice)

	invoices := protected.Group("/invoices", anyRole)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.WSFEUC)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/wsfe", invoiceHandler.WSFERequest)
}
