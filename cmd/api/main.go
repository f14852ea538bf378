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

	"github.com/jhoicas/ventas-pos-ar/internal/application/auth"
	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/sales"
	"github.com/jhoicas/ventas-pos-ar/internal/application/usecase"
	infrapdf "github.com/jhoicas/ventas-pos-ar/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/wsfe"
	httpRouter "github.com/jhoicas/ventas-pos-ar/internal/interfaces/http"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
	"github.com/jhoicas/ventas-pos-ar/pkg/config"
	"github.com/jhoicas/ventas-pos-ar/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("afip_env", cfg.AFIP.Environment).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	table, err := loadInvoiceTypes(cfg.AFIP.InvoiceTypesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.AFIP.InvoiceTypesFile).Msg("tabla de comprobantes AFIP")
	}
	log.Info().Int("entries", table.Len()).Str("file", cfg.AFIP.InvoiceTypesFile).Msg("tabla de comprobantes AFIP cargada")
	mapper := billing.NewInvoiceTypeMapper(table)

	// Clasificación: letra -> tipo AFIP -> secuencia del punto de venta
	classifier := billing.NewSaleClassifier(
		repos.companies, repos.customers, mapper,
		billing.NewSequenceResolver(repos.sequences), log,
	)
	saleUC := sales.NewSaleUseCase(
		repos.sales, repos.customers, repos.products, repos.pointsOfSale, repos.sequences,
		classifier, cfg.AFIP.DefaultPosID, log,
	)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		repos.txRunner, repos.sales, repos.products, repos.pointsOfSale, repos.sequences, repos.invoices, log,
	)

	// PDF y request WSFEv1 del comprobante
	pdfUC := billing.NewPDFUseCase(
		repos.invoices, repos.companies, repos.customers, mapper, infrapdf.NewMarotoPDFGenerator(),
	)
	wsfeUC := billing.NewWSFEUseCase(
		repos.invoices, repos.companies, repos.customers, mapper, wsfe.NewRequestBuilder(), cfg.AFIP.Environment,
	)

	authUC := auth.NewAuthUseCase(repos.users, repos.companies, auth.JWTConfig{
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
	if cfg.HTTP.DocsPath != "" {
		if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsPath,
				Path:     "docs",
				Title:    "Ventas POS AR API",
			}))
		} else {
			log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(repos.users),
		CompanyUC:  usecase.NewCompanyUseCase(repos.companies),
		ProductUC:  usecase.NewProductUseCase(repos.products),
		PosUC:      usecase.NewPointOfSaleUseCase(repos.pointsOfSale, repos.sequences, mapper),
		CustomerUC: billing.NewCustomerUseCase(repos.customers),
		SaleUC:     saleUC,
		InvoiceUC:  createInvoiceUC,
		PDFUC:      pdfUC,
		WSFEUC:     wsfeUC,
		JWTSecret:  cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// loadInvoiceTypes lee la tabla de comprobantes desde CSV; sin archivo usa la incorporada.
func loadInvoiceTypes(path string) (*afip.InvoiceTypeTable, error) {
	if path == "" {
		return afip.DefaultInvoiceTypeTable(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return afip.LoadInvoiceTypeTable(f)
}
