package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-pos-ar/pkg/config"
	"github.com/jhoicas/ventas-pos-ar/pkg/logger"
)

// repositories persistencia seleccionada por STORAGE_DRIVER.
type repositories struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	customers    repository.CustomerRepository
	products     repository.ProductRepository
	pointsOfSale repository.PointOfSaleRepository
	sequences    repository.PosSequenceRepository
	sales        repository.SaleRepository
	invoices     repository.InvoiceRepository
	txRunner     billing.BillingTxRunner
	close        func()
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			companies:    store.Companies(),
			users:        store.Users(),
			customers:    store.Customers(),
			products:     store.Products(),
			pointsOfSale: store.PointsOfSale(),
			sequences:    store.Sequences(),
			sales:        store.Sales(),
			invoices:     store.Invoices(),
			txRunner:     store,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
	}
	return &repositories{
		companies:    postgres.NewCompanyRepository(pool),
		users:        postgres.NewUserRepository(pool),
		customers:    postgres.NewCustomerRepository(pool),
		products:     postgres.NewProductRepository(pool),
		pointsOfSale: postgres.NewPointOfSaleRepository(pool),
		sequences:    postgres.NewPosSequenceRepository(pool),
		sales:        postgres.NewSaleRepository(pool),
		invoices:     postgres.NewInvoiceRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
