package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.Invoice, error)
}
