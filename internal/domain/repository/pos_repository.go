package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
)

// PointOfSaleRepository define el puerto de persistencia para puntos de venta.
type PointOfSaleRepository interface {
	Create(ctx context.Context, pos *entity.PointOfSale) error
	GetByID(ctx context.Context, id string) (*entity.PointOfSale, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PointOfSale, error)
}

// PosSequenceRepository define el puerto de persistencia para secuencias de numeración.
type PosSequenceRepository interface {
	Create(ctx context.Context, seq *entity.PosSequence) error
	GetByID(ctx context.Context, id string) (*entity.PosSequence, error)

	// FindByPosAndInvoiceType devuelve todas las secuencias del punto de venta para el tipo
	// de comprobante. Con configuración correcta hay cero o una; el caller valida la cantidad.
	FindByPosAndInvoiceType(ctx context.Context, posID, invoiceType string) ([]*entity.PosSequence, error)

	ListByPos(ctx context.Context, posID string) ([]*entity.PosSequence, error)
}
