package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas ordenadas por Sequence.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// Update actualiza cabecera: cliente, punto de venta y clasificación. No toca el estado.
	Update(ctx context.Context, sale *entity.Sale) error
	// TransitionState pasa la venta de from a to. Si la venta no está en from devuelve
	// domain.ErrConflict y no modifica nada.
	TransitionState(ctx context.Context, id, from, to string, at time.Time) error
	AddLine(ctx context.Context, line *entity.SaleLine) error
	DeleteLine(ctx context.Context, saleID, lineID string) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
}
