package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Es también la consulta de parte que usa la clasificación AFIP (condición IVA, CUIT, id extranjero).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndVATNumber(ctx context.Context, companyID, vatNumber string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
