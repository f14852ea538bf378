package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

func TestCustomerUseCase_Create(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	uc := billing.NewCustomerUseCase(f.store.Customers())

	created, err := uc.Create(f.ctx, f.company.ID, dto.CreateCustomerRequest{
		Name:         "Juan Pérez",
		IVACondition: afip.IVAResponsableInscripto,
		VATNumber:    "20-12345678-6",
	})
	require.NoError(t, err)
	assert.Equal(t, "20-12345678-6", created.VATNumber)

	_, err = uc.Create(f.ctx, f.company.ID, dto.CreateCustomerRequest{Name: "Otro", VATNumber: "20-12345678-6"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(f.ctx, f.company.ID, dto.CreateCustomerRequest{Name: "CUIT mal", VATNumber: "20-12345678-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(f.ctx, f.company.ID, dto.CreateCustomerRequest{Name: "Condición", IVACondition: "gran_contribuyente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(f.ctx, f.company.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", got.Name)

	_, err = uc.GetByID(f.ctx, "otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(f.ctx, f.company.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
