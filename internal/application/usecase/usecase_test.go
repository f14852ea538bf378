package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

func TestCompanyUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.NewStore().Companies())

	created, err := uc.Create(ctx, dto.CreateCompanyRequest{
		Name: "Sur SRL", CUIT: "30-71432198-2", IVACondition: afip.IVAResponsableInscripto,
	})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Copia", CUIT: "30-71432198-2", IVACondition: afip.IVAMonotributo})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Mal", CUIT: "30-71432198-3", IVACondition: afip.IVAMonotributo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "CF", CUIT: "20-12345678-6", IVACondition: afip.IVAConsumidorFinal})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.UpdateIVACondition(ctx, created.ID, afip.IVAMonotributo)
	require.NoError(t, err)
	assert.Equal(t, afip.IVAMonotributo, updated.IVACondition)

	_, err = uc.UpdateIVACondition(ctx, created.ID, afip.IVAClienteExterior)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	created, err := uc.Create(ctx, "c1", dto.CreateProductRequest{
		SKU: "SRV-1", Name: "Instalación", Type: afip.ProductTypeService,
		Price: decimal.NewFromInt(5000), TaxRate: decimal.RequireFromString("10.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, afip.ProductTypeService, created.Type)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "SRV-1", Name: "Otro", Type: afip.ProductTypeGoods, TaxRate: decimal.NewFromInt(21)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "X", Name: "IVA 19", Type: afip.ProductTypeGoods, TaxRate: decimal.NewFromInt(19)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "Y", Name: "Sin tipo", Type: "consumible", TaxRate: decimal.NewFromInt(21)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	goods := afip.ProductTypeGoods
	rate := decimal.RequireFromString("0.21")
	updated, err := uc.Update(ctx, "c1", created.ID, dto.UpdateProductRequest{Type: &goods, TaxRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, afip.ProductTypeGoods, updated.Type)
	assert.True(t, rate.Equal(updated.TaxRate))

	_, err = uc.GetByID(ctx, "c2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPointOfSaleUseCase_Sequences(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewPointOfSaleUseCase(store.PointsOfSale(), store.Sequences(), billing.NewInvoiceTypeMapper(nil))

	pos, err := uc.Create(ctx, "c1", dto.CreatePointOfSaleRequest{Number: 4, Name: "Web"})
	require.NoError(t, err)
	assert.True(t, pos.Active)

	_, err = uc.Create(ctx, "c1", dto.CreatePointOfSaleRequest{Number: 4, Name: "Duplicado"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	seqB, err := uc.AddSequence(ctx, "c1", pos.ID, dto.CreatePosSequenceRequest{Letter: afip.LetterB})
	require.NoError(t, err)
	assert.Equal(t, "6", seqB.InvoiceType)
	assert.Equal(t, "06-Factura B", seqB.Description)

	seqA, err := uc.AddSequence(ctx, "c1", pos.ID, dto.CreatePosSequenceRequest{InvoiceType: "001"})
	require.NoError(t, err)
	assert.Equal(t, "1", seqA.InvoiceType)
	assert.Equal(t, "01-Factura A", seqA.Description)

	_, err = uc.AddSequence(ctx, "c1", pos.ID, dto.CreatePosSequenceRequest{Letter: afip.LetterB})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddSequence(ctx, "c1", pos.ID, dto.CreatePosSequenceRequest{InvoiceType: "999"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddSequence(ctx, "c1", pos.ID, dto.CreatePosSequenceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddSequence(ctx, "c2", pos.ID, dto.CreatePosSequenceRequest{Letter: afip.LetterC})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.GetByID(ctx, "c1", pos.ID)
	require.NoError(t, err)
	assert.Len(t, got.Sequences, 2)
}
