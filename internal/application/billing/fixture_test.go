package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// fixture empresa + punto de venta sobre el almacenamiento en memoria.
type fixture struct {
	t          *testing.T
	ctx        context.Context
	store      *memory.Store
	company    *entity.Company
	pos        *entity.PointOfSale
	mapper     *billing.InvoiceTypeMapper
	classifier *billing.SaleClassifier
}

func newFixture(t *testing.T, companyCondition string) *fixture {
	return newFixtureWithTable(t, companyCondition, nil)
}

func newFixtureWithTable(t *testing.T, companyCondition string, table *afip.InvoiceTypeTable) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         "Ferretería del Sur SRL",
		CUIT:         "30-71432198-2",
		IVACondition: companyCondition,
		Status:       "active",
	}
	require.NoError(t, store.Companies().Create(ctx, company))

	pos := &entity.PointOfSale{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Number:    3,
		Name:      "Mostrador",
		Active:    true,
	}
	require.NoError(t, store.PointsOfSale().Create(ctx, pos))

	mapper := billing.NewInvoiceTypeMapper(table)
	classifier := billing.NewSaleClassifier(
		store.Companies(),
		store.Customers(),
		mapper,
		billing.NewSequenceResolver(store.Sequences()),
		nil,
	)
	return &fixture{
		t:          t,
		ctx:        ctx,
		store:      store,
		company:    company,
		pos:        pos,
		mapper:     mapper,
		classifier: classifier,
	}
}

func (f *fixture) addSequence(code, description string) *entity.PosSequence {
	f.t.Helper()
	seq := &entity.PosSequence{
		ID:          uuid.New().String(),
		PosID:       f.pos.ID,
		InvoiceType: code,
		Description: description,
	}
	require.NoError(f.t, f.store.Sequences().Create(f.ctx, seq))
	return seq
}

func (f *fixture) addCustomer(condition, vat, foreign string) *entity.Customer {
	f.t.Helper()
	c := &entity.Customer{
		ID:               uuid.New().String(),
		CompanyID:        f.company.ID,
		Name:             "Cliente " + condition,
		IVACondition:     condition,
		VATNumber:        vat,
		ForeignVATNumber: foreign,
	}
	require.NoError(f.t, f.store.Customers().Create(f.ctx, c))
	return c
}

func (f *fixture) addProduct(sku, productType string, price, taxRate string) *entity.Product {
	f.t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: f.company.ID,
		SKU:       sku,
		Name:      "Producto " + sku,
		Type:      productType,
		Price:     decimal.RequireFromString(price),
		TaxRate:   decimal.RequireFromString(taxRate),
	}
	require.NoError(f.t, f.store.Products().Create(f.ctx, p))
	return p
}

// newSale venta en borrador (no persistida) con cliente y punto de venta del fixture.
func (f *fixture) newSale(customerID string) *entity.Sale {
	return &entity.Sale{
		ID:         uuid.New().String(),
		CompanyID:  f.company.ID,
		CustomerID: customerID,
		PosID:      f.pos.ID,
		State:      entity.SaleStateDraft,
		Date:       time.Now(),
		CreatedAt:  time.Now(),
	}
}

// confirmedSale persiste una venta confirmada con una línea por producto (cantidad 1).
// Un producto nil agrega una línea de texto.
func (f *fixture) confirmedSale(customerID, sequenceID, letter string, products ...*entity.Product) *entity.Sale {
	f.t.Helper()
	sale := f.newSale(customerID)
	sale.State = entity.SaleStateConfirmed
	sale.PosSequenceID = sequenceID
	sale.InvoiceLetter = letter
	for i, p := range products {
		line := &entity.SaleLine{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			Description: "nota",
			Quantity:    decimal.NewFromInt(1),
			Sequence:    i + 1,
		}
		if p != nil {
			line.ProductID = p.ID
			line.Description = p.Name
			line.UnitPrice = p.Price
		}
		sale.Lines = append(sale.Lines, line)
	}
	require.NoError(f.t, f.store.Sales().Create(f.ctx, sale))
	return sale
}
