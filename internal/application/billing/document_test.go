package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// captureRenderer guarda el documento recibido.
type captureRenderer struct {
	doc *billing.InvoiceDocument
}

func (c *captureRenderer) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF-1.4"), nil
}

func (c *captureRenderer) BuildFECAESolicitar(doc *billing.InvoiceDocument) ([]byte, error) {
	c.doc = doc
	return []byte("<FECAESolicitar/>"), nil
}

func TestPDFUseCase_Download(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	seq := f.addSequence("6", "06-Factura B")
	customer := f.addCustomer(afip.IVAConsumidorFinal, "", "")
	service := f.addProduct("SRV-01", afip.ProductTypeService, "1000", "0.21")
	sale := f.confirmedSale(customer.ID, seq.ID, afip.LetterB, service)
	inv, err := newCreateInvoiceUseCase(f).CreateInvoice(f.ctx, f.company.ID, sale.ID)
	require.NoError(t, err)

	renderer := &captureRenderer{}
	uc := billing.NewPDFUseCase(f.store.Invoices(), f.store.Companies(), f.store.Customers(), f.mapper, renderer)

	out, filename, err := uc.DownloadInvoicePDF(f.ctx, f.company.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), out)
	assert.Equal(t, "comprobante_B_00003_00000000.pdf", filename)
	require.NotNil(t, renderer.doc)
	assert.Equal(t, "06-Factura B", renderer.doc.InvoiceTypeDesc)
	assert.Equal(t, customer.ID, renderer.doc.Customer.ID)
	assert.Equal(t, f.company.CUIT, renderer.doc.Company.CUIT)

	_, _, err = uc.DownloadInvoicePDF(f.ctx, "otra-empresa", inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, _, err = uc.DownloadInvoicePDF(f.ctx, f.company.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWSFEUseCase_BuildRequest(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	seq := f.addSequence("6", "06-Factura B")
	customer := f.addCustomer(afip.IVAConsumidorFinal, "", "")
	goods := f.addProduct("TOR-01", afip.ProductTypeGoods, "10", "0.21")
	uc := newCreateInvoiceUseCase(f)

	classified, err := uc.CreateInvoice(f.ctx, f.company.ID, f.confirmedSale(customer.ID, seq.ID, afip.LetterB, goods).ID)
	require.NoError(t, err)
	unclassified, err := uc.CreateInvoice(f.ctx, f.company.ID, f.confirmedSale(customer.ID, "", "", goods).ID)
	require.NoError(t, err)

	builder := &captureRenderer{}
	wsfe := billing.NewWSFEUseCase(f.store.Invoices(), f.store.Companies(), f.store.Customers(), f.mapper, builder, afip.EnvironmentHomologacion)

	out, err := wsfe.BuildRequest(f.ctx, f.company.ID, classified.ID)
	require.NoError(t, err)
	assert.Equal(t, "<FECAESolicitar/>", string(out))
	assert.Equal(t, afip.EnvironmentHomologacion, builder.doc.Environment)

	_, err = wsfe.BuildRequest(f.ctx, f.company.ID, unclassified.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
