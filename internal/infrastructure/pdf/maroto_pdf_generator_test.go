package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"12.5":      "12,50",
		"1234":      "1.234,00",
		"1234567.5": "1.234.567,50",
		"-999.999":  "-1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "Factura B", documentTitle(&billing.InvoiceDocument{InvoiceTypeDesc: "06-Factura B"}))
	assert.Equal(t, "Comprobante", documentTitle(&billing.InvoiceDocument{}))
}

func TestGenerateInvoicePDF(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	doc := &billing.InvoiceDocument{
		Company: &entity.Company{Name: "Sur SRL", CUIT: "30-71432198-2", IVACondition: afip.IVAResponsableInscripto},
		Customer: &entity.Customer{
			Name: "Juan Pérez", IVACondition: afip.IVAResponsableInscripto, VATNumber: "20-12345678-6",
		},
		Invoice: &entity.Invoice{
			PosNumber: 3, InvoiceType: "1", Letter: afip.LetterA, Concept: afip.ConceptServices,
			BillingStart: &start, BillingEnd: &end, Date: start,
			NetTotal: decimal.NewFromInt(1000), TaxTotal: decimal.NewFromInt(210), GrandTotal: decimal.NewFromInt(1210),
			State: entity.InvoiceStateDraft,
			Lines: []*entity.InvoiceLine{{
				Description: "Mantenimiento mensual", Quantity: decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(1000), TaxRate: decimal.RequireFromString("0.21"),
				Subtotal: decimal.NewFromInt(1000), TaxAmount: decimal.NewFromInt(210),
			}},
		},
		InvoiceTypeDesc: "01-Factura A",
		Environment:     afip.EnvironmentHomologacion,
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), &billing.InvoiceDocument{})
	assert.Error(t, err)
}

func TestPadCode(t *testing.T) {
	assert.Equal(t, "06", padCode("6"))
	assert.Equal(t, "201", padCode("201"))
}
