package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

func TestSaleClassifier_Letters(t *testing.T) {
	cases := []struct {
		name             string
		companyCondition string
		partyCondition   string
		vat              string
		foreign          string
		wantLetter       string
		wantCode         string
	}{
		{"RI a RI", afip.IVAResponsableInscripto, afip.IVAResponsableInscripto, "20-12345678-6", "", "A", "1"},
		{"RI a consumidor final", afip.IVAResponsableInscripto, afip.IVAConsumidorFinal, "", "", "B", "6"},
		{"RI a exento con CUIT", afip.IVAResponsableInscripto, afip.IVAExento, "20-12345678-6", "", "B", "6"},
		{"RI a exento sin CUIT", afip.IVAResponsableInscripto, afip.IVAExento, "", "", "E", "19"},
		{"RI a cliente del exterior", afip.IVAResponsableInscripto, afip.IVAClienteExterior, "", "55000002206", "E", "19"},
		{"monotributo a RI", afip.IVAMonotributo, afip.IVAResponsableInscripto, "20-12345678-6", "", "C", "11"},
		{"monotributo a cliente del exterior", afip.IVAMonotributo, afip.IVAClienteExterior, "", "55000002206", "E", "19"},
		{"exento a sin condición", afip.IVAExento, "", "", "", "C", "11"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.companyCondition)
			seqA := f.addSequence("1", "01-Factura A")
			seqB := f.addSequence("6", "06-Factura B")
			seqC := f.addSequence("11", "11-Factura C")
			seqE := f.addSequence("19", "19-Factura E")
			byCode := map[string]string{"1": seqA.ID, "6": seqB.ID, "11": seqC.ID, "19": seqE.ID}

			customer := f.addCustomer(tc.partyCondition, tc.vat, tc.foreign)
			sale := f.newSale(customer.ID)

			cls, err := f.classifier.Classify(f.ctx, sale)
			require.NoError(t, err)
			require.NotNil(t, cls)
			assert.Equal(t, tc.wantLetter, cls.Letter)
			assert.Equal(t, tc.wantCode, cls.InvoiceType.Code)
			assert.Equal(t, byCode[tc.wantCode], sale.PosSequenceID)
			assert.Equal(t, tc.wantLetter, sale.InvoiceLetter)
		})
	}
}

func TestSaleClassifier_UndeterminedSkipsLookup(t *testing.T) {
	// Tabla vacía: si se consultara el mapper la clasificación fallaría.
	f := newFixtureWithTable(t, afip.IVAResponsableInscripto, afip.NewInvoiceTypeTable(nil))
	customer := f.addCustomer("", "", "")
	sale := f.newSale(customer.ID)
	sale.PosSequenceID = "anterior"
	sale.InvoiceLetter = "A"

	cls, err := f.classifier.Classify(f.ctx, sale)
	require.NoError(t, err)
	assert.Nil(t, cls)
	assert.Empty(t, sale.PosSequenceID)
	assert.Empty(t, sale.InvoiceLetter)
}

func TestSaleClassifier_WithoutPosOrCustomer(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	f.addSequence("1", "01-Factura A")
	customer := f.addCustomer(afip.IVAResponsableInscripto, "20-12345678-6", "")

	noPos := f.newSale(customer.ID)
	noPos.PosID = ""
	noPos.PosSequenceID = "anterior"
	cls, err := f.classifier.Classify(f.ctx, noPos)
	require.NoError(t, err)
	assert.Nil(t, cls)
	assert.Empty(t, noPos.PosSequenceID)

	noCustomer := f.newSale("")
	cls, err = f.classifier.Classify(f.ctx, noCustomer)
	require.NoError(t, err)
	assert.Nil(t, cls)
	assert.Empty(t, noCustomer.PosSequenceID)
}

func TestSaleClassifier_MissingSequence(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	f.addSequence("1", "01-Factura A")
	customer := f.addCustomer(afip.IVAConsumidorFinal, "", "")
	sale := f.newSale(customer.ID)
	sale.PosSequenceID = "anterior"

	cls, err := f.classifier.Classify(f.ctx, sale)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingSequence)
	assert.Contains(t, err.Error(), "06-Factura B")
	assert.Nil(t, cls)
	assert.Empty(t, sale.PosSequenceID)
	assert.Empty(t, sale.InvoiceLetter)
}

func TestSaleClassifier_AmbiguousSequence(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	f.addSequence("1", "01-Factura A")
	f.addSequence("1", "01-Factura A (duplicada)")
	customer := f.addCustomer(afip.IVAResponsableInscripto, "20-12345678-6", "")
	sale := f.newSale(customer.ID)

	_, err := f.classifier.Classify(f.ctx, sale)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousSequence)
	assert.Contains(t, err.Error(), "01-Factura A")
	assert.Empty(t, sale.PosSequenceID)
}

func TestSaleClassifier_UnknownLetter(t *testing.T) {
	table := afip.NewInvoiceTypeTable(map[afip.InvoiceTypeKey]afip.InvoiceType{
		{Direction: afip.DirectionOutInvoice, Letter: afip.LetterB}: {Code: "6", Description: "06-Factura B"},
	})
	f := newFixtureWithTable(t, afip.IVAResponsableInscripto, table)
	f.addSequence("1", "01-Factura A")
	customer := f.addCustomer(afip.IVAResponsableInscripto, "20-12345678-6", "")
	sale := f.newSale(customer.ID)

	_, err := f.classifier.Classify(f.ctx, sale)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownInvoiceLetter)
	assert.Empty(t, sale.PosSequenceID)
}

func TestSaleClassifier_Idempotent(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	seq := f.addSequence("6", "06-Factura B")
	customer := f.addCustomer(afip.IVAConsumidorFinal, "", "")
	sale := f.newSale(customer.ID)

	for i := 0; i < 3; i++ {
		cls, err := f.classifier.Classify(f.ctx, sale)
		require.NoError(t, err)
		require.NotNil(t, cls)
		assert.Equal(t, seq.ID, sale.PosSequenceID)
		assert.Equal(t, afip.LetterB, sale.InvoiceLetter)
	}
}

func TestSaleClassifier_MissingCustomer(t *testing.T) {
	f := newFixture(t, afip.IVAResponsableInscripto)
	sale := f.newSale("no-existe")

	_, err := f.classifier.Classify(f.ctx, sale)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
