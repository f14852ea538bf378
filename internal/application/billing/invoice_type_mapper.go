package billing

import (
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// InvoiceTypeMapper traduce (sentido, letra) al tipo de comprobante AFIP usando
// una tabla inyectada al construirlo.
type InvoiceTypeMapper struct {
	table *afip.InvoiceTypeTable
}

// NewInvoiceTypeMapper construye el mapper. table nil = tabla incorporada.
func NewInvoiceTypeMapper(table *afip.InvoiceTypeTable) *InvoiceTypeMapper {
	if table == nil {
		table = afip.DefaultInvoiceTypeTable()
	}
	return &InvoiceTypeMapper{table: table}
}

// MapToCode devuelve código y descripción del comprobante.
// La letra viene del clasificador, pero la tabla es externa: si falta la entrada se
// devuelve domain.ErrUnknownInvoiceLetter.
func (m *InvoiceTypeMapper) MapToCode(direction, letter string) (afip.InvoiceType, error) {
	it, ok := m.table.Lookup(direction, letter)
	if !ok {
		return afip.InvoiceType{}, fmt.Errorf("%w: %s/%s", domain.ErrUnknownInvoiceLetter, direction, letter)
	}
	return it, nil
}

// Describe devuelve la descripción de un código de comprobante (vacío si no existe).
func (m *InvoiceTypeMapper) Describe(code string) string {
	return m.table.DescriptionByCode(code)
}
