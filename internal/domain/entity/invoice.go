package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del comprobante.
const (
	InvoiceStateDraft     = "DRAFT"     // generado desde la venta, pendiente de CAE
	InvoiceStatePosted    = "POSTED"    // autorizado (CAE asignado por el proceso externo)
	InvoiceStateCancelled = "CANCELLED"
)

// Invoice representa la cabecera de un comprobante generado desde una venta.
// Concept y el período de servicio corresponden a FECAEDetRequest (WSFEv1).
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	SaleID        string
	PosID         string
	PosNumber     int
	PosSequenceID string // vacío si la venta no tenía clasificación resuelta
	InvoiceType   string // código AFIP (CbteTipo)
	Letter        string
	Number        int64 // 0 hasta que el proceso de autorización asigna número
	Concept       string
	BillingStart  *time.Time // solo concepto 2 o 3
	BillingEnd    *time.Time
	Date          time.Time
	NetTotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	State         string
	Lines         []*InvoiceLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasBillingPeriod indica si el comprobante lleva período de servicio.
func (i *Invoice) HasBillingPeriod() bool {
	return i.BillingStart != nil && i.BillingEnd != nil
}

// InvoiceLine línea del comprobante.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
}
