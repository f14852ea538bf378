package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStateDraft      = "draft"
	SaleStateConfirmed  = "confirmed"
	SaleStateProcessing = "processing" // comprobante generado
	SaleStateDone       = "done"
	SaleStateCancelled  = "cancelled"
)

// Sale representa una venta (orden) en preparación.
// PosSequenceID e InvoiceLetter son la clasificación AFIP: vacíos hasta que se resuelven
// y de solo lectura fuera del estado borrador.
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    string // vacío = sin cliente
	PosID         string // vacío = sin punto de venta
	PosSequenceID string
	InvoiceLetter string
	State         string
	Reference     string
	Date          time.Time
	Lines         []*SaleLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDraft indica si la venta admite cambios de clasificación.
func (s *Sale) IsDraft() bool {
	return s.State == SaleStateDraft
}

// ResetClassification deja la clasificación vacía.
func (s *Sale) ResetClassification() {
	s.PosSequenceID = ""
	s.InvoiceLetter = ""
}

// IsClassified indica si la venta tiene secuencia resuelta.
func (s *Sale) IsClassified() bool {
	return s.PosSequenceID != ""
}

// SaleLine línea de venta. ProductID vacío = línea de texto/comentario.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Sequence    int
}
