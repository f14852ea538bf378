package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/sales. PosID vacío = punto de venta por defecto.
type CreateSaleRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	PosID      string `json:"pos_id,omitempty"`
	Reference  string `json:"reference,omitempty" validate:"max=100"`
}

// AddSaleLineRequest body para POST /api/sales/:id/lines. ProductID vacío = línea de texto.
type AddSaleLineRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty" validate:"required_without=ProductID,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ChangeSalePartyRequest body para PUT /api/sales/:id/party. Vacío = quitar cliente.
type ChangeSalePartyRequest struct {
	CustomerID string `json:"customer_id"`
}

// ChangeSalePosRequest body para PUT /api/sales/:id/pos. Vacío = quitar punto de venta.
type ChangeSalePosRequest struct {
	PosID string `json:"pos_id"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	PosID         string             `json:"pos_id,omitempty"`
	PosSequenceID string             `json:"pos_sequence_id,omitempty"`
	InvoiceLetter string             `json:"invoice_letter,omitempty"`
	InvoiceType   string             `json:"invoice_type,omitempty"`
	State         string             `json:"state"`
	Reference     string             `json:"reference,omitempty"`
	Date          string             `json:"date"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
