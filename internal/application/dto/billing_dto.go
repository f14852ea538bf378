package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
// IVACondition vacío = condición desconocida (la venta queda sin clasificar si la empresa es RI).
type CreateCustomerRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	IVACondition     string `json:"iva_condition" validate:"omitempty,oneof=responsable_inscripto consumidor_final exento monotributo no_alcanzado cliente_exterior"`
	VATNumber        string `json:"vat_number,omitempty" validate:"omitempty,max=13"`
	ForeignVATNumber string `json:"foreign_vat_number,omitempty" validate:"omitempty,max=30"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`
	IVACondition     string `json:"iva_condition,omitempty"`
	VATNumber        string `json:"vat_number,omitempty"`
	ForeignVATNumber string `json:"foreign_vat_number,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
}

// InvoiceResponse comprobante con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	CustomerID    string                `json:"customer_id"`
	SaleID        string                `json:"sale_id"`
	PosID         string                `json:"pos_id"`
	PosNumber     int                   `json:"pos_number"`
	PosSequenceID string                `json:"pos_sequence_id,omitempty"`
	InvoiceType   string                `json:"invoice_type,omitempty"`
	Letter        string                `json:"letter,omitempty"`
	Number        int64                 `json:"number"`
	Concept       string                `json:"concept"`
	BillingStart  string                `json:"billing_start_date,omitempty"` // YYYY-MM-DD
	BillingEnd    string                `json:"billing_end_date,omitempty"`
	Date          string                `json:"date"`
	NetTotal      decimal.Decimal       `json:"net_total"`
	TaxTotal      decimal.Decimal       `json:"tax_total"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	State         string                `json:"state"`
	Lines         []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea del comprobante en la respuesta.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}
