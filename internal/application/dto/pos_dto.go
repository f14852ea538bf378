package dto

// CreatePointOfSaleRequest body para POST /api/pos.
type CreatePointOfSaleRequest struct {
	Number int    `json:"number" validate:"required,min=1,max=99999"`
	Name   string `json:"name" validate:"required,max=100"`
}

// PointOfSaleResponse punto de venta en respuestas.
type PointOfSaleResponse struct {
	ID        string                `json:"id"`
	CompanyID string                `json:"company_id"`
	Number    int                   `json:"number"`
	Name      string                `json:"name"`
	Active    bool                  `json:"active"`
	Sequences []PosSequenceResponse `json:"sequences,omitempty"`
}

// CreatePosSequenceRequest body para POST /api/pos/:id/sequences.
// Si se indica Letter (A/B/C/E) el código se toma de la tabla de comprobantes de venta.
type CreatePosSequenceRequest struct {
	InvoiceType string `json:"invoice_type" validate:"required_without=Letter,max=3"`
	Letter      string `json:"letter" validate:"omitempty,oneof=A B C E"`
}

// PosSequenceResponse secuencia en respuestas.
type PosSequenceResponse struct {
	ID          string `json:"id"`
	PosID       string `json:"pos_id"`
	InvoiceType string `json:"invoice_type"`
	Description string `json:"description"`
}
