package billing

import (
	"context"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción con los repos de venta y comprobante.
// Si fn retorna error se hace rollback: ni el comprobante ni el cambio de estado de la venta persisten.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación impresa del comprobante.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// WSFERequestBuilder construye el cuerpo FECAESolicitar (WSFEv1) del comprobante.
type WSFERequestBuilder interface {
	BuildFECAESolicitar(doc *InvoiceDocument) ([]byte, error)
}

// InvoiceDocument agrupa lo necesario para imprimir o informar un comprobante.
type InvoiceDocument struct {
	Invoice         *entity.Invoice
	Company         *entity.Company
	Customer        *entity.Customer
	InvoiceTypeDesc string
	Environment     string
}
