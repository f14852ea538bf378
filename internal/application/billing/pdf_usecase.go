package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

// PDFUseCase genera la representación impresa de un comprobante.
type PDFUseCase struct {
	loader    documentLoader
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	mapper *InvoiceTypeMapper,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		loader: documentLoader{
			invoiceRepo:  invoiceRepo,
			companyRepo:  companyRepo,
			customerRepo: customerRepo,
			mapper:       mapper,
		},
		generator: generator,
	}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound  si el comprobante no existe.
//   - domain.ErrForbidden si pertenece a otra empresa.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.loader.load(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	inv := doc.Invoice
	letter := inv.Letter
	if letter == "" {
		letter = "X"
	}
	filename = fmt.Sprintf("comprobante_%s_%05d_%08d.pdf", letter, inv.PosNumber, inv.Number)
	return pdfBytes, filename, nil
}
