package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

// documentLoader reúne comprobante, empresa y cliente para PDF y WSFE.
type documentLoader struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	mapper       *InvoiceTypeMapper
	environment  string
}

func (l *documentLoader) load(ctx context.Context, companyID, invoiceID string) (*InvoiceDocument, error) {
	inv, err := l.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("obtener comprobante: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := l.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	doc := &InvoiceDocument{
		Invoice:     inv,
		Company:     company,
		Environment: l.environment,
	}
	if inv.CustomerID != "" {
		customer, err := l.customerRepo.GetByID(ctx, inv.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("obtener cliente: %w", err)
		}
		doc.Customer = customer
	}
	if inv.InvoiceType != "" {
		doc.InvoiceTypeDesc = l.mapper.Describe(inv.InvoiceType)
	}
	return doc, nil
}
