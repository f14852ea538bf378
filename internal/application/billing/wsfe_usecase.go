package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

// WSFEUseCase arma el request FECAESolicitar de un comprobante para que lo envíe
// el proceso de autorización (CAE). No se comunica con AFIP.
type WSFEUseCase struct {
	loader  documentLoader
	builder WSFERequestBuilder
}

// NewWSFEUseCase construye el caso de uso. environment: homologacion | produccion.
func NewWSFEUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	mapper *InvoiceTypeMapper,
	builder WSFERequestBuilder,
	environment string,
) *WSFEUseCase {
	return &WSFEUseCase{
		loader: documentLoader{
			invoiceRepo:  invoiceRepo,
			companyRepo:  companyRepo,
			customerRepo: customerRepo,
			mapper:       mapper,
			environment:  environment,
		},
		builder: builder,
	}
}

// BuildRequest devuelve el XML del request. Un comprobante sin tipo (venta sin
// clasificar) no puede informarse: domain.ErrConflict.
func (uc *WSFEUseCase) BuildRequest(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	doc, err := uc.loader.load(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if doc.Invoice.InvoiceType == "" {
		return nil, fmt.Errorf("%w: el comprobante no tiene tipo AFIP", domain.ErrConflict)
	}
	out, err := uc.builder.BuildFECAESolicitar(doc)
	if err != nil {
		return nil, fmt.Errorf("wsfe: armar request: %w", err)
	}
	return out, nil
}
