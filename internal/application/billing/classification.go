package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	domafip "github.com/jhoicas/ventas-pos-ar/internal/domain/afip"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
	"github.com/jhoicas/ventas-pos-ar/pkg/logger"
)

// Classification resultado de clasificar una venta: letra, tipo AFIP y secuencia.
type Classification struct {
	Letter      string
	InvoiceType afip.InvoiceType
	Sequence    *entity.PosSequence
}

// SaleClassifier resuelve qué comprobante corresponde a una venta:
// letra (condiciones de IVA) -> tipo AFIP -> secuencia del punto de venta.
type SaleClassifier struct {
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	mapper       *InvoiceTypeMapper
	resolver     *SequenceResolver
	log          *logger.Logger
}

// NewSaleClassifier construye el clasificador.
func NewSaleClassifier(
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	mapper *InvoiceTypeMapper,
	resolver *SequenceResolver,
	log *logger.Logger,
) *SaleClassifier {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleClassifier{
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		mapper:       mapper,
		resolver:     resolver,
		log:          log,
	}
}

// Classify deja la clasificación de la venta vacía y, si tiene cliente y punto de
// venta, la recalcula. Devuelve nil (sin error) cuando no corresponde clasificar o
// la condición de IVA del cliente es desconocida. Ante error la venta queda sin
// clasificación.
func (c *SaleClassifier) Classify(ctx context.Context, sale *entity.Sale) (*Classification, error) {
	sale.ResetClassification()
	if sale.PosID == "" || sale.CustomerID == "" {
		return nil, nil
	}

	company, err := c.companyRepo.GetByID(ctx, sale.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := c.customerRepo.GetByID(ctx, sale.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	letter, ok := domafip.ClassifyInvoiceLetter(
		company.IVACondition,
		customer.IVACondition,
		customer.HasForeignVATID(),
		customer.HasLocalVATID(),
	)
	if !ok {
		c.log.Debug().Str("sale_id", sale.ID).Str("customer_id", customer.ID).
			Msg("condición de IVA del cliente desconocida: venta sin clasificar")
		return nil, nil
	}

	invoiceType, err := c.mapper.MapToCode(afip.DirectionOutInvoice, letter)
	if err != nil {
		c.log.Error().Err(err).Str("sale_id", sale.ID).Msg("tabla de comprobantes incompleta")
		return nil, err
	}
	seq, err := c.resolver.Resolve(ctx, sale.PosID, invoiceType)
	if err != nil {
		c.log.Warn().Err(err).Str("sale_id", sale.ID).Str("pos_id", sale.PosID).
			Str("invoice_type", invoiceType.Code).Msg("no se pudo resolver la secuencia")
		return nil, err
	}

	sale.PosSequenceID = seq.ID
	sale.InvoiceLetter = letter
	c.log.Info().Str("sale_id", sale.ID).Str("letter", letter).
		Str("invoice_type", invoiceType.Code).Str("sequence_id", seq.ID).Msg("venta clasificada")
	return &Classification{Letter: letter, InvoiceType: invoiceType, Sequence: seq}, nil
}
