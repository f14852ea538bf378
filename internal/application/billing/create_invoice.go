package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	domafip "github.com/jhoicas/ventas-pos-ar/internal/domain/afip"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
	"github.com/jhoicas/ventas-pos-ar/pkg/logger"
)

// CreateInvoiceUseCase genera el comprobante de una venta confirmada: copia punto de
// venta y secuencia, calcula concepto y, para servicios, el período facturado.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	posRepo      repository.PointOfSaleRepository
	sequenceRepo repository.PosSequenceRepository
	invoiceRepo  repository.InvoiceRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	posRepo repository.PointOfSaleRepository,
	sequenceRepo repository.PosSequenceRepository,
	invoiceRepo repository.InvoiceRepository,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		posRepo:      posRepo,
		sequenceRepo: sequenceRepo,
		invoiceRepo:  invoiceRepo,
		log:          log,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj usado para fecha y período de facturación.
func (uc *CreateInvoiceUseCase) WithClock(now func() time.Time) *CreateInvoiceUseCase {
	uc.now = now
	return uc
}

// CreateInvoice crea el comprobante de la venta y la pasa a "processing" en una sola transacción.
// La venta puede no tener clasificación resuelta: el comprobante se genera sin tipo.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, companyID, saleID string) (*dto.InvoiceResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("obtener venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if sale.State != entity.SaleStateConfirmed {
		return nil, fmt.Errorf("%w: la venta está en estado %s", domain.ErrConflict, sale.State)
	}
	if len(sale.Lines) == 0 {
		return nil, domain.ErrEmptySale
	}

	products := make(map[string]*entity.Product)
	for _, l := range sale.Lines {
		if l.ProductID == "" || products[l.ProductID] != nil {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("obtener producto: %w", err)
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[l.ProductID] = p
	}

	inv, err := uc.buildInvoice(ctx, sale, products)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(saleRepo repository.SaleRepository, invoiceRepo repository.InvoiceRepository) error {
		// Dos pedidos simultáneos leen la venta confirmada; solo uno gana la transición.
		if err := saleRepo.TransitionState(ctx, sale.ID, entity.SaleStateConfirmed, entity.SaleStateProcessing, inv.CreatedAt); err != nil {
			return err
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info().Str("invoice_id", inv.ID).Str("sale_id", sale.ID).
		Str("invoice_type", inv.InvoiceType).Str("concept", inv.Concept)
	if inv.HasBillingPeriod() {
		ev = ev.Time("billing_start", *inv.BillingStart).Time("billing_end", *inv.BillingEnd)
	}
	ev.Msg("comprobante generado")
	if inv.PosSequenceID == "" {
		uc.log.Warn().Str("invoice_id", inv.ID).Str("sale_id", sale.ID).
			Msg("comprobante generado sin tipo: la venta no tenía clasificación")
	}
	return ToInvoiceResponse(inv), nil
}

// GetInvoice obtiene un comprobante con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return ToInvoiceResponse(inv), nil
}

func (uc *CreateInvoiceUseCase) buildInvoice(ctx context.Context, sale *entity.Sale, products map[string]*entity.Product) (*entity.Invoice, error) {
	now := uc.now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  sale.CompanyID,
		CustomerID: sale.CustomerID,
		SaleID:     sale.ID,
		PosID:      sale.PosID,
		Letter:     sale.InvoiceLetter,
		Date:       now,
		State:      entity.InvoiceStateDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if sale.PosID != "" {
		pos, err := uc.posRepo.GetByID(ctx, sale.PosID)
		if err != nil {
			return nil, fmt.Errorf("obtener punto de venta: %w", err)
		}
		if pos != nil {
			inv.PosNumber = pos.Number
		}
	}
	if sale.PosSequenceID != "" {
		seq, err := uc.sequenceRepo.GetByID(ctx, sale.PosSequenceID)
		if err != nil {
			return nil, fmt.Errorf("obtener secuencia: %w", err)
		}
		if seq != nil {
			inv.PosSequenceID = seq.ID
			inv.InvoiceType = seq.InvoiceType
		}
	}

	productTypes := make([]string, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		var productType string
		taxRate := decimal.Zero
		description := l.Description
		if p := products[l.ProductID]; p != nil {
			productType = p.Type
			taxRate = normalizeTaxRate(p.TaxRate)
			if description == "" {
				description = p.Name
			}
		}
		productTypes = append(productTypes, productType)

		subtotal := l.Quantity.Mul(l.UnitPrice).Round(2)
		taxAmount := subtotal.Mul(taxRate).Round(2)
		inv.NetTotal = inv.NetTotal.Add(subtotal)
		inv.TaxTotal = inv.TaxTotal.Add(taxAmount)
		inv.Lines = append(inv.Lines, &entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			ProductID:   l.ProductID,
			Description: description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     taxRate,
			Subtotal:    subtotal,
			TaxAmount:   taxAmount,
		})
	}
	inv.GrandTotal = inv.NetTotal.Add(inv.TaxTotal)

	attachFiscalMetadata(inv, productTypes, now)
	return inv, nil
}

// attachFiscalMetadata fija concepto y, solo para servicios o mixto, el período del mes en curso.
func attachFiscalMetadata(inv *entity.Invoice, productTypes []string, today time.Time) {
	inv.Concept = domafip.ResolveConcept(productTypes)
	inv.BillingStart, inv.BillingEnd = nil, nil
	if afip.RequiresServicePeriod(inv.Concept) {
		period := domafip.ResolveBillingPeriod(today)
		inv.BillingStart = &period.Start
		inv.BillingEnd = &period.End
	}
}

// normalizeTaxRate acepta 21 o 0.21 y devuelve la fracción.
func normalizeTaxRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// ToInvoiceResponse convierte el comprobante al DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		SaleID:        inv.SaleID,
		PosID:         inv.PosID,
		PosNumber:     inv.PosNumber,
		PosSequenceID: inv.PosSequenceID,
		InvoiceType:   inv.InvoiceType,
		Letter:        inv.Letter,
		Number:        inv.Number,
		Concept:       inv.Concept,
		Date:          inv.Date.Format("2006-01-02"),
		NetTotal:      inv.NetTotal,
		TaxTotal:      inv.TaxTotal,
		GrandTotal:    inv.GrandTotal,
		State:         inv.State,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	if inv.HasBillingPeriod() {
		resp.BillingStart = inv.BillingStart.Format("2006-01-02")
		resp.BillingEnd = inv.BillingEnd.Format("2006-01-02")
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Subtotal:    l.Subtotal,
			TaxAmount:   l.TaxAmount,
		})
	}
	return resp
}
