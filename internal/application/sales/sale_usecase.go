// Package sales contiene los casos de uso de la venta en borrador: alta, líneas y
// los eventos "cambió el cliente" / "cambió el punto de venta" que disparan la
// clasificación AFIP.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/logger"
)

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	posRepo      repository.PointOfSaleRepository
	sequenceRepo repository.PosSequenceRepository
	classifier   *billing.SaleClassifier
	defaultPosID string
	log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso. defaultPosID es el punto de venta que se
// asigna a las ventas nuevas que no indican uno (vacío = ninguno).
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	posRepo repository.PointOfSaleRepository,
	sequenceRepo repository.PosSequenceRepository,
	classifier *billing.SaleClassifier,
	defaultPosID string,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		posRepo:      posRepo,
		sequenceRepo: sequenceRepo,
		classifier:   classifier,
		defaultPosID: defaultPosID,
		log:          log,
	}
}

// Create crea una venta en borrador. Si tiene cliente y punto de venta se clasifica;
// un error de clasificación (secuencia faltante o duplicada) impide el alta.
func (uc *SaleUseCase) Create(ctx context.Context, companyID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		State:     entity.SaleStateDraft,
		Reference: in.Reference,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	posID := in.PosID
	if posID == "" {
		posID = uc.defaultPos(ctx, companyID)
	} else if err := uc.checkPos(ctx, companyID, posID); err != nil {
		return nil, err
	}
	sale.PosID = posID

	if in.CustomerID != "" {
		if err := uc.checkCustomer(ctx, companyID, in.CustomerID); err != nil {
			return nil, err
		}
		sale.CustomerID = in.CustomerID
	}

	cls, err := uc.classifier.Classify(ctx, sale)
	if err != nil {
		return nil, err
	}
	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, sale, cls), nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, sale, nil), nil
}

// List lista ventas de la empresa (sin líneas).
func (uc *SaleUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, uc.toResponse(ctx, s, nil))
	}
	return out, nil
}

// ChangeParty evento "cambió el cliente": vacía la clasificación y, si hay cliente y
// punto de venta, la recalcula. Si la clasificación falla el cambio no se persiste.
func (uc *SaleUseCase) ChangeParty(ctx context.Context, companyID, saleID, customerID string) (*dto.SaleResponse, error) {
	sale, err := uc.loadDraft(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if customerID != "" {
		if err := uc.checkCustomer(ctx, companyID, customerID); err != nil {
			return nil, err
		}
	}
	sale.CustomerID = customerID
	return uc.reclassifyAndSave(ctx, sale)
}

// ChangePos evento "cambió el punto de venta": si se quita, la clasificación queda
// vacía; si se asigna otro, se recalcula igual que al cambiar el cliente.
func (uc *SaleUseCase) ChangePos(ctx context.Context, companyID, saleID, posID string) (*dto.SaleResponse, error) {
	sale, err := uc.loadDraft(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if posID != "" {
		if err := uc.checkPos(ctx, companyID, posID); err != nil {
			return nil, err
		}
	}
	sale.PosID = posID
	return uc.reclassifyAndSave(ctx, sale)
}

// AddLine agrega una línea a una venta en borrador. Precio cero = precio del producto.
func (uc *SaleUseCase) AddLine(ctx context.Context, companyID, saleID string, in dto.AddSaleLineRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: cantidad debe ser mayor a cero y precio no negativo", domain.ErrInvalidInput)
	}
	sale, err := uc.loadDraft(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	line := &entity.SaleLine{
		ID:          uuid.New().String(),
		SaleID:      sale.ID,
		ProductID:   in.ProductID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Sequence:    len(sale.Lines) + 1,
	}
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = product.Price
		}
		if line.Description == "" {
			line.Description = product.Name
		}
	}
	if err := uc.saleRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	sale.Lines = append(sale.Lines, line)
	return uc.toResponse(ctx, sale, nil), nil
}

// RemoveLine quita una línea de una venta en borrador.
func (uc *SaleUseCase) RemoveLine(ctx context.Context, companyID, saleID, lineID string) (*dto.SaleResponse, error) {
	sale, err := uc.loadDraft(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, l := range sale.Lines {
		if l.ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if err := uc.saleRepo.DeleteLine(ctx, sale.ID, lineID); err != nil {
		return nil, err
	}
	sale.Lines = append(sale.Lines[:idx], sale.Lines[idx+1:]...)
	return uc.toResponse(ctx, sale, nil), nil
}

// Confirm pasa la venta a confirmada. Requiere cliente y al menos una línea; la
// clasificación puede estar vacía (el comprobante se generará sin tipo).
func (uc *SaleUseCase) Confirm(ctx context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.loadDraft(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if len(sale.Lines) == 0 {
		return nil, domain.ErrEmptySale
	}
	if sale.CustomerID == "" {
		return nil, fmt.Errorf("%w: la venta no tiene cliente", domain.ErrInvalidInput)
	}
	if !sale.IsClassified() {
		uc.log.Warn().Str("sale_id", sale.ID).Msg("venta confirmada sin clasificación AFIP")
	}
	sale.UpdatedAt = time.Now()
	if err := uc.saleRepo.TransitionState(ctx, sale.ID, entity.SaleStateDraft, entity.SaleStateConfirmed, sale.UpdatedAt); err != nil {
		return nil, err
	}
	sale.State = entity.SaleStateConfirmed
	return uc.toResponse(ctx, sale, nil), nil
}

func (uc *SaleUseCase) reclassifyAndSave(ctx context.Context, sale *entity.Sale) (*dto.SaleResponse, error) {
	cls, err := uc.classifier.Classify(ctx, sale)
	if err != nil {
		return nil, err
	}
	sale.UpdatedAt = time.Now()
	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, sale, cls), nil
}

func (uc *SaleUseCase) load(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

func (uc *SaleUseCase) loadDraft(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	sale, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !sale.IsDraft() {
		return nil, domain.ErrSaleNotDraft
	}
	return sale, nil
}

func (uc *SaleUseCase) checkCustomer(ctx context.Context, companyID, customerID string) error {
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *SaleUseCase) checkPos(ctx context.Context, companyID, posID string) error {
	pos, err := uc.posRepo.GetByID(ctx, posID)
	if err != nil {
		return err
	}
	if pos == nil {
		return domain.ErrNotFound
	}
	if pos.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if !pos.Active {
		return fmt.Errorf("%w: punto de venta %d inactivo", domain.ErrInvalidInput, pos.Number)
	}
	return nil
}

// defaultPos devuelve el punto de venta por defecto si pertenece a la empresa y está activo.
func (uc *SaleUseCase) defaultPos(ctx context.Context, companyID string) string {
	if uc.defaultPosID == "" {
		return ""
	}
	if err := uc.checkPos(ctx, companyID, uc.defaultPosID); err != nil {
		uc.log.Warn().Err(err).Str("pos_id", uc.defaultPosID).Str("company_id", companyID).
			Msg("punto de venta por defecto no aplicable")
		return ""
	}
	return uc.defaultPosID
}

func (uc *SaleUseCase) toResponse(ctx context.Context, s *entity.Sale, cls *billing.Classification) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CustomerID:    s.CustomerID,
		PosID:         s.PosID,
		PosSequenceID: s.PosSequenceID,
		InvoiceLetter: s.InvoiceLetter,
		State:         s.State,
		Reference:     s.Reference,
		Date:          s.Date.Format("2006-01-02"),
		Lines:         make([]dto.SaleLineResponse, 0, len(s.Lines)),
	}
	switch {
	case cls != nil:
		resp.InvoiceType = cls.InvoiceType.Code
	case s.PosSequenceID != "":
		if seq, err := uc.sequenceRepo.GetByID(ctx, s.PosSequenceID); err == nil && seq != nil {
			resp.InvoiceType = seq.InvoiceType
		}
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return resp
}
