package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// PointOfSaleUseCase alta y consulta de puntos de venta y sus secuencias de numeración.
type PointOfSaleUseCase struct {
	posRepo      repository.PointOfSaleRepository
	sequenceRepo repository.PosSequenceRepository
	mapper       *billing.InvoiceTypeMapper
}

// NewPointOfSaleUseCase construye el caso de uso.
func NewPointOfSaleUseCase(posRepo repository.PointOfSaleRepository, sequenceRepo repository.PosSequenceRepository, mapper *billing.InvoiceTypeMapper) *PointOfSaleUseCase {
	return &PointOfSaleUseCase{posRepo: posRepo, sequenceRepo: sequenceRepo, mapper: mapper}
}

// Create da de alta un punto de venta activo. El número es único por empresa.
func (uc *PointOfSaleUseCase) Create(ctx context.Context, companyID string, in dto.CreatePointOfSaleRequest) (*dto.PointOfSaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	pos := &entity.PointOfSale{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Number:    in.Number,
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.posRepo.Create(ctx, pos); err != nil {
		return nil, err
	}
	return toPointOfSaleResponse(pos, nil), nil
}

// GetByID devuelve el punto de venta con sus secuencias.
func (uc *PointOfSaleUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PointOfSaleResponse, error) {
	pos, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	seqs, err := uc.sequenceRepo.ListByPos(ctx, pos.ID)
	if err != nil {
		return nil, err
	}
	return toPointOfSaleResponse(pos, seqs), nil
}

// List lista los puntos de venta de la empresa.
func (uc *PointOfSaleUseCase) List(ctx context.Context, companyID string) ([]*dto.PointOfSaleResponse, error) {
	list, err := uc.posRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PointOfSaleResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPointOfSaleResponse(p, nil))
	}
	return out, nil
}

// AddSequence registra una secuencia para el punto de venta. Con Letter el código
// sale de la tabla de facturas de venta; con InvoiceType se usa tal cual y la
// descripción se toma de la tabla si el código existe.
func (uc *PointOfSaleUseCase) AddSequence(ctx context.Context, companyID, posID string, in dto.CreatePosSequenceRequest) (*dto.PosSequenceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	pos, err := uc.get(ctx, companyID, posID)
	if err != nil {
		return nil, err
	}

	var it afip.InvoiceType
	if in.Letter != "" {
		it, err = uc.mapper.MapToCode(afip.DirectionOutInvoice, in.Letter)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
	} else {
		it.Code = strings.TrimLeft(strings.TrimSpace(in.InvoiceType), "0")
		it.Description = uc.mapper.Describe(it.Code)
		if it.Description == "" {
			return nil, fmt.Errorf("%w: tipo de comprobante %q desconocido", domain.ErrInvalidInput, in.InvoiceType)
		}
	}

	existing, err := uc.sequenceRepo.FindByPosAndInvoiceType(ctx, pos.ID, it.Code)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s ya tiene secuencia en el punto de venta %d", domain.ErrDuplicate, it.Description, pos.Number)
	}

	now := time.Now()
	seq := &entity.PosSequence{
		ID:          uuid.New().String(),
		PosID:       pos.ID,
		InvoiceType: it.Code,
		Description: it.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.sequenceRepo.Create(ctx, seq); err != nil {
		return nil, err
	}
	resp := toPosSequenceResponse(seq)
	return &resp, nil
}

func (uc *PointOfSaleUseCase) get(ctx context.Context, companyID, id string) (*entity.PointOfSale, error) {
	pos, err := uc.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrNotFound
	}
	if pos.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return pos, nil
}

func toPointOfSaleResponse(p *entity.PointOfSale, seqs []*entity.PosSequence) *dto.PointOfSaleResponse {
	resp := &dto.PointOfSaleResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Number:    p.Number,
		Name:      p.Name,
		Active:    p.Active,
	}
	for _, s := range seqs {
		resp.Sequences = append(resp.Sequences, toPosSequenceResponse(s))
	}
	return resp
}

func toPosSequenceResponse(s *entity.PosSequence) dto.PosSequenceResponse {
	return dto.PosSequenceResponse{
		ID:          s.ID,
		PosID:       s.PosID,
		InvoiceType: s.InvoiceType,
		Description: s.Description,
	}
}
