package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. Si informa CUIT debe ser válido y único en la empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	vat := strings.TrimSpace(in.VATNumber)
	if vat != "" {
		if err := afip.ValidateCUIT(vat); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
		existing, err := uc.repo.GetByCompanyAndVATNumber(ctx, companyID, vat)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             in.Name,
		IVACondition:     in.IVACondition,
		VATNumber:        vat,
		ForeignVATNumber: strings.TrimSpace(in.ForeignVATNumber),
		Email:            in.Email,
		Phone:            in.Phone,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(c), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		IVACondition:     c.IVACondition,
		VATNumber:        c.VATNumber,
		ForeignVATNumber: c.ForeignVATNumber,
		Email:            c.Email,
		Phone:            c.Phone,
	}
}
