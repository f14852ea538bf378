package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa emisora.
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	CUIT         string `json:"cuit" validate:"required,min=11,max=13"`
	IVACondition string `json:"iva_condition" validate:"required,oneof=responsable_inscripto exento monotributo no_alcanzado"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CUIT         string    `json:"cuit"`
	IVACondition string    `json:"iva_condition"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateIVAConditionRequest body para PUT /api/companies/:id/iva-condition.
type UpdateIVAConditionRequest struct {
	IVACondition string `json:"iva_condition"`
}
