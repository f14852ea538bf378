package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// Customer representa un cliente (parte) de la empresa.
type Customer struct {
	ID               string
	CompanyID        string
	Name             string
	IVACondition     string // vacío = condición desconocida
	VATNumber        string // CUIT argentino
	ForeignVATNumber string // identificador AFIP para sujetos del exterior
	Email            string
	Phone            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasLocalVATID indica si el cliente tiene un CUIT argentino válido.
func (c *Customer) HasLocalVATID() bool {
	return c != nil && afip.IsCUIT(c.VATNumber)
}

// HasForeignVATID indica si el cliente tiene identificador AFIP del exterior.
func (c *Customer) HasForeignVATID() bool {
	return c != nil && strings.TrimSpace(c.ForeignVATNumber) != ""
}
