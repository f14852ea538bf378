package entity

import "time"

// Company representa una organización/tenant emisora de comprobantes (enfoque Argentina).
type Company struct {
	ID           string
	Name         string
	CUIT         string // CUIT del emisor (11 dígitos, con o sin guiones)
	IVACondition string // condición frente al IVA (ver pkg/afip IVA*)
	Address      string
	Phone        string
	Email        string
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
