package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio vendible.
// Type clasifica el concepto AFIP del comprobante: goods, service o assets.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Type        string
	Price       decimal.Decimal // precio de venta sin IVA
	TaxRate     decimal.Decimal // alícuota IVA: 0, 0.105, 0.21, 0.27
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
