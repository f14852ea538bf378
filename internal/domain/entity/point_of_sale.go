package entity

import "time"

// PointOfSale punto de venta habilitado ante AFIP (PtoVta).
type PointOfSale struct {
	ID        string
	CompanyID string
	Number    int    // número de punto de venta AFIP (1..99999)
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PosSequence secuencia de numeración de un punto de venta para un tipo de comprobante.
// Cada par (punto de venta, tipo) debe tener a lo sumo una secuencia; más de una es un
// error de configuración. La numeración la gestiona el proceso de autorización, no la venta.
type PosSequence struct {
	ID          string
	PosID       string
	InvoiceType string // código AFIP (CbteTipo), ej: "1" = Factura A
	Description string // ej: "01-Factura A"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
