package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSaleNotDraft       = errors.New("la venta no está en borrador")
	ErrEmptySale          = errors.New("la venta no tiene líneas")
)

// Errores de clasificación de comprobantes AFIP.
// Se envuelven con la descripción del tipo de comprobante: fmt.Errorf("%w: %s", ErrMissingSequence, desc).
var (
	// ErrUnknownInvoiceLetter la tabla de comprobantes no tiene entrada para (sentido, letra).
	ErrUnknownInvoiceLetter = errors.New("tipo de comprobante desconocido para la letra")
	// ErrMissingSequence no hay secuencia configurada para el punto de venta y tipo de comprobante.
	ErrMissingSequence = errors.New("no existe secuencia para el tipo de comprobante en el punto de venta")
	// ErrAmbiguousSequence hay más de una secuencia para el mismo punto de venta y tipo.
	ErrAmbiguousSequence = errors.New("existe más de una secuencia para el tipo de comprobante en el punto de venta")
)
