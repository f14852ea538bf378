package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// SequenceResolver obtiene la única secuencia de numeración de un punto de venta
// para un tipo de comprobante. Solo lee secuencias; no reintenta: cero o varias
// coincidencias son errores de configuración.
type SequenceResolver struct {
	repo repository.PosSequenceRepository
}

// NewSequenceResolver construye el resolver.
func NewSequenceResolver(repo repository.PosSequenceRepository) *SequenceResolver {
	return &SequenceResolver{repo: repo}
}

// Resolve devuelve la secuencia para (posID, invoiceType).
//   - sin coincidencias: domain.ErrMissingSequence con la descripción del comprobante.
//   - más de una:        domain.ErrAmbiguousSequence con la descripción del comprobante.
func (r *SequenceResolver) Resolve(ctx context.Context, posID string, invoiceType afip.InvoiceType) (*entity.PosSequence, error) {
	sequences, err := r.repo.FindByPosAndInvoiceType(ctx, posID, invoiceType.Code)
	if err != nil {
		return nil, fmt.Errorf("buscar secuencias: %w", err)
	}
	switch len(sequences) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingSequence, invoiceType.Description)
	case 1:
		return sequences[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrAmbiguousSequence, invoiceType.Description)
	}
}
