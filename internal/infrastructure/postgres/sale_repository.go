package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// Las FKs opcionales se leen como '' cuando son NULL.
const saleColumns = `
	id, company_id, COALESCE(customer_id::text, ''), COALESCE(pos_id::text, ''),
	COALESCE(pos_sequence_id::text, ''), invoice_letter, state, reference, date, created_at, updated_at`

// SaleRepo ventas y líneas de venta sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, customer_id, pos_id, pos_sequence_id, invoice_letter, state, reference, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, nullIfEmpty(s.CustomerID), nullIfEmpty(s.PosID), nullIfEmpty(s.PosSequenceID),
		s.InvoiceLetter, s.State, s.Reference, s.Date, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, l := range s.Lines {
		if err := r.AddLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas ordenadas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.CompanyID, &s.CustomerID, &s.PosID, &s.PosSequenceID, &s.InvoiceLetter,
		&s.State, &s.Reference, &s.Date, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	query := `
		SELECT id, sale_id, COALESCE(product_id::text, ''), description, quantity, unit_price, sequence
		FROM sale_lines WHERE sale_id = $1 ORDER BY sequence, id`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Sequence); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, &l)
	}
	return &s, rows.Err()
}

// Update actualiza la cabecera: cliente, punto de venta y clasificación. El estado
// cambia solo con TransitionState.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $2, pos_id = $3, pos_sequence_id = $4, invoice_letter = $5,
		       reference = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, nullIfEmpty(s.CustomerID), nullIfEmpty(s.PosID), nullIfEmpty(s.PosSequenceID),
		s.InvoiceLetter, s.Reference, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransitionState cambia el estado solo si la venta sigue en from.
func (r *SaleRepo) TransitionState(ctx context.Context, id, from, to string, at time.Time) error {
	query := `UPDATE sales SET state = $3, updated_at = $4 WHERE id = $1 AND state = $2`
	tag, err := r.q.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return fmt.Errorf("transition sale state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la venta %s no está en estado %s", domain.ErrConflict, id, from)
	}
	return nil
}

// AddLine persiste una línea de venta.
func (r *SaleRepo) AddLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, description, quantity, unit_price, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.SaleID, nullIfEmpty(l.ProductID), l.Description, l.Quantity, l.UnitPrice, l.Sequence)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea de la venta.
func (r *SaleRepo) DeleteLine(ctx context.Context, saleID, lineID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1 AND id = $2`, saleID, lineID)
	if err != nil {
		return fmt.Errorf("delete sale line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista ventas (sin líneas), más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.CustomerID, &s.PosID, &s.PosSequenceID, &s.InvoiceLetter,
			&s.State, &s.Reference, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
