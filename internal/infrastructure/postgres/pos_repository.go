package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

var (
	_ repository.PointOfSaleRepository = (*PointOfSaleRepo)(nil)
	_ repository.PosSequenceRepository = (*PosSequenceRepo)(nil)
)

// PointOfSaleRepo puntos de venta sobre PostgreSQL.
type PointOfSaleRepo struct {
	q Querier
}

// NewPointOfSaleRepository construye el adaptador.
func NewPointOfSaleRepository(q Querier) *PointOfSaleRepo {
	return &PointOfSaleRepo{q: q}
}

// Create persiste un punto de venta. (company_id, number) es único.
func (r *PointOfSaleRepo) Create(ctx context.Context, p *entity.PointOfSale) error {
	query := `
		INSERT INTO points_of_sale (id, company_id, number, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Number, p.Name, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert point of sale: %w", err)
	}
	return nil
}

// GetByID obtiene un punto de venta por ID.
func (r *PointOfSaleRepo) GetByID(ctx context.Context, id string) (*entity.PointOfSale, error) {
	query := `SELECT id, company_id, number, name, active, created_at, updated_at FROM points_of_sale WHERE id = $1`
	var p entity.PointOfSale
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.CompanyID, &p.Number, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get point of sale: %w", err)
	}
	return &p, nil
}

// ListByCompany lista los puntos de venta de la empresa ordenados por número.
func (r *PointOfSaleRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PointOfSale, error) {
	query := `
		SELECT id, company_id, number, name, active, created_at, updated_at
		FROM points_of_sale WHERE company_id = $1 ORDER BY number`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list points of sale: %w", err)
	}
	defer rows.Close()
	var list []*entity.PointOfSale
	for rows.Next() {
		var p entity.PointOfSale
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Number, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan point of sale: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// PosSequenceRepo secuencias de numeración sobre PostgreSQL. La tabla no tiene
// unique (pos_id, invoice_type): los duplicados se detectan al resolver.
type PosSequenceRepo struct {
	q Querier
}

// NewPosSequenceRepository construye el adaptador.
func NewPosSequenceRepository(q Querier) *PosSequenceRepo {
	return &PosSequenceRepo{q: q}
}

const posSequenceColumns = `id, pos_id, invoice_type, description, created_at, updated_at`

func scanPosSequences(rows pgx.Rows) ([]*entity.PosSequence, error) {
	defer rows.Close()
	list := make([]*entity.PosSequence, 0, 1)
	for rows.Next() {
		var s entity.PosSequence
		if err := rows.Scan(&s.ID, &s.PosID, &s.InvoiceType, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pos sequence: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create persiste una secuencia.
func (r *PosSequenceRepo) Create(ctx context.Context, s *entity.PosSequence) error {
	query := `INSERT INTO pos_sequences (` + posSequenceColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.PosID, s.InvoiceType, s.Description, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pos sequence: %w", err)
	}
	return nil
}

// GetByID obtiene una secuencia por ID.
func (r *PosSequenceRepo) GetByID(ctx context.Context, id string) (*entity.PosSequence, error) {
	var s entity.PosSequence
	err := r.q.QueryRow(ctx, `SELECT `+posSequenceColumns+` FROM pos_sequences WHERE id = $1`, id).
		Scan(&s.ID, &s.PosID, &s.InvoiceType, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pos sequence: %w", err)
	}
	return &s, nil
}

// FindByPosAndInvoiceType devuelve todas las secuencias que coinciden (0, 1 o más).
func (r *PosSequenceRepo) FindByPosAndInvoiceType(ctx context.Context, posID, invoiceType string) ([]*entity.PosSequence, error) {
	query := `SELECT ` + posSequenceColumns + ` FROM pos_sequences WHERE pos_id = $1 AND invoice_type = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, posID, invoiceType)
	if err != nil {
		return nil, fmt.Errorf("find pos sequences: %w", err)
	}
	return scanPosSequences(rows)
}

// ListByPos lista las secuencias del punto de venta.
func (r *PosSequenceRepo) ListByPos(ctx context.Context, posID string) ([]*entity.PosSequence, error) {
	query := `SELECT ` + posSequenceColumns + ` FROM pos_sequences WHERE pos_id = $1 ORDER BY invoice_type::int`
	rows, err := r.q.Query(ctx, query, posID)
	if err != nil {
		return nil, fmt.Errorf("list pos sequences: %w", err)
	}
	return scanPosSequences(rows)
}
