package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id, company_id, COALESCE(customer_id::text, ''), sale_id, COALESCE(pos_id::text, ''), pos_number,
	COALESCE(pos_sequence_id::text, ''), invoice_type, letter, number, concept, billing_start, billing_end,
	date, net_total, tax_total, grand_total, state, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. billing_start/billing_end quedan NULL salvo concepto 2 o 3.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, company_id, customer_id, sale_id, pos_id, pos_number, pos_sequence_id, invoice_type, letter,
			number, concept, billing_start, billing_end, date, net_total, tax_total, grand_total, state,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, nullIfEmpty(inv.CustomerID), inv.SaleID, nullIfEmpty(inv.PosID), inv.PosNumber,
		nullIfEmpty(inv.PosSequenceID), inv.InvoiceType, inv.Letter, inv.Number, inv.Concept,
		inv.BillingStart, inv.BillingEnd, inv.Date, inv.NetTotal, inv.TaxTotal, inv.GrandTotal, inv.State,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, description, quantity, unit_price, tax_rate, subtotal, tax_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, l := range inv.Lines {
		_, err := r.q.Exec(ctx, lineQuery,
			l.ID, inv.ID, nullIfEmpty(l.ProductID), l.Description, l.Quantity, l.UnitPrice, l.TaxRate, l.Subtotal, l.TaxAmount,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.SaleID, &inv.PosID, &inv.PosNumber,
		&inv.PosSequenceID, &inv.InvoiceType, &inv.Letter, &inv.Number, &inv.Concept,
		&inv.BillingStart, &inv.BillingEnd, &inv.Date, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.State, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID obtiene el comprobante con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Lines, err = r.lines(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListBySale lista los comprobantes generados desde una venta (sin líneas).
func (r *InvoiceRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE sale_id = $1 ORDER BY created_at`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) lines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id::text, ''), description, quantity, unit_price, tax_rate, subtotal, tax_amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice,
			&l.TaxRate, &l.Subtotal, &l.TaxAmount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
