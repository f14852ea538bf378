// Package memory implementa los repositorios en memoria (STORAGE_DRIVER=memory).
// Se usa para desarrollo local y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
)

// Store guarda todas las entidades. Los repositorios devuelven copias: modificar el
// resultado de un Get no altera el almacenamiento hasta llamar a Update.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	companies map[string]entity.Company
	customers map[string]entity.Customer
	products  map[string]entity.Product
	pos       map[string]entity.PointOfSale
	sequences map[string]entity.PosSequence
	sales     map[string]entity.Sale
	saleLines map[string][]entity.SaleLine
	invoices  map[string]entity.Invoice
	users     map[string]entity.User
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]entity.Company),
		customers: make(map[string]entity.Customer),
		products:  make(map[string]entity.Product),
		pos:       make(map[string]entity.PointOfSale),
		sequences: make(map[string]entity.PosSequence),
		sales:     make(map[string]entity.Sale),
		saleLines: make(map[string][]entity.SaleLine),
		invoices:  make(map[string]entity.Invoice),
		users:     make(map[string]entity.User),
	}
}

func (s *Store) Companies() repository.CompanyRepository       { return &companyRepo{s} }
func (s *Store) Customers() repository.CustomerRepository      { return &customerRepo{s} }
func (s *Store) Products() repository.ProductRepository        { return &productRepo{s} }
func (s *Store) PointsOfSale() repository.PointOfSaleRepository { return &posRepo{s} }
func (s *Store) Sequences() repository.PosSequenceRepository   { return &sequenceRepo{s} }
func (s *Store) Sales() repository.SaleRepository              { return &saleRepo{s: s} }
func (s *Store) Invoices() repository.InvoiceRepository        { return &invoiceRepo{s: s} }
func (s *Store) Users() repository.UserRepository              { return &userRepo{s} }

// RunBilling ejecuta fn con los repositorios de venta y comprobante. Las llamadas se
// serializan. Si fn falla se restauran solo las ventas y comprobantes que fn escribió.
func (s *Store) RunBilling(ctx context.Context, fn func(repository.SaleRepository, repository.InvoiceRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &billingTx{sales: make(map[string]savedSale), invoices: make(map[string]struct{})}
	if err := fn(&saleRepo{s: s, tx: tx}, &invoiceRepo{s: s, tx: tx}); err != nil {
		s.mu.Lock()
		tx.rollback(s)
		s.mu.Unlock()
		return err
	}
	return nil
}

// billingTx guarda el valor previo de cada venta escrita y los comprobantes creados.
// Se accede con Store.mu tomado.
type billingTx struct {
	sales    map[string]savedSale
	invoices map[string]struct{}
}

type savedSale struct {
	header entity.Sale
	lines  []entity.SaleLine
	exists bool
}

func (tx *billingTx) recordSale(s *Store, id string) {
	if tx == nil {
		return
	}
	if _, seen := tx.sales[id]; seen {
		return
	}
	header, ok := s.sales[id]
	tx.sales[id] = savedSale{header: header, lines: append([]entity.SaleLine(nil), s.saleLines[id]...), exists: ok}
}

func (tx *billingTx) recordInvoice(id string) {
	if tx != nil {
		tx.invoices[id] = struct{}{}
	}
}

func (tx *billingTx) rollback(s *Store) {
	for id, saved := range tx.sales {
		if !saved.exists {
			delete(s.sales, id)
			delete(s.saleLines, id)
			continue
		}
		s.sales[id] = saved.header
		s.saleLines[id] = saved.lines
	}
	for id := range tx.invoices {
		delete(s.invoices, id)
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- Company ---

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.companies {
		if existing.CUIT == c.CUIT {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *companyRepo) GetByCUIT(_ context.Context, cuit string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.companies {
		if c.CUIT == cuit {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// --- Customer ---

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) GetByCompanyAndVATNumber(_ context.Context, companyID, vatNumber string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && c.VATNumber != "" && c.VATNumber == vatNumber {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Customer, 0)
	for _, c := range r.s.customers {
		if c.CompanyID == companyID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

// --- Product ---

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.ID == p.ID || (existing.CompanyID == p.CompanyID && strings.EqualFold(existing.SKU, p.SKU)) {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.CompanyID == companyID && strings.EqualFold(p.SKU, sku) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

// --- PointOfSale / PosSequence ---

type posRepo struct{ s *Store }

func (r *posRepo) Create(_ context.Context, p *entity.PointOfSale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.pos {
		if existing.ID == p.ID || (existing.CompanyID == p.CompanyID && existing.Number == p.Number) {
			return domain.ErrDuplicate
		}
	}
	r.s.pos[p.ID] = *p
	return nil
}

func (r *posRepo) GetByID(_ context.Context, id string) (*entity.PointOfSale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *posRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.PointOfSale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PointOfSale, 0)
	for _, p := range r.s.pos {
		if p.CompanyID == companyID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type sequenceRepo struct{ s *Store }

// Create no impide duplicar (punto de venta, tipo): esa configuración es la que
// detecta la resolución de secuencias como ambigua.
func (r *sequenceRepo) Create(_ context.Context, seq *entity.PosSequence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sequences[seq.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sequences[seq.ID] = *seq
	return nil
}

func (r *sequenceRepo) GetByID(_ context.Context, id string) (*entity.PosSequence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seq, ok := r.s.sequences[id]
	if !ok {
		return nil, nil
	}
	return &seq, nil
}

func (r *sequenceRepo) FindByPosAndInvoiceType(_ context.Context, posID, invoiceType string) ([]*entity.PosSequence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PosSequence, 0, 1)
	for _, seq := range r.s.sequences {
		if seq.PosID == posID && seq.InvoiceType == invoiceType {
			seq := seq
			out = append(out, &seq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *sequenceRepo) ListByPos(_ context.Context, posID string) ([]*entity.PosSequence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PosSequence, 0)
	for _, seq := range r.s.sequences {
		if seq.PosID == posID {
			seq := seq
			out = append(out, &seq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceType < out[j].InvoiceType })
	return out, nil
}

// --- Sale ---

// saleRepo con tx != nil registra lo que escribe para RunBilling.
type saleRepo struct {
	s  *Store
	tx *billingTx
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.tx.recordSale(r.s, sale.ID)
	header := *sale
	header.Lines = nil
	r.s.sales[sale.ID] = header
	lines := make([]entity.SaleLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		lines = append(lines, *l)
	}
	r.s.saleLines[sale.ID] = lines
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	stored := r.s.saleLines[id]
	sale.Lines = make([]*entity.SaleLine, 0, len(stored))
	for i := range stored {
		l := stored[i]
		sale.Lines = append(sale.Lines, &l)
	}
	sort.SliceStable(sale.Lines, func(i, j int) bool { return sale.Lines[i].Sequence < sale.Lines[j].Sequence })
	return &sale, nil
}

// Update no cambia el estado; para eso está TransitionState.
func (r *saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.tx.recordSale(r.s, sale.ID)
	header := *sale
	header.Lines = nil
	header.State = stored.State
	r.s.sales[sale.ID] = header
	return nil
}

func (r *saleRepo) TransitionState(_ context.Context, id, from, to string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.State != from {
		return fmt.Errorf("%w: la venta %s está en estado %s", domain.ErrConflict, id, stored.State)
	}
	r.tx.recordSale(r.s, id)
	stored.State = to
	stored.UpdatedAt = at
	r.s.sales[id] = stored
	return nil
}

func (r *saleRepo) AddLine(_ context.Context, line *entity.SaleLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[line.SaleID]; !ok {
		return domain.ErrNotFound
	}
	r.tx.recordSale(r.s, line.SaleID)
	r.s.saleLines[line.SaleID] = append(r.s.saleLines[line.SaleID], *line)
	return nil
}

func (r *saleRepo) DeleteLine(_ context.Context, saleID, lineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.saleLines[saleID]
	for i, l := range lines {
		if l.ID == lineID {
			r.tx.recordSale(r.s, saleID)
			r.s.saleLines[saleID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *saleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, sale := range r.s.sales {
		if sale.CompanyID == companyID {
			sale := sale
			out = append(out, &sale)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// --- Invoice ---

type invoiceRepo struct {
	s  *Store
	tx *billingTx
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	r.tx.recordInvoice(inv.ID)
	stored := *inv
	stored.Lines = make([]*entity.InvoiceLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		l := *l
		stored.Lines = append(stored.Lines, &l)
	}
	r.s.invoices[inv.ID] = stored
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (r *invoiceRepo) ListBySale(_ context.Context, saleID string) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range r.s.invoices {
		if inv.SaleID == saleID {
			out = append(out, copyInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func copyInvoice(inv entity.Invoice) *entity.Invoice {
	lines := make([]*entity.InvoiceLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		l := *l
		lines = append(lines, &l)
	}
	inv.Lines = lines
	return &inv
}

// --- User ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.CompanyID == companyID && strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
