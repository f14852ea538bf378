// Package pdf genera la representación impresa de los comprobantes AFIP
// (RG 1415: letra y código de comprobante en el centro del encabezado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMISOR: Razón social  │ LETRA │  FACTURA / Pto.Vta - Nro   │
//	│  CUIT + Cond. IVA      │ COD.  │  Fecha de emisión           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Concepto + Período facturado (servicios)                   │
//	│  RECEPTOR: Nombre + CUIT + Cond. IVA                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal         │
//	│  TOTALES                                                     │
//	│  PIE: estado de autorización (CAE)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Company == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(doc), true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(conceptRow(inv))
	m.AddRows(receptorRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(inv.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq), letra + código (centro), tipo, número y fecha (der).
func headerRow(doc *billing.InvoiceDocument) core.Row {
	inv, company := doc.Invoice, doc.Company
	letter := nonEmpty(inv.Letter, "X")
	code := "SIN TIPO"
	if inv.InvoiceType != "" {
		code = "COD. " + padCode(inv.InvoiceType)
	}

	return row.New(26).Add(
		col.New(5).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+company.CUIT, props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New(afip.IVAConditionLabel(company.IVACondition), props.Text{Size: 8, Top: 14, Color: colorGray}),
			text.New(nonEmpty(company.Address, "—"), props.Text{Size: 8, Top: 19, Color: colorGray}),
		),
		col.New(2).Add(
			text.New(letter, props.Text{
				Style: fontstyle.Bold, Size: 28, Align: align.Center, Top: 1,
			}),
			text.New(code, props.Text{Size: 7, Align: align.Center, Top: 15}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(documentTitle(doc)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Punto de Venta: %05d   Comp. Nro: %08d", inv.PosNumber, inv.Number), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Fecha de Emisión: "+inv.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// conceptRow: concepto y, para servicios, período facturado.
func conceptRow(inv *entity.Invoice) core.Row {
	concept := nonEmpty(afip.ConceptDescription(inv.Concept), "—")
	period := ""
	if inv.HasBillingPeriod() {
		period = fmt.Sprintf("Período Facturado Desde: %s   Hasta: %s",
			inv.BillingStart.Format("02/01/2006"), inv.BillingEnd.Format("02/01/2006"))
	}
	return row.New(8).Add(
		col.New(4).Add(text.New("Concepto: "+concept, props.Text{Size: 8, Top: 2})),
		col.New(8).Add(text.New(period, props.Text{Size: 8, Top: 2, Align: align.Right})),
	)
}

// receptorRow: datos del comprador.
func receptorRow(customer *entity.Customer) core.Row {
	if customer == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("RECEPTOR: sin datos", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		))
	}
	id := "CUIT: " + nonEmpty(customer.VATNumber, "—")
	if customer.HasForeignVATID() && customer.VATNumber == "" {
		id = "Id. exterior: " + customer.ForeignVATNumber
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Condición frente al IVA: %s",
				id, nonEmpty(afip.IVAConditionLabel(customer.IVACondition), "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(lines []*entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$ "+formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.TaxRate.Mul(decimal.NewFromInt(100)).String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$ "+formatMoney(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: en comprobantes A se discrimina el IVA; en B, C y E solo el total.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}
		if grand {
			p.Size, p.Color, p.Top = 10, colorPrimary, 12
		}
		return text.New(s, p)
	}
	value := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, p)
	}

	labels := col.New(3)
	values := col.New(3)
	if inv.Letter == afip.LetterA {
		labels.Add(label("Importe Neto Gravado:", false), text.New("IVA:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
		}))
		values.Add(value("$ "+formatMoney(inv.NetTotal), 0, false), value("$ "+formatMoney(inv.TaxTotal), 6, false))
	}
	labels.Add(label("Importe Total:", true))
	values.Add(value("$ "+formatMoney(inv.GrandTotal), 12, true))

	return row.New(20).Add(col.New(6), labels, values)
}

// footerRows: el número y el CAE los asigna el proceso de autorización.
func footerRows(doc *billing.InvoiceDocument) []core.Row {
	msg := "Comprobante pendiente de autorización AFIP (sin CAE)."
	if doc.Invoice.State == entity.InvoiceStatePosted {
		msg = "Comprobante autorizado por AFIP."
	}
	if doc.Environment == afip.EnvironmentHomologacion {
		msg += " Emitido en ambiente de homologación: sin validez fiscal."
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(msg, props.Text{Size: 7, Color: colorGray, Top: 2}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(doc *billing.InvoiceDocument) string {
	if doc.InvoiceTypeDesc != "" {
		// "06-Factura B" -> "Factura B"
		if _, desc, ok := strings.Cut(doc.InvoiceTypeDesc, "-"); ok {
			return desc
		}
		return doc.InvoiceTypeDesc
	}
	return "Comprobante"
}

// padCode completa el código AFIP a dos dígitos ("6" -> "06").
func padCode(code string) string {
	if len(code) < 2 {
		return strings.Repeat("0", 2-len(code)) + code
	}
	return code
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato argentino: miles con punto y dos decimales con coma.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
