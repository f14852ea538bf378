// Package wsfe arma los requests SOAP del Web Service de Factura Electrónica
// de AFIP (WSFEv1). El envío y la obtención del CAE quedan a cargo del proceso
// de autorización; acá solo se construye el XML.
package wsfe

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

const (
	NsSoap = "http://schemas.xmlsoap.org/soap/envelope/"
	NsFEV1 = "http://ar.gov.afip.dif.FEV1/"
)

// Tipos de documento del receptor (FEParamGetTiposDoc).
const (
	DocTipoCUIT         = 80
	DocTipoSinIdentific = 99
)

// Moneda: los comprobantes se emiten en pesos.
const (
	monIDPesos  = "PES"
	monCotizARS = "1"
)

// alicuotaIDs mapea la alícuota (fracción) al Id de FEParamGetTiposIva.
var alicuotaIDs = map[string]int{
	"0":     3,
	"0.105": 4,
	"0.21":  5,
	"0.27":  6,
	"0.05":  8,
	"0.025": 9,
}

var _ billing.WSFERequestBuilder = (*RequestBuilder)(nil)

// RequestBuilder implementa billing.WSFERequestBuilder con etree.
type RequestBuilder struct{}

// NewRequestBuilder crea el builder.
func NewRequestBuilder() *RequestBuilder { return &RequestBuilder{} }

// BuildFECAESolicitar genera el envelope SOAP con un único FECAEDetRequest.
// Token y Sign quedan vacíos: los completa quien tenga el ticket de acceso WSAA.
func (b *RequestBuilder) BuildFECAESolicitar(doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Company == nil {
		return nil, fmt.Errorf("wsfe: documento incompleto")
	}
	inv := doc.Invoice
	cbteTipo, err := strconv.Atoi(inv.InvoiceType)
	if err != nil {
		return nil, fmt.Errorf("wsfe: tipo de comprobante %q inválido", inv.InvoiceType)
	}
	// C y E no discriminan IVA: no se informan alícuotas.
	var ivas []alicuota
	if discriminatesIVA(inv.Letter) {
		if ivas, err = alicuotas(inv); err != nil {
			return nil, err
		}
	}

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := xdoc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", NsSoap)
	env.CreateAttr("xmlns:ar", NsFEV1)
	env.CreateElement("soapenv:Header")
	req := env.CreateElement("soapenv:Body").CreateElement("ar:FECAESolicitar")

	auth := req.CreateElement("ar:Auth")
	auth.CreateElement("ar:Token")
	auth.CreateElement("ar:Sign")
	auth.CreateElement("ar:Cuit").SetText(digits(doc.Company.CUIT))

	feReq := req.CreateElement("ar:FeCAEReq")
	cab := feReq.CreateElement("ar:FeCabReq")
	cab.CreateElement("ar:CantReg").SetText("1")
	cab.CreateElement("ar:PtoVta").SetText(strconv.Itoa(inv.PosNumber))
	cab.CreateElement("ar:CbteTipo").SetText(strconv.Itoa(cbteTipo))

	det := feReq.CreateElement("ar:FeDetReq").CreateElement("ar:FECAEDetRequest")
	docTipo, docNro := receptorDoc(doc.Customer)
	concept := inv.Concept
	if concept == afip.ConceptUndetermined {
		concept = afip.ConceptGoods
	}
	net, tax := inv.NetTotal, inv.TaxTotal
	if !discriminatesIVA(inv.Letter) {
		net, tax = inv.GrandTotal, decimal.Zero
	}

	det.CreateElement("ar:Concepto").SetText(concept)
	det.CreateElement("ar:DocTipo").SetText(strconv.Itoa(docTipo))
	det.CreateElement("ar:DocNro").SetText(docNro)
	det.CreateElement("ar:CbteDesde").SetText(strconv.FormatInt(inv.Number, 10))
	det.CreateElement("ar:CbteHasta").SetText(strconv.FormatInt(inv.Number, 10))
	det.CreateElement("ar:CbteFch").SetText(inv.Date.Format("20060102"))
	det.CreateElement("ar:ImpTotal").SetText(amount(inv.GrandTotal))
	det.CreateElement("ar:ImpTotConc").SetText(amount(decimal.Zero))
	det.CreateElement("ar:ImpNeto").SetText(amount(net))
	det.CreateElement("ar:ImpOpEx").SetText(amount(decimal.Zero))
	det.CreateElement("ar:ImpTrib").SetText(amount(decimal.Zero))
	det.CreateElement("ar:ImpIVA").SetText(amount(tax))
	if afip.RequiresServicePeriod(concept) && inv.HasBillingPeriod() {
		det.CreateElement("ar:FchServDesde").SetText(inv.BillingStart.Format("20060102"))
		det.CreateElement("ar:FchServHasta").SetText(inv.BillingEnd.Format("20060102"))
		det.CreateElement("ar:FchVtoPago").SetText(inv.Date.Format("20060102"))
	}
	det.CreateElement("ar:MonId").SetText(monIDPesos)
	det.CreateElement("ar:MonCotiz").SetText(monCotizARS)
	det.CreateElement("ar:CondicionIVAReceptorId").SetText(strconv.Itoa(receptorCondition(doc.Customer)))

	if len(ivas) > 0 {
		ivaEl := det.CreateElement("ar:Iva")
		for _, a := range ivas {
			al := ivaEl.CreateElement("ar:AlicIva")
			al.CreateElement("ar:Id").SetText(strconv.Itoa(a.id))
			al.CreateElement("ar:BaseImp").SetText(amount(a.base))
			al.CreateElement("ar:Importe").SetText(amount(a.tax))
		}
	}

	xdoc.Indent(2)
	var buf bytes.Buffer
	if _, err := xdoc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("wsfe: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

type alicuota struct {
	id   int
	base decimal.Decimal
	tax  decimal.Decimal
}

// alicuotas agrupa las líneas por alícuota, ordenadas por Id.
func alicuotas(inv *entity.Invoice) ([]alicuota, error) {
	byID := map[int]*alicuota{}
	for _, l := range inv.Lines {
		key := l.TaxRate.String()
		id, ok := alicuotaIDs[key]
		if !ok {
			return nil, fmt.Errorf("wsfe: alícuota de IVA %s sin código AFIP", key)
		}
		a, ok := byID[id]
		if !ok {
			a = &alicuota{id: id}
			byID[id] = a
		}
		a.base = a.base.Add(l.Subtotal)
		a.tax = a.tax.Add(l.TaxAmount)
	}
	out := make([]alicuota, 0, len(byID))
	for _, a := range byID {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

// discriminatesIVA: A y B informan el IVA; C (monotributo) y E no.
func discriminatesIVA(letter string) bool {
	return letter == afip.LetterA || letter == afip.LetterB
}

func receptorDoc(c *entity.Customer) (int, string) {
	if c != nil && afip.IsCUIT(c.VATNumber) {
		return DocTipoCUIT, digits(c.VATNumber)
	}
	return DocTipoSinIdentific, "0"
}

func receptorCondition(c *entity.Customer) int {
	if c == nil {
		return afip.IVAConditionID(afip.IVAConsumidorFinal)
	}
	return afip.IVAConditionID(c.IVACondition)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
