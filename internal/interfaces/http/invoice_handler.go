package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
)

// InvoiceHandler consulta de comprobantes, PDF y request WSFE (protegido).
type InvoiceHandler struct {
	uc     *billing.CreateInvoiceUseCase
	pdfUC  *billing.PDFUseCase
	wsfeUC *billing.WSFEUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateInvoiceUseCase, pdfUC *billing.PDFUseCase, wsfeUC *billing.WSFEUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC, wsfeUC: wsfeUC}
}

// GetByID obtiene el detalle completo de un comprobante.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF del comprobante
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// WSFERequest godoc
// @Summary      Request FECAESolicitar del comprobante
// @Description  Devuelve el XML SOAP (WSFEv1) sin Token/Sign. 409 si el comprobante no tiene tipo AFIP.
// @Tags         invoices
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {string}  string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/wsfe [get]
func (h *InvoiceHandler) WSFERequest(c *fiber.Ctx) error {
	out, err := h.wsfeUC.BuildRequest(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
