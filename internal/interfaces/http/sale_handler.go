package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/application/sales"
)

// SaleHandler ventas en borrador, su clasificación y la generación del comprobante.
type SaleHandler struct {
	uc        *sales.SaleUseCase
	invoiceUC *billing.CreateInvoiceUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, invoiceUC *billing.CreateInvoiceUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, invoiceUC: invoiceUC}
}

// Create godoc
// @Summary      Crear venta en borrador
// @Description  Sin pos_id se usa el punto de venta por defecto. Con cliente y punto de venta la venta queda clasificada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente y punto de venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/sales?limit=&offset=
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea a la venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.AddSaleLineRequest  true  "Producto o texto, cantidad y precio"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/lines [post]
func (h *SaleHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddSaleLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLine(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine DELETE /api/sales/:id/lines/:lineId
func (h *SaleHandler) RemoveLine(c *fiber.Ctx) error {
	out, err := h.uc.RemoveLine(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeParty godoc
// @Summary      Cambiar cliente de la venta
// @Description  Recalcula la clasificación. Solo en borrador. Si no hay secuencia para el tipo resultante responde 422 y no guarda el cambio.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.ChangeSalePartyRequest  true  "Cliente (vacío = quitar)"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/party [put]
func (h *SaleHandler) ChangeParty(c *fiber.Ctx) error {
	var in dto.ChangeSalePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeParty(c.UserContext(), GetCompanyID(c), c.Params("id"), in.CustomerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePos godoc
// @Summary      Cambiar punto de venta de la venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.ChangeSalePosRequest  true  "Punto de venta (vacío = quitar)"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pos [put]
func (h *SaleHandler) ChangePos(c *fiber.Ctx) error {
	var in dto.ChangeSalePosRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangePos(c.UserContext(), GetCompanyID(c), c.Params("id"), in.PosID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm POST /api/sales/:id/confirm
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateInvoice godoc
// @Summary      Generar comprobante de la venta
// @Description  La venta debe estar confirmada. El comprobante copia punto de venta y secuencia, y calcula concepto y período facturado.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/invoice [post]
func (h *SaleHandler) CreateInvoice(c *fiber.Ctx) error {
	out, err := h.invoiceUC.CreateInvoice(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
