package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/application/usecase"
)

// PointOfSaleHandler puntos de venta AFIP y sus secuencias.
type PointOfSaleHandler struct {
	uc *usecase.PointOfSaleUseCase
}

// NewPointOfSaleHandler construye el handler.
func NewPointOfSaleHandler(uc *usecase.PointOfSaleUseCase) *PointOfSaleHandler {
	return &PointOfSaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear punto de venta
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePointOfSaleRequest  true  "Número y nombre"
// @Success      201   {object}  dto.PointOfSaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos [post]
func (h *PointOfSaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePointOfSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Punto de venta con sus secuencias
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del punto de venta"
// @Success      200  {object}  dto.PointOfSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/{id} [get]
func (h *PointOfSaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/pos
func (h *PointOfSaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddSequence godoc
// @Summary      Configurar secuencia de comprobante
// @Description  Por letra (A/B/C/E, toma el código de factura de venta) o por código AFIP.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del punto de venta"
// @Param        body  body  dto.CreatePosSequenceRequest  true  "Letra o código"
// @Success      201   {object}  dto.PosSequenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/{id}/sequences [post]
func (h *PointOfSaleHandler) AddSequence(c *fiber.Ctx) error {
	var in dto.CreatePosSequenceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddSequence(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
