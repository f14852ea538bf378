package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
)

// errorMapping asocia un error de dominio a status y código de la respuesta.
type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: los errores de clasificación van antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrMissingSequence, fiber.StatusUnprocessableEntity, "MISSING_SEQUENCE"},
	{domain.ErrAmbiguousSequence, fiber.StatusUnprocessableEntity, "AMBIGUOUS_SEQUENCE"},
	{domain.ErrUnknownInvoiceLetter, fiber.StatusInternalServerError, "UNKNOWN_INVOICE_LETTER"},
	{domain.ErrSaleNotDraft, fiber.StatusConflict, "SALE_NOT_DRAFT"},
	{domain.ErrEmptySale, fiber.StatusUnprocessableEntity, "EMPTY_SALE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError traduce err a la respuesta HTTP. Lo no mapeado es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pageFromQuery lee limit/offset con los topes de la API (1..100).
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 100 {
		page.Limit = 100
	}
	page.DefaultPage()
	return page
}
