package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP y cuerpo dto.ErrorResponse.
// Los errores no reconocidos se registran y se responden como 500 sin detalles internos.
func respondError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	switch {
	case errors.As(err, &shortage):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: domain.ErrInsufficientStock.Error(),
			Details: shortage.Items,
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return errorJSON(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrNegativeStock):
		return errorJSON(c, fiber.StatusUnprocessableEntity, "NEGATIVE_STOCK", err)
	case errors.Is(err, domain.ErrInvalidPointAmount):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_POINT_AMOUNT", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrAlreadyReceived):
		return errorJSON(c, fiber.StatusConflict, "ALREADY_RECEIVED", err)
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", err)
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func errorJSON(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: clientMessage(err)})
}

// clientMessage quita el prefijo del sentinel ("entrada inválida: ...") cuando hay un detalle más útil.
func clientMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrInvalidInput.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
