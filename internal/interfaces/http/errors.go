package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Centralizado para
// que todos los handlers respondan igual: validación y conflictos → 400 con
// lista de mensajes, autorización → 401/403, referencias rotas → 404.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: ve.Messages})
	}
	if re, ok := domain.AsRateNotFoundError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: re.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "acceso denegado para este rol"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "usuario no encontrado"})
	case errors.Is(err, domain.ErrParcelNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "paquete no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
}

// badBody respuesta estándar para cuerpos que no parsean.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
}

// pathID extrae el parámetro :id como int64; (0, false) si no es numérico.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// badID respuesta estándar para un :id no numérico. El recurso identificado
// por un id malformado no existe, así que responde 404.
func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "id inválido"})
}
