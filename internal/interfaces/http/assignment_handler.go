package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/usecase"
)

// AssignmentHandler expone las asignaciones staff ↔ paquete por usuario.
type AssignmentHandler struct {
	uc *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// ParcelsForUser godoc
// @Summary      Paquetes asignados a un usuario de staff
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {array}   dto.ParcelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /assignments/{id} [get]
func (h *AssignmentHandler) ParcelsForUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.ParcelsForUser(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteForUser godoc
// @Summary      Borrar la asignación más antigua de un usuario (solo admin)
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) DeleteForUser(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.DeleteForUser(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "asignación eliminada"})
}
