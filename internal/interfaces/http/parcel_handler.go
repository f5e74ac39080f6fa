package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/usecase"
)

// ParcelHandler maneja las peticiones HTTP para Parcel (protegido).
type ParcelHandler struct {
	uc    *usecase.ParcelUseCase
	label usecase.LabelPDFGenerator
}

// NewParcelHandler construye el handler.
func NewParcelHandler(uc *usecase.ParcelUseCase, label usecase.LabelPDFGenerator) *ParcelHandler {
	return &ParcelHandler{uc: uc, label: label}
}

// Create godoc
// @Summary      Crear paquete (solo customer_service o admin)
// @Tags         parcels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateParcelRequest  true  "Datos del paquete; el costo se deriva de la tarifa de la ruta"
// @Success      201   {object}  dto.ParcelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /parcels [post]
func (h *ParcelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateParcelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar paquetes
// @Tags         parcels
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ParcelResponse
// @Router       /parcels [get]
func (h *ParcelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener paquete por ID
// @Tags         parcels
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del paquete"
// @Success      200  {object}  dto.ParcelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /parcels/{id} [get]
func (h *ParcelHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar paquete (solo campos permitidos)
// @Tags         parcels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "ID del paquete"
// @Param        body  body  object  true  "Campos a cambiar: description, status, vehicle_id, weight"
// @Success      200   {object}  dto.ParcelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /parcels/{id} [put]
func (h *ParcelHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var p usecase.Patch
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Patch(c.UserContext(), id, p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reprice godoc
// @Summary      Recalcular costo de envío con la tarifa vigente
// @Tags         parcels
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del paquete"
// @Success      200  {object}  dto.ParcelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /parcels/{id}/reprice [post]
func (h *ParcelHandler) Reprice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Reprice(c.UserContext(), GetRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Descargar etiqueta de envío en PDF
// @Tags         parcels
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del paquete"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /parcels/{id}/label [get]
func (h *ParcelHandler) Label(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	parcel, sender, recipient, route, err := h.uc.Entity(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, err := h.label.GenerateLabelPDF(c.UserContext(), parcel, sender, recipient, route)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiqueta-`+parcel.TrackingNumber+`.pdf"`)
	return c.Send(pdfBytes)
}

// Delete godoc
// @Summary      Borrar paquete (con cascada de asignaciones)
// @Tags         parcels
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del paquete"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /parcels/{id} [delete]
func (h *ParcelHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "paquete eliminado"})
}
