package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/application/quoting"
)

// DiscountHandler maneja la cola de aprobación de descuentos.
type DiscountHandler struct {
	uc *quoting.DiscountUseCase
}

// NewDiscountHandler construye el handler de solicitudes de descuento.
func NewDiscountHandler(uc *quoting.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Create registra una solicitud explícita (porcentaje XOR monto, con motivo).
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetByID obtiene una solicitud.
func (h *DiscountHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// List lista solicitudes, opcionalmente por estado (?status=pending).
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	reqs, err := h.uc.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reqs)
}

// Approve godoc
// @Summary      Aprobar una solicitud pendiente (recalcula la cotización)
// @Tags         discount-requests
// @Produce      json
// @Param        id    path  string                     true  "ID de la solicitud"
// @Param        body  body  dto.DecideDiscountRequest  false "notas de decisión"
// @Success      200   {object}  dto.DiscountRequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/discount-requests/{id}/approve [put]
func (h *DiscountHandler) Approve(c *fiber.Ctx) error {
	var in dto.DecideDiscountRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Approve(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// Reject rechaza una solicitud pendiente; la cotización queda intacta.
func (h *DiscountHandler) Reject(c *fiber.Ctx) error {
	var in dto.DecideDiscountRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Reject(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}
