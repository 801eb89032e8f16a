package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/dto"
)

// ExpenseHandler maneja gastos y su flujo de aprobación.
type ExpenseHandler struct {
	uc *accounting.ExpenseUseCase
}

// NewExpenseHandler construye el handler de gastos.
func NewExpenseHandler(uc *accounting.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create registra un gasto pendiente.
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// GetByID obtiene un gasto.
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	expense, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}

// List lista gastos, opcionalmente por estado (?status=pending).
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	expenses, err := h.uc.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expenses)
}

// Update edita un gasto pendiente.
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}

// Delete elimina un gasto pendiente.
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve aprueba un gasto y publica el apunte contable.
func (h *ExpenseHandler) Approve(c *fiber.Ctx) error {
	expense, err := h.uc.Approve(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}

// Reject rechaza un gasto pendiente.
func (h *ExpenseHandler) Reject(c *fiber.Ctx) error {
	expense, err := h.uc.Reject(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}
