package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/dto"
)

// AccountHandler maneja el plan de cuentas y su historial.
type AccountHandler struct {
	uc *accounting.AccountUseCase
}

// NewAccountHandler construye el handler de cuentas contables.
func NewAccountHandler(uc *accounting.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create da de alta una cuenta con saldo cero.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	account, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

// GetByID obtiene una cuenta.
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	account, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(account)
}

// List lista el plan de cuentas.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(accounts)
}

// ListTransactions lista el historial de apuntes de una cuenta.
func (h *AccountHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	txs, err := h.uc.ListTransactions(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}
