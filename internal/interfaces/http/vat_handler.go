package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/dto"
)

// VatHandler maneja declaraciones de IVA.
type VatHandler struct {
	uc *accounting.VatUseCase
}

// NewVatHandler construye el handler de declaraciones de IVA.
func NewVatHandler(uc *accounting.VatUseCase) *VatHandler {
	return &VatHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular IVA del período desde facturas pagadas y gastos aprobados
// @Tags         vat-returns
// @Produce      json
// @Param        period_start  query  string  true  "YYYY-MM-DD"
// @Param        period_end    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.VatCalculationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/vat-returns/calculate [get]
func (h *VatHandler) Calculate(c *fiber.Ctx) error {
	start := c.Query("period_start")
	end := c.Query("period_end")
	if start == "" || end == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period_start y period_end son requeridos"})
	}
	calc, err := h.uc.Calculate(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(calc)
}

// Create abre una declaración en draft (importes autocalculados si faltan).
func (h *VatHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVatReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vr, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vr)
}

// GetByID obtiene una declaración.
func (h *VatHandler) GetByID(c *fiber.Ctx) error {
	vr, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vr)
}

// List lista declaraciones con paginación.
func (h *VatHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	vrs, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vrs)
}

// Update edita importes en draft o avanza el estado (draft→submitted→paid).
func (h *VatHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVatReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vr, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vr)
}
