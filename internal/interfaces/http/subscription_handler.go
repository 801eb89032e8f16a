package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/application/subscription"
)

// SubscriptionHandler maneja planes, suscripciones y el ledger de tokens.
type SubscriptionHandler struct {
	uc *subscription.UseCase
}

// NewSubscriptionHandler construye el handler de suscripciones.
func NewSubscriptionHandler(uc *subscription.UseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// CreatePlan da de alta un plan (solo admin, restringido en el router).
func (h *SubscriptionHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.uc.CreatePlan(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// UpdatePlan actualiza un plan.
func (h *SubscriptionHandler) UpdatePlan(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.uc.UpdatePlan(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// ListPlans lista planes (los clientes solo ven activos).
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.uc.ListPlans(c.UserContext(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

// Subscribe da de alta una suscripción con el saldo completo del plan.
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.Subscribe(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetSubscription obtiene una suscripción (los clientes solo ven las propias).
func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	sub, err := h.uc.GetSubscription(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// ListSubscriptions lista suscripciones con paginación.
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	subs, err := h.uc.ListSubscriptions(c.UserContext(), GetUserID(c), GetRole(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subs)
}

// DeductTokens godoc
// @Summary      Descontar tokens del saldo (atómico, nunca negativo)
// @Tags         token-usage
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductTokensRequest  true  "suscripción, cantidad, descripción"
// @Success      201   {object}  dto.TokenUsageResponse
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/token-usage [post]
func (h *SubscriptionHandler) DeductTokens(c *fiber.Ctx) error {
	var in dto.DeductTokensRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	usage, err := h.uc.DeductTokens(c.UserContext(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usage)
}

// TopUp acredita tokens (solo admin; sin apunte en el log de consumo).
func (h *SubscriptionHandler) TopUp(c *fiber.Ctx) error {
	var in dto.TopUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.TopUp(c.UserContext(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// ListUsage lista el historial de consumo de una suscripción.
func (h *SubscriptionHandler) ListUsage(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	usages, err := h.uc.ListUsage(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usages)
}
