package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/analytics"
)

// DashboardHandler expone el resumen agregado para el staff.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve cotizaciones por estado, cartera, ingresos y consumo de
// tokens de los últimos 30 días más las aprobaciones pendientes.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
