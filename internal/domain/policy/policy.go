// Package policy centraliza la autorización por capacidades: una sola función
// Can(actor, acción, recurso) en lugar de comparaciones de strings de rol
// repetidas por handler.
package policy

import (
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Action es una capacidad del sistema.
type Action string

// Capacidades conocidas.
const (
	ActionManageUsers      Action = "users.manage"       // aprobar, suspender, cambiar rol, resetear password
	ActionManageCatalog    Action = "catalog.manage"     // productos y categorías
	ActionCreateQuote      Action = "quotes.create"
	ActionForceQuoteStatus Action = "quotes.force_status" // cualquier transición, incl. expired
	ActionDecideDiscount   Action = "discounts.decide"
	ActionManageInvoices   Action = "invoices.manage" // crear, marcar pagada/vencida
	ActionManagePlans      Action = "plans.manage"
	ActionTopUpTokens      Action = "subscriptions.topup"
	ActionApproveExpense   Action = "expenses.approve"
	ActionManageVat        Action = "vat.manage"
	ActionManageAccounts   Action = "accounts.manage"
	ActionViewDashboard    Action = "dashboard.view"
)

// capabilities asigna a cada rol sus capacidades. Variantes etiquetadas en un
// solo lugar: cambiar permisos es editar este mapa, no tocar handlers.
var capabilities = map[string]map[Action]bool{
	entity.RoleAdmin: {
		ActionManageUsers:      true,
		ActionManageCatalog:    true,
		ActionCreateQuote:      true,
		ActionForceQuoteStatus: true,
		ActionDecideDiscount:   true,
		ActionManageInvoices:   true,
		ActionManagePlans:      true,
		ActionTopUpTokens:      true,
		ActionApproveExpense:   true,
		ActionManageVat:        true,
		ActionManageAccounts:   true,
		ActionViewDashboard:    true,
	},
	entity.RoleSales: {
		ActionManageCatalog:    true,
		ActionCreateQuote:      true,
		ActionForceQuoteStatus: true,
		ActionManageInvoices:   true,
		ActionViewDashboard:    true,
	},
	entity.RoleFinance: {
		ActionManageInvoices: true,
		ActionApproveExpense: true,
		ActionManageVat:      true,
		ActionManageAccounts: true,
		ActionViewDashboard:  true,
	},
	entity.RoleCustomer: {},
}

// Can responde si el rol tiene la capacidad.
func Can(role string, action Action) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}

// CanSetQuoteStatus decide si un actor puede llevar una cotización al estado
// destino. El cliente dueño solo puede aceptar o rechazar su cotización
// pendiente; el staff puede forzar cualquier transición.
func CanSetQuoteStatus(role, actorID string, quote *entity.Quote, newStatus string) bool {
	if Can(role, ActionForceQuoteStatus) {
		return true
	}
	if role != entity.RoleCustomer || quote.UserID != actorID {
		return false
	}
	return newStatus == entity.QuoteStatusAccepted || newStatus == entity.QuoteStatusRejected
}

// NormalizeDiscountPercent normaliza un descuento de monto fijo (centavos) a
// su porcentaje equivalente contra el subtotal. Subtotal cero → 0%.
func NormalizeDiscountPercent(discountCents, subtotalCents int64) decimal.Decimal {
	if subtotalCents <= 0 || discountCents <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(discountCents).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(subtotalCents)).
		Round(2)
}

// ExceedsLimit responde si el porcentaje solicitado supera el límite de
// descuento del solicitante. Un admin nunca está limitado.
func ExceedsLimit(role string, limit, requestedPct decimal.Decimal) bool {
	if role == entity.RoleAdmin {
		return false
	}
	return requestedPct.GreaterThan(limit)
}
