package policy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/policy"
)

// ── Matriz de capacidades ─────────────────────────────────────────────────────

func TestCan_MatrizDeRoles(t *testing.T) {
	cases := []struct {
		role   string
		action policy.Action
		want   bool
	}{
		{entity.RoleAdmin, policy.ActionManageUsers, true},
		{entity.RoleAdmin, policy.ActionDecideDiscount, true},
		{entity.RoleSales, policy.ActionCreateQuote, true},
		{entity.RoleSales, policy.ActionDecideDiscount, false},
		{entity.RoleSales, policy.ActionManageUsers, false},
		{entity.RoleSales, policy.ActionApproveExpense, false},
		{entity.RoleFinance, policy.ActionApproveExpense, true},
		{entity.RoleFinance, policy.ActionManageVat, true},
		{entity.RoleFinance, policy.ActionCreateQuote, false},
		{entity.RoleCustomer, policy.ActionCreateQuote, false},
		{entity.RoleCustomer, policy.ActionViewDashboard, false},
		{"desconocido", policy.ActionViewDashboard, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Can(tc.role, tc.action),
			"rol %q acción %q", tc.role, tc.action)
	}
}

// ── Transiciones de cotización ────────────────────────────────────────────────

func TestCanSetQuoteStatus_ClienteSoloAceptaORechazaLoSuyo(t *testing.T) {
	q := &entity.Quote{ID: "q1", UserID: "cliente-1", Status: entity.QuoteStatusPending}

	assert.True(t, policy.CanSetQuoteStatus(entity.RoleCustomer, "cliente-1", q, entity.QuoteStatusAccepted))
	assert.True(t, policy.CanSetQuoteStatus(entity.RoleCustomer, "cliente-1", q, entity.QuoteStatusRejected))

	assert.False(t, policy.CanSetQuoteStatus(entity.RoleCustomer, "cliente-1", q, entity.QuoteStatusExpired),
		"un cliente no puede marcar expired")
	assert.False(t, policy.CanSetQuoteStatus(entity.RoleCustomer, "cliente-1", q, entity.QuoteStatusPending))
	assert.False(t, policy.CanSetQuoteStatus(entity.RoleCustomer, "otro-cliente", q, entity.QuoteStatusAccepted),
		"un cliente no puede decidir cotizaciones ajenas")
}

func TestCanSetQuoteStatus_StaffPuedeForzar(t *testing.T) {
	q := &entity.Quote{ID: "q1", UserID: "cliente-1", Status: entity.QuoteStatusPending}
	assert.True(t, policy.CanSetQuoteStatus(entity.RoleAdmin, "admin-1", q, entity.QuoteStatusExpired))
	assert.True(t, policy.CanSetQuoteStatus(entity.RoleSales, "sales-1", q, entity.QuoteStatusExpired))
	assert.False(t, policy.CanSetQuoteStatus(entity.RoleFinance, "fin-1", q, entity.QuoteStatusExpired),
		"finance no gestiona cotizaciones")
}

// ── Política de descuentos ────────────────────────────────────────────────────

func TestNormalizeDiscountPercent(t *testing.T) {
	pct := policy.NormalizeDiscountPercent(1500, 10000)
	assert.True(t, pct.Equal(decimal.NewFromInt(15)), "1500/10000 = 15%%, fue %s", pct)

	assert.True(t, policy.NormalizeDiscountPercent(100, 0).IsZero(), "subtotal cero no divide")
	assert.True(t, policy.NormalizeDiscountPercent(0, 10000).IsZero())
}

func TestExceedsLimit(t *testing.T) {
	limit := decimal.NewFromInt(10)

	assert.True(t, policy.ExceedsLimit(entity.RoleSales, limit, decimal.NewFromInt(15)),
		"15%% supera el límite de 10%% de un vendedor")
	assert.False(t, policy.ExceedsLimit(entity.RoleSales, limit, decimal.NewFromInt(10)),
		"el límite es inclusivo")
	assert.False(t, policy.ExceedsLimit(entity.RoleAdmin, limit, decimal.NewFromInt(99)),
		"admin no tiene límite de descuento")
}
