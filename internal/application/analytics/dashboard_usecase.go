package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/policy"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen agregado para la pantalla inicial del staff.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary devuelve el resumen de los últimos 30 días más los contadores de
// aprobaciones pendientes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actorRole string) (*dto.DashboardSummaryDTO, error) {
	if !policy.Can(actorRole, policy.ActionViewDashboard) {
		return nil, domain.ErrForbidden
	}
	since := time.Now().AddDate(0, 0, -30)

	quotes, err := uc.analyticsRepo.CountQuotesByStatus()
	if err != nil {
		return nil, err
	}
	unpaid, err := uc.analyticsRepo.UnpaidInvoiceTotalCents()
	if err != nil {
		return nil, err
	}
	revenue, err := uc.analyticsRepo.PaidInvoiceTotalCentsSince(since)
	if err != nil {
		return nil, err
	}
	tokens, err := uc.analyticsRepo.TokensConsumedSince(since)
	if err != nil {
		return nil, err
	}
	users, discounts, expenses, err := uc.analyticsRepo.PendingApprovals()
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		QuotesByStatus:        quotes,
		UnpaidInvoiceCents:    unpaid,
		RevenueLast30dCents:   revenue,
		TokensConsumedLast30d: tokens,
		PendingUsers:          users,
		PendingDiscounts:      discounts,
		PendingExpenses:       expenses,
	}, nil
}
