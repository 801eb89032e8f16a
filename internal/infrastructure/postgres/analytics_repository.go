package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el resumen del dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountQuotesByStatus devuelve el número de cotizaciones agrupadas por estado.
func (r *AnalyticsRepo) CountQuotesByStatus() (map[string]int64, error) {
	const query = `SELECT status, COUNT(*) FROM quotes GROUP BY status`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountQuotesByStatus: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("analytics.CountQuotesByStatus scan: %w", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}

// UnpaidInvoiceTotalCents suma el total de facturas pending y overdue.
// COALESCE devuelve cero si no hay facturas sin cobrar.
func (r *AnalyticsRepo) UnpaidInvoiceTotalCents() (int64, error) {
	const query = `
		SELECT COALESCE(SUM(total_cents), 0)
		FROM invoices WHERE status IN ('pending', 'overdue')`
	var total int64
	if err := r.pool.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return 0, fmt.Errorf("analytics.UnpaidInvoiceTotalCents: %w", err)
	}
	return total, nil
}

// PaidInvoiceTotalCentsSince suma el total cobrado desde la fecha.
func (r *AnalyticsRepo) PaidInvoiceTotalCentsSince(since time.Time) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(total_cents), 0)
		FROM invoices WHERE status = 'paid' AND paid_date >= $1`
	var total int64
	if err := r.pool.QueryRow(context.Background(), query, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("analytics.PaidInvoiceTotalCentsSince: %w", err)
	}
	return total, nil
}

// TokensConsumedSince suma los tokens descontados desde la fecha.
func (r *AnalyticsRepo) TokensConsumedSince(since time.Time) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM token_usages WHERE used_at >= $1`
	var total int64
	if err := r.pool.QueryRow(context.Background(), query, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("analytics.TokensConsumedSince: %w", err)
	}
	return total, nil
}

// PendingApprovals cuenta usuarios, descuentos y gastos en estado pending,
// en una sola ida a la base.
func (r *AnalyticsRepo) PendingApprovals() (users, discounts, expenses int64, err error) {
	const query = `
		SELECT
		    (SELECT COUNT(*) FROM users             WHERE status = 'pending'),
		    (SELECT COUNT(*) FROM discount_requests WHERE status = 'pending'),
		    (SELECT COUNT(*) FROM expenses          WHERE status = 'pending')`
	err = r.pool.QueryRow(context.Background(), query).Scan(&users, &discounts, &expenses)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("analytics.PendingApprovals: %w", err)
	}
	return users, discounts, expenses, nil
}
