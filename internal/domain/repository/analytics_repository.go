package repository

import "time"

// AnalyticsRepository define consultas agregadas read-only para el dashboard.
type AnalyticsRepository interface {
	// CountQuotesByStatus devuelve el número de cotizaciones por estado.
	CountQuotesByStatus() (map[string]int64, error)
	// UnpaidInvoiceTotalCents suma el total de facturas pending + overdue.
	UnpaidInvoiceTotalCents() (int64, error)
	// PaidInvoiceTotalCentsSince suma el total cobrado desde la fecha.
	PaidInvoiceTotalCentsSince(since time.Time) (int64, error)
	// TokensConsumedSince suma los tokens descontados desde la fecha.
	TokensConsumedSince(since time.Time) (int64, error)
	// PendingApprovals cuenta usuarios, descuentos y gastos en estado pending.
	PendingApprovals() (users, discounts, expenses int64, err error)
}
