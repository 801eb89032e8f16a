package dto

// DashboardSummaryDTO resumen para la pantalla inicial del staff.
type DashboardSummaryDTO struct {
	QuotesByStatus        map[string]int64 `json:"quotes_by_status"`
	UnpaidInvoiceCents    int64            `json:"unpaid_invoice_cents"`
	RevenueLast30dCents   int64            `json:"revenue_last_30d_cents"`
	TokensConsumedLast30d int64            `json:"tokens_consumed_last_30d"`
	PendingUsers          int64            `json:"pending_users"`
	PendingDiscounts      int64            `json:"pending_discounts"`
	PendingExpenses       int64            `json:"pending_expenses"`
}
