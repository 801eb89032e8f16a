package dto

import "time"

// CreatePlanRequest body para POST /api/plans.
type CreatePlanRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	TokenAmount int64  `json:"token_amount"`
	Active      *bool  `json:"active,omitempty"`
}

// PlanResponse plan en respuestas.
type PlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	TokenAmount int64  `json:"token_amount"`
	Active      bool   `json:"active"`
}

// CreateSubscriptionRequest body para POST /api/subscriptions.
type CreateSubscriptionRequest struct {
	UserID    string `json:"user_id"`
	PlanID    string `json:"plan_id"`
	AutoRenew bool   `json:"auto_renew"`
}

// SubscriptionResponse suscripción en respuestas.
type SubscriptionResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PlanID       string    `json:"plan_id"`
	Status       string    `json:"status"`
	TokenBalance int64     `json:"token_balance"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	AutoRenew    bool      `json:"auto_renew"`
}

// DeductTokensRequest body para POST /api/token-usage.
type DeductTokensRequest struct {
	SubscriptionID string `json:"subscription_id"`
	Amount         int64  `json:"amount"`
	Description    string `json:"description"`
}

// TopUpRequest body para POST /api/subscriptions/:id/topup (solo admin).
type TopUpRequest struct {
	Amount int64 `json:"amount"`
}

// TokenUsageResponse fila del log de consumo.
type TokenUsageResponse struct {
	ID             string    `json:"id"`
	SubscriptionID string    `json:"subscription_id"`
	Amount         int64     `json:"amount"`
	Description    string    `json:"description"`
	UsedAt         time.Time `json:"used_at"`
}
