package entity

import "time"

// Estados válidos para Subscription.
const (
	SubscriptionStatusPending = "pending"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Subscription representa la suscripción de un usuario a un Plan.
// TokenBalance inicia en plan.TokenAmount y solo lo muta el descuento del
// ledger; nunca puede quedar negativo.
type Subscription struct {
	ID           string
	UserID       string
	PlanID       string
	Status       string // pending, active, expired
	TokenBalance int64
	PeriodStart  time.Time
	PeriodEnd    time.Time
	AutoRenew    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
