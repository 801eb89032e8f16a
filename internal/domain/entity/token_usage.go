package entity

import "time"

// TokenUsage es una fila de auditoría append-only: un registro por descuento
// de tokens. Nunca se actualiza ni se borra.
type TokenUsage struct {
	ID             string
	SubscriptionID string
	Amount         int64
	Description    string
	UsedAt         time.Time
}
