package entity

import "time"

// Plan representa un plan de suscripción con precio en centavos y una
// asignación de tokens por período.
type Plan struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	TokenAmount int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
