package entity

import "time"

// Product representa una entrada del catálogo comercial.
// Los montos se guardan en centavos (InternalCostCents, PriceCents).
type Product struct {
	ID                string
	CategoryID        string // vacío si no tiene categoría
	SKU               string // código único
	Name              string
	Description       string
	InternalCostCents int64
	PriceCents        int64
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
