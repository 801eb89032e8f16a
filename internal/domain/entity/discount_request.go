package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para DiscountRequest. Una solicitud decidida no puede
// volver a decidirse.
const (
	DiscountStatusPending  = "pending"
	DiscountStatusApproved = "approved"
	DiscountStatusRejected = "rejected"
)

// DiscountRequest se crea cuando el descuento deseado por un vendedor supera
// su DiscountLimit. Lleva porcentaje XOR monto fijo; la aprobación muta la
// cotización asociada, el rechazo la deja intacta.
type DiscountRequest struct {
	ID              string
	UserID          string // cliente beneficiario
	RequestedBy     string // staff que solicita
	ApprovedBy      string // admin que decide (vacío mientras pending)
	QuoteID         string // cotización objetivo (vacío si es descuento general)
	Status          string // pending, approved, rejected
	DiscountPercent decimal.Decimal // > 0 si la solicitud es porcentual
	DiscountCents   int64           // > 0 si la solicitud es de monto fijo
	Reason          string          // obligatorio
	DecisionNotes   string
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAmountBased indica si la solicitud es de monto fijo (centavos) en lugar
// de porcentaje.
func (d *DiscountRequest) IsAmountBased() bool {
	return d.DiscountCents > 0 && d.DiscountPercent.IsZero()
}
