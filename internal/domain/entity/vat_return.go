package entity

import "time"

// Estados válidos para VatReturn.
const (
	VatReturnStatusDraft     = "draft"
	VatReturnStatusSubmitted = "submitted"
	VatReturnStatusPaid      = "paid"
)

// VatReturn representa una declaración de IVA de un período.
// NetVatCents = OutputVatCents - InputVatCents; los valores calculados pueden
// autocompletarse desde el período y editarse antes de presentar.
type VatReturn struct {
	ID             string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	DueDate        time.Time
	OutputVatCents int64 // IVA repercutido (facturas pagadas del período)
	InputVatCents  int64 // IVA soportado recuperable (gastos aprobados)
	NetVatCents    int64
	Status         string // draft, submitted, paid
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
