package dto

import (
	"github.com/shopspring/decimal"
)

// CreateDiscountRequest body para POST /api/discount-requests.
// Porcentaje XOR monto fijo; Reason es obligatorio.
type CreateDiscountRequest struct {
	UserID          string          `json:"user_id"` // cliente beneficiario
	QuoteID         string          `json:"quote_id,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountCents   int64           `json:"discount_cents,omitempty"`
	Reason          string          `json:"reason"`
}

// DecideDiscountRequest body para PUT /api/discount-requests/:id/{approve,reject}.
type DecideDiscountRequest struct {
	DecisionNotes string `json:"decision_notes,omitempty"`
}

// DiscountRequestResponse solicitud en respuestas.
type DiscountRequestResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	RequestedBy     string          `json:"requested_by"`
	ApprovedBy      string          `json:"approved_by,omitempty"`
	QuoteID         string          `json:"quote_id,omitempty"`
	Status          string          `json:"status"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountCents   int64           `json:"discount_cents"`
	Reason          string          `json:"reason"`
	DecisionNotes   string          `json:"decision_notes,omitempty"`
	DecidedAt       string          `json:"decided_at,omitempty"`
	CreatedAt       string          `json:"created_at"`
}
