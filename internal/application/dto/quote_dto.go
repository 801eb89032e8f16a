package dto

import (
	"github.com/shopspring/decimal"
)

// QuoteItemRequest línea de cotización (precio en unidades de moneda).
type QuoteItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// CreateQuoteRequest body para POST /api/quotes.
// DiscountPercent por encima del límite del solicitante genera una
// DiscountRequest pendiente en lugar de aplicarse.
type CreateQuoteRequest struct {
	UserID          string             `json:"user_id"` // cliente
	Items           []QuoteItemRequest `json:"items"`
	DiscountPercent decimal.Decimal    `json:"discount_percent,omitempty"`
	VatRate         *decimal.Decimal   `json:"vat_rate,omitempty"` // default 5
	Notes           string             `json:"notes,omitempty"`
	DiscountReason  string             `json:"discount_reason,omitempty"` // obligatorio si el descuento excede el límite
}

// UpdateQuoteStatusRequest body para PUT /api/quotes/:id/status.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status"` // accepted, rejected, expired
}

// QuoteItemResponse línea en respuestas.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PriceCents  int64           `json:"price_cents"`
	Quantity    int64           `json:"quantity"`
}

// QuoteResponse cotización con líneas y totales.
type QuoteResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	CreatedBy       string              `json:"created_by"`
	QuoteNumber     string              `json:"quote_number"`
	Status          string              `json:"status"`
	SubtotalCents   int64               `json:"subtotal_cents"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	DiscountCents   int64               `json:"discount_cents"`
	VatRate         decimal.Decimal     `json:"vat_rate"`
	VatCents        int64               `json:"vat_cents"`
	TotalCents      int64               `json:"total_cents"`
	Total           decimal.Decimal     `json:"total"` // presentación en unidades
	Notes           string              `json:"notes,omitempty"`
	ExpiryDate      string              `json:"expiry_date"`
	Items           []QuoteItemResponse `json:"items"`
	// DiscountRequestID se llena cuando el descuento pedido excedió el límite
	// y quedó en cola de aprobación.
	DiscountRequestID string `json:"discount_request_id,omitempty"`
}
