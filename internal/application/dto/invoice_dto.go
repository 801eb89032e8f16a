package dto

import (
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices (factura independiente).
type CreateInvoiceRequest struct {
	UserID          string             `json:"user_id"`
	Items           []QuoteItemRequest `json:"items"`
	DiscountPercent decimal.Decimal    `json:"discount_percent,omitempty"`
	VatRate         *decimal.Decimal   `json:"vat_rate,omitempty"`
}

// UpdateInvoiceStatusRequest body para PUT /api/invoices/:id/status.
// Solo admite overdue o pending; paid pasa por MarkAsPaid.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// MarkPaidRequest body para POST /api/invoices/:id/pay.
type MarkPaidRequest struct {
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// PaymentIntentResponse respuesta de POST /api/invoices/:id/payment-intent.
type PaymentIntentResponse struct {
	IntentID    string `json:"intent_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// InvoiceItemResponse línea en respuestas.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PriceCents  int64           `json:"price_cents"`
	Quantity    int64           `json:"quantity"`
}

// InvoiceResponse factura con líneas y totales.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	QuoteID          string                `json:"quote_id,omitempty"`
	InvoiceNumber    string                `json:"invoice_number"`
	Status           string                `json:"status"`
	SubtotalCents    int64                 `json:"subtotal_cents"`
	DiscountPercent  decimal.Decimal       `json:"discount_percent"`
	DiscountCents    int64                 `json:"discount_cents"`
	VatRate          decimal.Decimal       `json:"vat_rate"`
	VatCents         int64                 `json:"vat_cents"`
	TotalCents       int64                 `json:"total_cents"`
	Total            decimal.Decimal       `json:"total"`
	DueDate          string                `json:"due_date"`
	PaidDate         string                `json:"paid_date,omitempty"`
	PaymentMethod    string                `json:"payment_method,omitempty"`
	PaymentReference string                `json:"payment_reference,omitempty"`
	Items            []InvoiceItemResponse `json:"items"`
}
