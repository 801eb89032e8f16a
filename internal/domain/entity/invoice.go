package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Invoice.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice representa una factura: un cobro vinculante, opcionalmente derivado
// de una cotización aceptada (QuoteID registra la procedencia).
//
// PaidDate, PaymentMethod y PaymentReference se estampan siempre juntos por
// la única operación de marcado de pago.
type Invoice struct {
	ID               string
	UserID           string
	QuoteID          string // vacío si la factura es independiente
	InvoiceNumber    string // único, generado
	Status           string // pending, paid, overdue
	SubtotalCents    int64
	DiscountPercent  decimal.Decimal
	DiscountCents    int64
	VatRate          decimal.Decimal
	VatCents         int64
	TotalCents       int64
	DueDate          time.Time
	PaidDate         *time.Time
	PaymentMethod    string
	PaymentReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InvoiceItem línea de factura (snapshot, igual que QuoteItem).
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int64
}
