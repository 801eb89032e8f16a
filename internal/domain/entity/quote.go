package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Quote. pending es el único estado no terminal.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Quote representa una cotización: una propuesta de venta no vinculante a la
// espera de aceptación del cliente. Los montos se guardan en centavos; el
// porcentaje de descuento con dos decimales.
//
// Invariante: TotalCents == SubtotalCents - DiscountCents + VatCents, siempre
// recalculado (nunca mutado de forma independiente).
type Quote struct {
	ID              string
	UserID          string // cliente dueño de la cotización
	CreatedBy       string // usuario staff que la creó
	QuoteNumber     string // único, generado
	Status          string // pending, accepted, rejected, expired
	SubtotalCents   int64
	DiscountPercent decimal.Decimal
	DiscountCents   int64
	VatRate         decimal.Decimal // porcentaje, default 5
	VatCents        int64
	TotalCents      int64
	Notes           string
	ExpiryDate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuoteItem es una línea de cotización: snapshot congelado de nombre y precio
// al momento de crearla (cambios posteriores del catálogo no la afectan).
type QuoteItem struct {
	ID          string
	QuoteID     string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int64
}

// QuoteStatusTerminal indica si un estado de cotización es terminal.
func QuoteStatusTerminal(status string) bool {
	return status == QuoteStatusAccepted || status == QuoteStatusRejected || status == QuoteStatusExpired
}
