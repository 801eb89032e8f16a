// Package payment implementa la pasarela de cobro del sistema. La integración
// con una pasarela real queda fuera de alcance; StubGateway resuelve cada
// intento de inmediato y sirve para desarrollo y pruebas end-to-end.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotiza-api/internal/application/billing"
	"github.com/jhoicas/Cotiza-api/internal/domain"
)

var _ billing.PaymentGateway = (*StubGateway)(nil)

// StubGateway implementación de billing.PaymentGateway que aprueba todo
// intento al instante.
type StubGateway struct{}

// NewStubGateway construye la pasarela stub.
func NewStubGateway() *StubGateway { return &StubGateway{} }

// CreatePaymentIntent crea un intento ya resuelto como succeeded.
func (g *StubGateway) CreatePaymentIntent(_ context.Context, invoiceID string, amountCents int64) (*billing.PaymentIntent, error) {
	if invoiceID == "" || amountCents <= 0 {
		return nil, domain.ErrInvalidInput
	}
	id := uuid.New().String()
	return &billing.PaymentIntent{
		ID:          id,
		InvoiceID:   invoiceID,
		AmountCents: amountCents,
		Status:      "succeeded",
		Method:      "gateway",
		Reference:   fmt.Sprintf("stub-%s-%d", id[:8], time.Now().Unix()),
	}, nil
}
