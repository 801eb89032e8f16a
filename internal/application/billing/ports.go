package billing

import (
	"context"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// repos de facturación y cotización (conversión cotización→factura).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		quoteRepo repository.QuoteRepository,
	) error) error
}

// PaymentIntent resultado de iniciar un cobro en la pasarela.
type PaymentIntent struct {
	ID          string
	InvoiceID   string
	AmountCents int64
	Status      string // "succeeded" | "pending" | "failed"
	Method      string
	Reference   string
}

// PaymentGateway es la única capacidad de pago que consume el sistema:
// crear un intento de cobro y enterarse de su resultado. La pasarela real
// queda fuera de alcance; el stub de desarrollo resuelve el intento de
// inmediato. Una implementación y otra son intercambiables (estrategia),
// nunca archivos alternativos copiados.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, invoiceID string, amountCents int64) (*PaymentIntent, error)
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.User, items []*entity.InvoiceItem) ([]byte, error)
}
