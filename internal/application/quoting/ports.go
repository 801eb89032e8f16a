package quoting

import (
	"context"

	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// QuoteTxRunner ejecuta la creación de cotización (cabecera + líneas +
// solicitud de descuento opcional) dentro de una transacción.
type QuoteTxRunner interface {
	RunQuoteCreate(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		discountRepo repository.DiscountRequestRepository,
	) error) error
}

// DiscountTxRunner ejecuta la decisión de una solicitud de descuento dentro
// de una transacción con bloqueo de fila: la precondición status == pending
// se re-verifica bajo el lock, no contra la lectura previa del request.
type DiscountTxRunner interface {
	RunDiscountDecision(ctx context.Context, fn func(
		discountRepo repository.DiscountRequestRepository,
		quoteRepo repository.QuoteRepository,
	) error) error
}
