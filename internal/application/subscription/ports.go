package subscription

import (
	"context"

	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta el descuento de tokens dentro de una transacción:
// el apunte en el log y la actualización del saldo son una sola unidad.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		subRepo repository.SubscriptionRepository,
		usageRepo repository.TokenUsageRepository,
	) error) error
}
