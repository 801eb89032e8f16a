package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// TokenUsageRepository define el puerto del log de consumo (append-only).
// No hay Update ni Delete: las filas de auditoría son inmutables.
type TokenUsageRepository interface {
	Create(usage *entity.TokenUsage) error
	ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.TokenUsage, error)
}
