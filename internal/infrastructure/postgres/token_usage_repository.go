package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.TokenUsageRepository = (*TokenUsageRepo)(nil)

// TokenUsageRepo implementación del log de consumo sobre PostgreSQL.
// Solo INSERT y SELECT: las filas de auditoría son inmutables.
type TokenUsageRepo struct {
	q Querier
}

// NewTokenUsageRepository construye el adaptador del log de consumo. Pasar pool o tx (Querier).
func NewTokenUsageRepository(q Querier) *TokenUsageRepo {
	return &TokenUsageRepo{q: q}
}

// Create persiste un apunte de consumo.
func (r *TokenUsageRepo) Create(usage *entity.TokenUsage) error {
	query := `
		INSERT INTO token_usages (id, subscription_id, amount, description, used_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		usage.ID, usage.SubscriptionID, usage.Amount, usage.Description, usage.UsedAt,
	)
	if err != nil {
		return fmt.Errorf("insert token usage: %w", err)
	}
	return nil
}

// ListBySubscription lista el historial de consumo de una suscripción.
func (r *TokenUsageRepo) ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.TokenUsage, error) {
	query := `
		SELECT id, subscription_id, amount, description, used_at
		FROM token_usages WHERE subscription_id = $1
		ORDER BY used_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, subscriptionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list token usages: %w", err)
	}
	defer rows.Close()
	var list []*entity.TokenUsage
	for rows.Next() {
		var u entity.TokenUsage
		if err := rows.Scan(&u.ID, &u.SubscriptionID, &u.Amount, &u.Description, &u.UsedAt); err != nil {
			return nil, fmt.Errorf("scan token usage: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
