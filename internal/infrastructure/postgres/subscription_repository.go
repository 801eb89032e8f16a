package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador de persistencia para suscripciones. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, user_id, plan_id, status, token_balance, period_start, period_end, auto_renew, created_at, updated_at`

// Create persiste una nueva suscripción.
func (r *SubscriptionRepo) Create(sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.UserID, sub.PlanID, sub.Status, sub.TokenBalance,
		sub.PeriodStart, sub.PeriodEnd, sub.AutoRenew, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByID obtiene una suscripción por ID.
func (r *SubscriptionRepo) GetByID(id string) (*entity.Subscription, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene una suscripción con bloqueo de fila (SELECT ... FOR UPDATE).
// Serializa descuentos concurrentes contra el mismo saldo.
func (r *SubscriptionRepo) GetByIDForUpdate(id string) (*entity.Subscription, error) {
	return r.getByID(id, true)
}

func (r *SubscriptionRepo) getByID(id string, forUpdate bool) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.TokenBalance,
		&s.PeriodStart, &s.PeriodEnd, &s.AutoRenew, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Update actualiza una suscripción existente.
func (r *SubscriptionRepo) Update(sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, token_balance = $3, period_start = $4, period_end = $5,
			auto_renew = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.Status, sub.TokenBalance, sub.PeriodStart, sub.PeriodEnd, sub.AutoRenew, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// UpdateBalance persiste únicamente el nuevo saldo de tokens.
func (r *SubscriptionRepo) UpdateBalance(id string, balance int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE subscriptions SET token_balance = $2, updated_at = now() WHERE id = $1`,
		id, balance,
	)
	if err != nil {
		return fmt.Errorf("update subscription balance: %w", err)
	}
	return nil
}

// ListByUser lista las suscripciones de un usuario.
func (r *SubscriptionRepo) ListByUser(userID string) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(query, userID)
}

// List lista suscripciones con paginación.
func (r *SubscriptionRepo) List(limit, offset int) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + ` FROM subscriptions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *SubscriptionRepo) list(query string, args ...any) ([]*entity.Subscription, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.TokenBalance,
			&s.PeriodStart, &s.PeriodEnd, &s.AutoRenew, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
