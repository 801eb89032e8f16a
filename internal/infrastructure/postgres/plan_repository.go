package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de persistencia para planes. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste un nuevo plan.
func (r *PlanRepo) Create(plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, description, price_cents, token_amount, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Description, plan.PriceCents, plan.TokenAmount,
		plan.Active, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `
		SELECT id, name, description, price_cents, token_amount, active, created_at, updated_at
		FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.TokenAmount, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// Update actualiza un plan existente.
func (r *PlanRepo) Update(plan *entity.Plan) error {
	query := `
		UPDATE plans SET name = $2, description = $3, price_cents = $4, token_amount = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Description, plan.PriceCents, plan.TokenAmount, plan.Active, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// List lista planes; con onlyActive true solo devuelve los activos.
func (r *PlanRepo) List(onlyActive bool) ([]*entity.Plan, error) {
	query := `
		SELECT id, name, description, price_cents, token_amount, active, created_at, updated_at
		FROM plans
		WHERE ($1 = false OR active = true)
		ORDER BY price_cents`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.TokenAmount, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
