package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.DiscountRequestRepository = (*DiscountRequestRepo)(nil)

// DiscountRequestRepo implementación del puerto DiscountRequestRepository sobre PostgreSQL.
type DiscountRequestRepo struct {
	q Querier
}

// NewDiscountRequestRepository construye el adaptador de persistencia para solicitudes de descuento. Pasar pool o tx (Querier).
func NewDiscountRequestRepository(q Querier) *DiscountRequestRepo {
	return &DiscountRequestRepo{q: q}
}

const discountColumns = `id, user_id, requested_by, approved_by, quote_id, status, discount_percent, discount_cents, reason, decision_notes, decided_at, created_at, updated_at`

// Create persiste una nueva solicitud de descuento.
func (r *DiscountRequestRepo) Create(req *entity.DiscountRequest) error {
	query := `
		INSERT INTO discount_requests (` + discountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.UserID, req.RequestedBy, nullIfEmpty(req.ApprovedBy), nullIfEmpty(req.QuoteID),
		req.Status, req.DiscountPercent, req.DiscountCents, req.Reason, req.DecisionNotes,
		req.DecidedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert discount request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *DiscountRequestRepo) GetByID(id string) (*entity.DiscountRequest, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene una solicitud con bloqueo de fila (SELECT ... FOR UPDATE).
func (r *DiscountRequestRepo) GetByIDForUpdate(id string) (*entity.DiscountRequest, error) {
	return r.getByID(id, true)
}

func (r *DiscountRequestRepo) getByID(id string, forUpdate bool) (*entity.DiscountRequest, error) {
	query := `
		SELECT id, user_id, requested_by, COALESCE(approved_by::TEXT, ''), COALESCE(quote_id::TEXT, ''),
			status, discount_percent, discount_cents, reason, decision_notes, decided_at, created_at, updated_at
		FROM discount_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var d entity.DiscountRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.UserID, &d.RequestedBy, &d.ApprovedBy, &d.QuoteID,
		&d.Status, &d.DiscountPercent, &d.DiscountCents, &d.Reason, &d.DecisionNotes,
		&d.DecidedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount request: %w", err)
	}
	return &d, nil
}

// Update actualiza una solicitud existente (decisión).
func (r *DiscountRequestRepo) Update(req *entity.DiscountRequest) error {
	query := `
		UPDATE discount_requests SET status = $2, approved_by = $3, decision_notes = $4, decided_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, nullIfEmpty(req.ApprovedBy), req.DecisionNotes, req.DecidedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update discount request: %w", err)
	}
	return nil
}

// List lista solicitudes con paginación, opcionalmente filtradas por estado.
func (r *DiscountRequestRepo) List(status string, limit, offset int) ([]*entity.DiscountRequest, error) {
	query := `
		SELECT id, user_id, requested_by, COALESCE(approved_by::TEXT, ''), COALESCE(quote_id::TEXT, ''),
			status, discount_percent, discount_cents, reason, decision_notes, decided_at, created_at, updated_at
		FROM discount_requests
		WHERE ($1::TEXT IS NULL OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, nullIfEmpty(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list discount requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.DiscountRequest
	for rows.Next() {
		var d entity.DiscountRequest
		if err := rows.Scan(&d.ID, &d.UserID, &d.RequestedBy, &d.ApprovedBy, &d.QuoteID,
			&d.Status, &d.DiscountPercent, &d.DiscountCents, &d.Reason, &d.DecisionNotes,
			&d.DecidedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan discount request: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
