package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.VatReturnRepository = (*VatReturnRepo)(nil)

// VatReturnRepo implementación del puerto VatReturnRepository sobre PostgreSQL.
type VatReturnRepo struct {
	q Querier
}

// NewVatReturnRepository construye el adaptador de persistencia para declaraciones de IVA. Pasar pool o tx (Querier).
func NewVatReturnRepository(q Querier) *VatReturnRepo {
	return &VatReturnRepo{q: q}
}

const vatReturnColumns = `id, period_start, period_end, due_date, output_vat_cents, input_vat_cents, net_vat_cents, status, created_by, created_at, updated_at`

// Create persiste una nueva declaración.
func (r *VatReturnRepo) Create(vr *entity.VatReturn) error {
	query := `
		INSERT INTO vat_returns (` + vatReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		vr.ID, vr.PeriodStart, vr.PeriodEnd, vr.DueDate,
		vr.OutputVatCents, vr.InputVatCents, vr.NetVatCents,
		vr.Status, vr.CreatedBy, vr.CreatedAt, vr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vat return: %w", err)
	}
	return nil
}

// GetByID obtiene una declaración por ID.
func (r *VatReturnRepo) GetByID(id string) (*entity.VatReturn, error) {
	query := `SELECT ` + vatReturnColumns + ` FROM vat_returns WHERE id = $1`
	var vr entity.VatReturn
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&vr.ID, &vr.PeriodStart, &vr.PeriodEnd, &vr.DueDate,
		&vr.OutputVatCents, &vr.InputVatCents, &vr.NetVatCents,
		&vr.Status, &vr.CreatedBy, &vr.CreatedAt, &vr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat return: %w", err)
	}
	return &vr, nil
}

// Update actualiza una declaración existente.
func (r *VatReturnRepo) Update(vr *entity.VatReturn) error {
	query := `
		UPDATE vat_returns SET output_vat_cents = $2, input_vat_cents = $3, net_vat_cents = $4,
			status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vr.ID, vr.OutputVatCents, vr.InputVatCents, vr.NetVatCents, vr.Status, vr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vat return: %w", err)
	}
	return nil
}

// List lista declaraciones con paginación.
func (r *VatReturnRepo) List(limit, offset int) ([]*entity.VatReturn, error) {
	query := `
		SELECT ` + vatReturnColumns + ` FROM vat_returns
		ORDER BY period_start DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vat returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.VatReturn
	for rows.Next() {
		var vr entity.VatReturn
		if err := rows.Scan(&vr.ID, &vr.PeriodStart, &vr.PeriodEnd, &vr.DueDate,
			&vr.OutputVatCents, &vr.InputVatCents, &vr.NetVatCents,
			&vr.Status, &vr.CreatedBy, &vr.CreatedAt, &vr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vat return: %w", err)
		}
		list = append(list, &vr)
	}
	return list, rows.Err()
}
