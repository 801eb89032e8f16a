package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, title, description, amount_cents, vat_cents, vat_rate, vat_recoverable, category, account_id, created_by, status, approved_by, approved_at, expense_date, created_at, updated_at`

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Title, expense.Description, expense.AmountCents, expense.VatCents,
		expense.VatRate, expense.VatRecoverable, expense.Category, expense.AccountID, expense.CreatedBy,
		expense.Status, nullIfEmpty(expense.ApprovedBy), expense.ApprovedAt, expense.ExpenseDate,
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene un gasto con bloqueo de fila (SELECT ... FOR UPDATE).
func (r *ExpenseRepo) GetByIDForUpdate(id string) (*entity.Expense, error) {
	return r.getByID(id, true)
}

func (r *ExpenseRepo) getByID(id string, forUpdate bool) (*entity.Expense, error) {
	query := `
		SELECT id, title, description, amount_cents, vat_cents, vat_rate, vat_recoverable, category,
			account_id, created_by, status, COALESCE(approved_by::TEXT, ''), approved_at, expense_date, created_at, updated_at
		FROM expenses WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.AmountCents, &e.VatCents,
		&e.VatRate, &e.VatRecoverable, &e.Category, &e.AccountID, &e.CreatedBy,
		&e.Status, &e.ApprovedBy, &e.ApprovedAt, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update actualiza un gasto existente.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses SET title = $2, description = $3, amount_cents = $4, vat_cents = $5,
			vat_rate = $6, vat_recoverable = $7, category = $8, status = $9,
			approved_by = $10, approved_at = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Title, expense.Description, expense.AmountCents, expense.VatCents,
		expense.VatRate, expense.VatRecoverable, expense.Category, expense.Status,
		nullIfEmpty(expense.ApprovedBy), expense.ApprovedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// List lista gastos con paginación, opcionalmente filtrados por estado.
func (r *ExpenseRepo) List(status string, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, title, description, amount_cents, vat_cents, vat_rate, vat_recoverable, category,
			account_id, created_by, status, COALESCE(approved_by::TEXT, ''), approved_at, expense_date, created_at, updated_at
		FROM expenses
		WHERE ($1::TEXT IS NULL OR status = $1)
		ORDER BY expense_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, nullIfEmpty(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.AmountCents, &e.VatCents,
			&e.VatRate, &e.VatRecoverable, &e.Category, &e.AccountID, &e.CreatedBy,
			&e.Status, &e.ApprovedBy, &e.ApprovedAt, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// SumRecoverableVatBetween suma el IVA soportado recuperable de gastos
// aprobados en el período. COALESCE devuelve cero si no hay filas.
func (r *ExpenseRepo) SumRecoverableVatBetween(from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(vat_cents), 0)
		FROM expenses
		WHERE status = 'approved' AND vat_recoverable = true AND expense_date BETWEEN $1 AND $2`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum recoverable vat: %w", err)
	}
	return total, nil
}
