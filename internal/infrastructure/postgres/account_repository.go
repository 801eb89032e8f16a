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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas contables. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, code, name, type, balance_cents, active, created_at, updated_at`

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Code, account.Name, account.Type,
		account.BalanceCents, account.Active, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene una cuenta con bloqueo de fila (SELECT ... FOR UPDATE).
// El registro de un apunte actualiza el saldo bajo el lock.
func (r *AccountRepo) GetByIDForUpdate(id string) (*entity.Account, error) {
	return r.getByID(id, true)
}

func (r *AccountRepo) getByID(id string, forUpdate bool) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Code, &a.Name, &a.Type, &a.BalanceCents, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// Update actualiza una cuenta existente.
func (r *AccountRepo) Update(account *entity.Account) error {
	query := `
		UPDATE accounts SET code = $2, name = $3, type = $4, balance_cents = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Code, account.Name, account.Type,
		account.BalanceCents, account.Active, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// List lista el plan de cuentas completo ordenado por código.
func (r *AccountRepo) List() ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.BalanceCents, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CreateTransaction persiste un apunte del historial.
func (r *AccountRepo) CreateTransaction(tx *entity.AccountTransaction) error {
	query := `
		INSERT INTO account_transactions (id, account_id, amount_cents, description, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.AccountID, tx.AmountCents, tx.Description, nullIfEmpty(tx.Reference), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account transaction: %w", err)
	}
	return nil
}

// ListTransactions lista el historial de apuntes de una cuenta.
func (r *AccountRepo) ListTransactions(accountID string, limit, offset int) ([]*entity.AccountTransaction, error) {
	query := `
		SELECT id, account_id, amount_cents, description, COALESCE(reference::TEXT, ''), created_at
		FROM account_transactions WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountTransaction
	for rows.Next() {
		var t entity.AccountTransaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.AmountCents, &t.Description, &t.Reference, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
