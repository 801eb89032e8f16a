package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// AccountUseCase gestiona el plan de cuentas y su historial de apuntes.
type AccountUseCase struct {
	accountRepo repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(accountRepo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// Create da de alta una cuenta contable con saldo cero.
func (uc *AccountUseCase) Create(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAccountType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByID obtiene una cuenta.
func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(account), nil
}

// List lista el plan de cuentas completo.
func (uc *AccountUseCase) List(ctx context.Context) ([]*dto.AccountResponse, error) {
	accounts, err := uc.accountRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

// ListTransactions lista el historial de apuntes de una cuenta.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*dto.AccountTransactionResponse, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.accountRepo.ListTransactions(accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountTransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, &dto.AccountTransactionResponse{
			ID:          t.ID,
			AccountID:   t.AccountID,
			AmountCents: t.AmountCents,
			Description: t.Description,
			Reference:   t.Reference,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:           a.ID,
		Code:         a.Code,
		Name:         a.Name,
		Type:         a.Type,
		BalanceCents: a.BalanceCents,
		Active:       a.Active,
	}
}
