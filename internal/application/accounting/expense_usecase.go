package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/money"
	"github.com/jhoicas/Cotiza-api/internal/domain/policy"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

const expenseDateLayout = "2006-01-02"

// ExpenseUseCase gestiona gastos: alta, edición mientras están pendientes y
// aprobación/rechazo. La aprobación publica el apunte contable en la cuenta
// asociada dentro de la misma transacción.
type ExpenseUseCase struct {
	txRunner       ExpenseTxRunner
	expenseRepo    repository.ExpenseRepository
	accountRepo    repository.AccountRepository
	defaultVatRate decimal.Decimal
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	txRunner ExpenseTxRunner,
	expenseRepo repository.ExpenseRepository,
	accountRepo repository.AccountRepository,
	defaultVatRate decimal.Decimal,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txRunner:       txRunner,
		expenseRepo:    expenseRepo,
		accountRepo:    accountRepo,
		defaultVatRate: defaultVatRate,
	}
}

// Create registra un gasto en estado pending. El IVA se desglosa del monto
// según la tasa indicada (o la tasa por defecto).
func (uc *ExpenseUseCase) Create(ctx context.Context, actorID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Title == "" || in.AmountCents <= 0 || in.AccountID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidExpenseCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByID(in.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}

	vatRate := uc.defaultVatRate
	if in.VatRate != nil {
		vatRate = money.ClampPercent(*in.VatRate)
	}
	expenseDate := time.Now()
	if in.ExpenseDate != "" {
		expenseDate, err = time.Parse(expenseDateLayout, in.ExpenseDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	expense := &entity.Expense{
		ID:             uuid.New().String(),
		Title:          in.Title,
		Description:    in.Description,
		AmountCents:    in.AmountCents,
		VatCents:       money.PercentOfCents(in.AmountCents, vatRate),
		VatRate:        vatRate,
		VatRecoverable: in.VatRecoverable,
		Category:       in.Category,
		AccountID:      in.AccountID,
		CreatedBy:      actorID,
		Status:         entity.ExpenseStatusPending,
		ExpenseDate:    expenseDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Update edita un gasto. Solo los gastos pending son editables: un gasto ya
// decidido es inmutable.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if expense.Status != entity.ExpenseStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if in.Title != "" {
		expense.Title = in.Title
	}
	if in.Description != "" {
		expense.Description = in.Description
	}
	if in.Category != "" {
		if !entity.ValidExpenseCategory(in.Category) {
			return nil, domain.ErrInvalidInput
		}
		expense.Category = in.Category
	}
	if in.AmountCents != nil {
		if *in.AmountCents <= 0 {
			return nil, domain.ErrInvalidInput
		}
		expense.AmountCents = *in.AmountCents
	}
	if in.VatRate != nil {
		expense.VatRate = money.ClampPercent(*in.VatRate)
	}
	if in.VatRecoverable != nil {
		expense.VatRecoverable = *in.VatRecoverable
	}
	expense.VatCents = money.PercentOfCents(expense.AmountCents, expense.VatRate)
	expense.UpdatedAt = time.Now()
	if err := uc.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete elimina un gasto pending. Los gastos decididos no se borran.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	if expense.Status != entity.ExpenseStatusPending {
		return domain.ErrInvalidTransition
	}
	return uc.expenseRepo.Delete(id)
}

// Approve decide favorablemente un gasto pending y publica el apunte contable
// (salida por el monto total) en la cuenta asociada. Corre en transacción con
// el gasto y la cuenta bloqueados: el estado pending se re-verifica bajo el
// bloqueo de fila y el apunte y el nuevo saldo nunca divergen.
func (uc *ExpenseUseCase) Approve(ctx context.Context, actorID, actorRole, id string) (*dto.ExpenseResponse, error) {
	if !policy.Can(actorRole, policy.ActionApproveExpense) {
		return nil, domain.ErrForbidden
	}
	var decided *entity.Expense
	err := uc.txRunner.RunExpenseDecision(ctx, func(
		expenseRepo repository.ExpenseRepository,
		accountRepo repository.AccountRepository,
	) error {
		expense, err := expenseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if expense == nil {
			return domain.ErrNotFound
		}
		if expense.Status != entity.ExpenseStatusPending {
			return domain.ErrInvalidTransition
		}
		account, err := accountRepo.GetByIDForUpdate(expense.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		expense.Status = entity.ExpenseStatusApproved
		expense.ApprovedBy = actorID
		expense.ApprovedAt = &now
		expense.UpdatedAt = now
		if err := expenseRepo.Update(expense); err != nil {
			return err
		}

		if err := accountRepo.CreateTransaction(&entity.AccountTransaction{
			ID:          uuid.New().String(),
			AccountID:   account.ID,
			AmountCents: -expense.AmountCents,
			Description: fmt.Sprintf("Gasto aprobado: %s", expense.Title),
			Reference:   expense.ID,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		account.BalanceCents -= expense.AmountCents
		account.UpdatedAt = now
		if err := accountRepo.Update(account); err != nil {
			return err
		}
		decided = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(decided), nil
}

// Reject decide negativamente un gasto pending; no toca ninguna cuenta. La
// decisión corre en transacción con el gasto bloqueado para que no pueda
// pisar una aprobación concurrente ya confirmada.
func (uc *ExpenseUseCase) Reject(ctx context.Context, actorID, actorRole, id string) (*dto.ExpenseResponse, error) {
	if !policy.Can(actorRole, policy.ActionApproveExpense) {
		return nil, domain.ErrForbidden
	}
	var decided *entity.Expense
	err := uc.txRunner.RunExpenseDecision(ctx, func(
		expenseRepo repository.ExpenseRepository,
		accountRepo repository.AccountRepository,
	) error {
		expense, err := expenseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if expense == nil {
			return domain.ErrNotFound
		}
		if expense.Status != entity.ExpenseStatusPending {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		expense.Status = entity.ExpenseStatusRejected
		expense.ApprovedBy = actorID
		expense.ApprovedAt = &now
		expense.UpdatedAt = now
		if err := expenseRepo.Update(expense); err != nil {
			return err
		}
		decided = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(decided), nil
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos, opcionalmente por estado.
func (uc *ExpenseUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.ExpenseResponse, error) {
	expenses, err := uc.expenseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		AmountCents:    e.AmountCents,
		VatCents:       e.VatCents,
		VatRate:        e.VatRate,
		VatRecoverable: e.VatRecoverable,
		Category:       e.Category,
		AccountID:      e.AccountID,
		CreatedBy:      e.CreatedBy,
		Status:         e.Status,
		ApprovedBy:     e.ApprovedBy,
		ExpenseDate:    e.ExpenseDate.Format(expenseDateLayout),
	}
	if e.ApprovedAt != nil {
		resp.ApprovedAt = e.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}
