package accounting

import (
	"context"

	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// ExpenseTxRunner ejecuta la decisión de un gasto dentro de una transacción:
// el cambio de estado, el apunte contable y el nuevo saldo de la cuenta son
// una sola unidad.
type ExpenseTxRunner interface {
	RunExpenseDecision(ctx context.Context, fn func(
		expenseRepo repository.ExpenseRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
