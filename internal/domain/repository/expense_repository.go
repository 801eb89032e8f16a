package repository

import (
	"time"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	// GetByIDForUpdate obtiene el gasto con bloqueo de fila (SELECT ... FOR
	// UPDATE); la decisión re-verifica el estado pending bajo este bloqueo.
	GetByIDForUpdate(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	List(status string, limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
	// SumRecoverableVatBetween suma el IVA soportado recuperable de gastos
	// aprobados en el período (para la declaración de IVA).
	SumRecoverableVatBetween(from, to time.Time) (int64, error)
}
