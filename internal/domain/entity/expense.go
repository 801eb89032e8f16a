package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Expense. Solo los gastos pending son editables.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

// Categorías de gasto.
const (
	ExpenseCategoryRent      = "rent"
	ExpenseCategorySalaries  = "salaries"
	ExpenseCategorySupplies  = "supplies"
	ExpenseCategoryUtilities = "utilities"
	ExpenseCategoryTravel    = "travel"
	ExpenseCategoryOther     = "other"
)

// Expense representa un gasto con su IVA desglosado. VatRecoverable marca si
// el IVA soportado entra en la declaración como IVA deducible.
type Expense struct {
	ID             string
	Title          string
	Description    string
	AmountCents    int64
	VatCents       int64
	VatRate        decimal.Decimal // porcentaje, default 5
	VatRecoverable bool
	Category       string // rent, salaries, supplies, utilities, travel, other
	AccountID      string
	CreatedBy      string
	Status         string // pending, approved, rejected
	ApprovedBy     string
	ApprovedAt     *time.Time
	ExpenseDate    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidExpenseCategory verifica que la categoría pertenezca al enum.
func ValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategorySalaries, ExpenseCategorySupplies,
		ExpenseCategoryUtilities, ExpenseCategoryTravel, ExpenseCategoryOther:
		return true
	}
	return false
}
