package entity

import "time"

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeIncome    = "income"
	AccountTypeExpense   = "expense"
)

// Account es una cuenta contable nombrada con saldo acumulado en centavos.
type Account struct {
	ID           string
	Code         string // código único del plan de cuentas
	Name         string
	Type         string // asset, liability, equity, income, expense
	BalanceCents int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountTransaction es un apunte del historial de una cuenta. Referencia el
// documento que lo originó (ej. un gasto aprobado).
type AccountTransaction struct {
	ID          string
	AccountID   string
	AmountCents int64 // negativo = salida
	Description string
	Reference   string // id del documento origen
	CreatedAt   time.Time
}

// ValidAccountType verifica que el tipo pertenezca al enum.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}
