package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleSales    = "sales"
	RoleFinance  = "finance"
	RoleCustomer = "customer"
)

// Estados válidos para User.
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema.
// DiscountLimit es el porcentaje máximo de descuento que un rol sales puede
// aplicar sin aprobación de un admin.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Role          string // admin, sales, finance, customer
	Status        string // pending, active, suspended
	DiscountLimit decimal.Decimal // porcentaje, default 10
	Company       string
	Phone         string
	SuspendReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsStaff indica si el usuario pertenece al personal interno (no cliente).
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSales || u.Role == RoleFinance
}
