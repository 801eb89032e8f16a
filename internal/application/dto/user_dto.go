package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest body para POST /api/auth/register (autoservicio → pending).
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateUserRequest body para POST /api/users (creado por admin → active).
type CreateUserRequest struct {
	Username      string           `json:"username"`
	Email         string           `json:"email"`
	Password      string           `json:"password"`
	Role          string           `json:"role"`
	DiscountLimit *decimal.Decimal `json:"discount_limit,omitempty"`
	Company       string           `json:"company,omitempty"`
	Phone         string           `json:"phone,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest body para POST /api/auth/change-password.
// Requiere la contraseña actual (verificación contra el hash almacenado).
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ApproveUserRequest body para POST /api/users/:id/approve.
type ApproveUserRequest struct {
	Role string `json:"role,omitempty"` // opcional: asignar rol al aprobar
}

// SuspendUserRequest body para POST /api/users/:id/suspend.
type SuspendUserRequest struct {
	Reason string `json:"reason"`
}

// ChangeRoleRequest body para PATCH /api/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ResetPasswordRequest body para POST /api/users/:id/reset-password
// (iniciado por admin, no requiere contraseña actual).
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// UpdateDiscountLimitRequest body para PATCH /api/users/:id/discount-limit.
type UpdateDiscountLimitRequest struct {
	DiscountLimit decimal.Decimal `json:"discount_limit"`
}

// UserResponse usuario en respuestas (sin hash).
type UserResponse struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Status        string          `json:"status"`
	DiscountLimit decimal.Decimal `json:"discount_limit"`
	Company       string          `json:"company,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
