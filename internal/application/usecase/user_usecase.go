package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotiza-api/internal/application/auth"
	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// UserUseCase aplica el flujo de aprobación y administración de usuarios.
// Todas las operaciones asumen que el handler ya verificó la capacidad
// users.manage; aquí se verifica además que el admin no se opere a sí mismo.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

var decimalHundred = decimal.NewFromInt(100)

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleSales, entity.RoleFinance, entity.RoleCustomer:
		return true
	}
	return false
}

// Create crea un usuario desde el panel de admin: nace directamente en estado
// active con el rol indicado.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, _ := uc.repo.GetByUsername(in.Username); existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	limit := auth.DefaultDiscountLimit
	if in.DiscountLimit != nil {
		limit = *in.DiscountLimit
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          in.Role,
		Status:        entity.UserStatusActive,
		DiscountLimit: limit,
		Company:       in.Company,
		Phone:         in.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios, opcionalmente filtrados por estado.
func (uc *UserUseCase) List(status string, limit, offset int) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Approve pasa un usuario de pending a active, opcionalmente asignando rol.
// Un admin no puede aprobarse a sí mismo.
func (uc *UserUseCase) Approve(actorID, id string, in dto.ApproveUserRequest) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != entity.UserStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if in.Role != "" {
		if !validRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = in.Role
	}
	user.Status = entity.UserStatusActive
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Suspend pasa un usuario de active a suspended con un motivo.
// Un admin no puede suspenderse a sí mismo.
func (uc *UserUseCase) Suspend(actorID, id string, in dto.SuspendUserRequest) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, domain.ErrForbidden
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrInvalidTransition
	}
	user.Status = entity.UserStatusSuspended
	user.SuspendReason = in.Reason
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Reactivate pasa un usuario de suspended a active.
func (uc *UserUseCase) Reactivate(actorID, id string) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != entity.UserStatusSuspended {
		return nil, domain.ErrInvalidTransition
	}
	user.Status = entity.UserStatusActive
	user.SuspendReason = ""
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ChangeRole asigna un nuevo rol. Un admin no puede cambiarse el rol a sí
// mismo (lo debe hacer otro admin).
func (uc *UserUseCase) ChangeRole(actorID, id string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, domain.ErrForbidden
	}
	if !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.Role = in.Role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ResetPassword restablece la contraseña de otro usuario sin pedir la actual
// (operación de admin).
func (uc *UserUseCase) ResetPassword(actorID, id string, in dto.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

// UpdateDiscountLimit ajusta el límite de descuento de un vendedor.
func (uc *UserUseCase) UpdateDiscountLimit(id string, in dto.UpdateDiscountLimitRequest) (*dto.UserResponse, error) {
	if in.DiscountLimit.IsNegative() || in.DiscountLimit.GreaterThan(decimalHundred) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.DiscountLimit = in.DiscountLimit
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
