package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

type fakeUserRepo struct{ users map[string]*entity.User }

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(status string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if status == "" || u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

func pendingUser(id string) *entity.User {
	return &entity.User{
		ID:       id,
		Username: "nuevo",
		Email:    id + "@test.local",
		Role:     entity.RoleCustomer,
		Status:   entity.UserStatusPending,
	}
}

func TestApprove_PendingPasaActive(t *testing.T) {
	repo := newFakeUserRepo(pendingUser("u-1"))
	uc := NewUserUseCase(repo)

	resp, err := uc.Approve("admin-1", "u-1", dto.ApproveUserRequest{Role: entity.RoleSales})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
	assert.Equal(t, entity.RoleSales, resp.Role)
}

func TestApprove_RequierePending(t *testing.T) {
	user := pendingUser("u-1")
	user.Status = entity.UserStatusActive
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	_, err := uc.Approve("admin-1", "u-1", dto.ApproveUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApprove_NoASiMismo(t *testing.T) {
	repo := newFakeUserRepo(pendingUser("admin-1"))
	uc := NewUserUseCase(repo)

	_, err := uc.Approve("admin-1", "admin-1", dto.ApproveUserRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSuspend_RequiereMotivoYActive(t *testing.T) {
	user := pendingUser("u-1")
	user.Status = entity.UserStatusActive
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	_, err := uc.Suspend("admin-1", "u-1", dto.SuspendUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.Suspend("admin-1", "u-1", dto.SuspendUserRequest{Reason: "impago"})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, resp.Status)

	// Suspender dos veces es transición inválida.
	_, err = uc.Suspend("admin-1", "u-1", dto.SuspendUserRequest{Reason: "impago"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSuspend_NoASiMismo(t *testing.T) {
	user := pendingUser("admin-1")
	user.Status = entity.UserStatusActive
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	_, err := uc.Suspend("admin-1", "admin-1", dto.SuspendUserRequest{Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReactivate_SoloDesdeSuspended(t *testing.T) {
	user := pendingUser("u-1")
	user.Status = entity.UserStatusSuspended
	user.SuspendReason = "impago"
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	resp, err := uc.Reactivate("admin-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
	assert.Empty(t, repo.users["u-1"].SuspendReason)

	_, err = uc.Reactivate("admin-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChangeRole_ValidaRol(t *testing.T) {
	user := pendingUser("u-1")
	user.Status = entity.UserStatusActive
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	_, err := uc.ChangeRole("admin-1", "u-1", dto.ChangeRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.ChangeRole("admin-1", "u-1", dto.ChangeRoleRequest{Role: entity.RoleFinance})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleFinance, resp.Role)
}

func TestCreate_EmailDuplicado(t *testing.T) {
	existing := pendingUser("u-1")
	existing.Email = "dup@test.local"
	repo := newFakeUserRepo(existing)
	uc := NewUserUseCase(repo)

	_, err := uc.Create(dto.CreateUserRequest{
		Username: "otro",
		Email:    "dup@test.local",
		Password: "secreto123",
		Role:     entity.RoleSales,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestResetPassword_CambiaElHash(t *testing.T) {
	user := pendingUser("u-1")
	user.Status = entity.UserStatusActive
	hash, _ := bcrypt.GenerateFromPassword([]byte("vieja"), bcrypt.DefaultCost)
	user.PasswordHash = string(hash)
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	err := uc.ResetPassword("admin-1", "u-1", dto.ResetPasswordRequest{NewPassword: "nueva-clave-9"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["u-1"].PasswordHash), []byte("nueva-clave-9")))
}

func TestUpdateDiscountLimit_Rango(t *testing.T) {
	user := pendingUser("u-1")
	user.Role = entity.RoleSales
	repo := newFakeUserRepo(user)
	uc := NewUserUseCase(repo)

	_, err := uc.UpdateDiscountLimit("u-1", dto.UpdateDiscountLimitRequest{
		DiscountLimit: decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateDiscountLimit("u-1", dto.UpdateDiscountLimitRequest{
		DiscountLimit: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.UpdateDiscountLimit("u-1", dto.UpdateDiscountLimitRequest{
		DiscountLimit: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.True(t, resp.DiscountLimit.Equal(decimal.NewFromInt(25)))
}
