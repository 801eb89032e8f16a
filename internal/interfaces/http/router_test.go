package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/usecase"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
	"github.com/jhoicas/Cotiza-api/pkg/jwt"
)

// Fakes mínimos para ejercer el router completo con casos de uso reales.

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *memUserRepo) List(status string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r *memUserRepo) Delete(id string) error { delete(r.users, id); return nil }

type memExpenseRepo struct{ expenses map[string]*entity.Expense }

func (r *memExpenseRepo) Create(e *entity.Expense) error             { r.expenses[e.ID] = e; return nil }
func (r *memExpenseRepo) GetByID(id string) (*entity.Expense, error) { return r.expenses[id], nil }
func (r *memExpenseRepo) GetByIDForUpdate(id string) (*entity.Expense, error) {
	return r.expenses[id], nil
}
func (r *memExpenseRepo) Update(e *entity.Expense) error { r.expenses[e.ID] = e; return nil }
func (r *memExpenseRepo) List(status string, limit, offset int) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		out = append(out, e)
	}
	return out, nil
}
func (r *memExpenseRepo) Delete(id string) error { delete(r.expenses, id); return nil }
func (r *memExpenseRepo) SumRecoverableVatBetween(_, _ time.Time) (int64, error) {
	return 0, nil
}

type memAccountRepo struct{ accounts map[string]*entity.Account }

func (r *memAccountRepo) Create(a *entity.Account) error             { r.accounts[a.ID] = a; return nil }
func (r *memAccountRepo) GetByID(id string) (*entity.Account, error) { return r.accounts[id], nil }
func (r *memAccountRepo) GetByIDForUpdate(id string) (*entity.Account, error) {
	return r.accounts[id], nil
}
func (r *memAccountRepo) Update(a *entity.Account) error    { r.accounts[a.ID] = a; return nil }
func (r *memAccountRepo) List() ([]*entity.Account, error)  { return nil, nil }
func (r *memAccountRepo) CreateTransaction(tx *entity.AccountTransaction) error {
	return nil
}
func (r *memAccountRepo) ListTransactions(accountID string, limit, offset int) ([]*entity.AccountTransaction, error) {
	return nil, nil
}

type memExpenseRunner struct {
	expenseRepo repository.ExpenseRepository
	accountRepo repository.AccountRepository
}

func (t *memExpenseRunner) RunExpenseDecision(ctx context.Context, fn func(
	expenseRepo repository.ExpenseRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return fn(t.expenseRepo, t.accountRepo)
}

type routerFixture struct {
	app         *fiber.App
	userRepo    *memUserRepo
	expenseRepo *memExpenseRepo
	accountRepo *memAccountRepo
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	userRepo := &memUserRepo{users: make(map[string]*entity.User)}
	expenseRepo := &memExpenseRepo{expenses: make(map[string]*entity.Expense)}
	accountRepo := &memAccountRepo{accounts: make(map[string]*entity.Account)}
	runner := &memExpenseRunner{expenseRepo: expenseRepo, accountRepo: accountRepo}

	app := fiber.New()
	Router(app, RouterDeps{
		UserUC:    usecase.NewUserUseCase(userRepo),
		ExpenseUC: accounting.NewExpenseUseCase(runner, expenseRepo, accountRepo, decimal.NewFromInt(5)),
		JWTSecret: testSecret,
	})
	return &routerFixture{app: app, userRepo: userRepo, expenseRepo: expenseRepo, accountRepo: accountRepo}
}

func bearerFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "test", 5)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestUsers_InexistenteDevuelve404(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("GET", "/api/users/no-existe", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin-1", entity.RoleAdmin))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUsers_SuspenderInexistenteDevuelve404(t *testing.T) {
	f := newRouterFixture(t)

	body, _ := json.Marshal(fiber.Map{"reason": "impago"})
	req := httptest.NewRequest("POST", "/api/users/no-existe/suspend", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "admin-1", entity.RoleAdmin))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestExpenses_VentasPuedeRegistrar(t *testing.T) {
	f := newRouterFixture(t)
	f.accountRepo.accounts["acc-1"] = &entity.Account{
		ID: "acc-1", Code: "5000", Name: "Gastos operativos",
		Type: entity.AccountTypeExpense, Active: true,
	}

	body, _ := json.Marshal(fiber.Map{
		"title":        "Taxi a cliente",
		"amount_cents": 3000,
		"category":     entity.ExpenseCategoryTravel,
		"account_id":   "acc-1",
	})
	req := httptest.NewRequest("POST", "/api/expenses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "seller-1", entity.RoleSales))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestExpenses_VentasPuedeListar(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("GET", "/api/expenses", nil)
	req.Header.Set("Authorization", bearerFor(t, "seller-1", entity.RoleSales))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestExpenses_VentasNoDecide(t *testing.T) {
	f := newRouterFixture(t)
	f.expenseRepo.expenses["exp-1"] = &entity.Expense{ID: "exp-1", Status: entity.ExpenseStatusPending}

	req := httptest.NewRequest("POST", "/api/expenses/exp-1/approve", nil)
	req.Header.Set("Authorization", bearerFor(t, "seller-1", entity.RoleSales))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, entity.ExpenseStatusPending, f.expenseRepo.expenses["exp-1"].Status)
}

func TestExpenses_ClienteSinAcceso(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("GET", "/api/expenses", nil)
	req.Header.Set("Authorization", bearerFor(t, "cliente-1", entity.RoleCustomer))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
