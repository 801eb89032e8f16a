package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// Fakes en memoria. El runner de ledger ejecuta el closure directamente: el
// contrato observable (releer saldo, apunte + saldo juntos o nada) se cubre
// haciendo fallar pasos individuales.

type fakePlanRepo struct{ plans map[string]*entity.Plan }

func (r *fakePlanRepo) Create(p *entity.Plan) error            { r.plans[p.ID] = p; return nil }
func (r *fakePlanRepo) GetByID(id string) (*entity.Plan, error) { return r.plans[id], nil }
func (r *fakePlanRepo) Update(p *entity.Plan) error            { r.plans[p.ID] = p; return nil }
func (r *fakePlanRepo) List(onlyActive bool) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.plans {
		if !onlyActive || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSubRepo struct{ subs map[string]*entity.Subscription }

func (r *fakeSubRepo) Create(s *entity.Subscription) error { r.subs[s.ID] = s; return nil }
func (r *fakeSubRepo) GetByID(id string) (*entity.Subscription, error) { return r.subs[id], nil }
func (r *fakeSubRepo) GetByIDForUpdate(id string) (*entity.Subscription, error) {
	return r.subs[id], nil
}
func (r *fakeSubRepo) Update(s *entity.Subscription) error { r.subs[s.ID] = s; return nil }
func (r *fakeSubRepo) UpdateBalance(id string, balance int64) error {
	if s, ok := r.subs[id]; ok {
		s.TokenBalance = balance
	}
	return nil
}
func (r *fakeSubRepo) ListByUser(userID string) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakeSubRepo) List(limit, offset int) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.subs {
		out = append(out, s)
	}
	return out, nil
}

type fakeUsageRepo struct{ rows []*entity.TokenUsage }

func (r *fakeUsageRepo) Create(u *entity.TokenUsage) error { r.rows = append(r.rows, u); return nil }
func (r *fakeUsageRepo) ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.TokenUsage, error) {
	var out []*entity.TokenUsage
	for _, u := range r.rows {
		if u.SubscriptionID == subscriptionID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(string, int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(id string) error                  { delete(r.users, id); return nil }

type fakeLedgerRunner struct {
	subRepo   *fakeSubRepo
	usageRepo *fakeUsageRepo
}

func (t *fakeLedgerRunner) RunLedger(ctx context.Context, fn func(
	subRepo repository.SubscriptionRepository,
	usageRepo repository.TokenUsageRepository,
) error) error {
	return fn(t.subRepo, t.usageRepo)
}

type fixture struct {
	uc        *UseCase
	planRepo  *fakePlanRepo
	subRepo   *fakeSubRepo
	usageRepo *fakeUsageRepo
	userRepo  *fakeUserRepo
}

func newFixture() *fixture {
	planRepo := &fakePlanRepo{plans: make(map[string]*entity.Plan)}
	subRepo := &fakeSubRepo{subs: make(map[string]*entity.Subscription)}
	usageRepo := &fakeUsageRepo{}
	userRepo := &fakeUserRepo{users: make(map[string]*entity.User)}
	tx := &fakeLedgerRunner{subRepo: subRepo, usageRepo: usageRepo}
	return &fixture{
		uc:        NewUseCase(tx, planRepo, subRepo, usageRepo, userRepo),
		planRepo:  planRepo,
		subRepo:   subRepo,
		usageRepo: usageRepo,
		userRepo:  userRepo,
	}
}

func TestDeductTokens_DescuentaYRegistra(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{
		ID: "sub-1", UserID: "cust-1", Status: entity.SubscriptionStatusActive, TokenBalance: 500,
	}

	usage, err := f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1",
		Amount:         200,
		Description:    "generación de informe",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), usage.Amount)

	assert.Equal(t, int64(300), f.subRepo.subs["sub-1"].TokenBalance)
	require.Len(t, f.usageRepo.rows, 1)
	assert.Equal(t, int64(200), f.usageRepo.rows[0].Amount)
}

func TestDeductTokens_SaldoExactoLuegoInsuficiente(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{
		ID: "sub-1", UserID: "cust-1", Status: entity.SubscriptionStatusActive, TokenBalance: 500,
	}

	// Consumir exactamente el saldo es válido: queda en cero.
	_, err := f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1", Amount: 500, Description: "batch",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.subRepo.subs["sub-1"].TokenBalance)

	// Un token más se rechaza sin tocar saldo ni log.
	_, err = f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1", Amount: 1, Description: "extra",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(0), f.subRepo.subs["sub-1"].TokenBalance)
	assert.Len(t, f.usageRepo.rows, 1)
}

func TestDeductTokens_ClienteNoTocaAjenas(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{
		ID: "sub-1", UserID: "otro-cliente", Status: entity.SubscriptionStatusActive, TokenBalance: 500,
	}

	_, err := f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1", Amount: 10, Description: "x",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.usageRepo.rows)
}

func TestDeductTokens_MontoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1", Amount: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.DeductTokens(context.Background(), "cust-1", entity.RoleCustomer, dto.DeductTokensRequest{
		SubscriptionID: "sub-1", Amount: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTopUp_AcreditaSinApunteEnLog(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{
		ID: "sub-1", UserID: "cust-1", Status: entity.SubscriptionStatusActive, TokenBalance: 100,
	}

	resp, err := f.uc.TopUp(context.Background(), entity.RoleAdmin, "sub-1", dto.TopUpRequest{Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.TokenBalance)

	// El log registra únicamente descuentos; la recarga no deja rastro ahí.
	assert.Empty(t, f.usageRepo.rows)
}

func TestTopUp_SoloAdmin(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{ID: "sub-1", UserID: "cust-1", TokenBalance: 100}

	for _, role := range []string{entity.RoleSales, entity.RoleFinance, entity.RoleCustomer} {
		_, err := f.uc.TopUp(context.Background(), role, "sub-1", dto.TopUpRequest{Amount: 100})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s", role)
	}
	assert.Equal(t, int64(100), f.subRepo.subs["sub-1"].TokenBalance)
}

func TestSubscribe_SaldoInicialEsLaAsignacionDelPlan(t *testing.T) {
	f := newFixture()
	f.userRepo.users["cust-1"] = &entity.User{ID: "cust-1", Role: entity.RoleCustomer, Status: entity.UserStatusActive}
	f.planRepo.plans["plan-1"] = &entity.Plan{ID: "plan-1", Name: "Pro", TokenAmount: 10000, Active: true}

	resp, err := f.uc.Subscribe(context.Background(), dto.CreateSubscriptionRequest{
		UserID: "cust-1", PlanID: "plan-1", AutoRenew: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusActive, resp.Status)
	assert.Equal(t, int64(10000), resp.TokenBalance)
	assert.True(t, resp.PeriodEnd.After(resp.PeriodStart))
}

func TestSubscribe_PlanInactivoFalla(t *testing.T) {
	f := newFixture()
	f.userRepo.users["cust-1"] = &entity.User{ID: "cust-1", Role: entity.RoleCustomer}
	f.planRepo.plans["plan-1"] = &entity.Plan{ID: "plan-1", Name: "Legacy", TokenAmount: 100, Active: false}

	_, err := f.uc.Subscribe(context.Background(), dto.CreateSubscriptionRequest{
		UserID: "cust-1", PlanID: "plan-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPlans_ClienteSoloVeActivos(t *testing.T) {
	f := newFixture()
	f.planRepo.plans["p-1"] = &entity.Plan{ID: "p-1", Name: "Pro", TokenAmount: 100, Active: true}
	f.planRepo.plans["p-2"] = &entity.Plan{ID: "p-2", Name: "Legacy", TokenAmount: 100, Active: false}

	plans, err := f.uc.ListPlans(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Pro", plans[0].Name)

	plans, err = f.uc.ListPlans(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestListUsage_ClienteSoloLasSuyas(t *testing.T) {
	f := newFixture()
	f.subRepo.subs["sub-1"] = &entity.Subscription{ID: "sub-1", UserID: "otro-cliente"}

	_, err := f.uc.ListUsage(context.Background(), "cust-1", entity.RoleCustomer, "sub-1", 10, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
