package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/policy"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// UseCase gestiona planes, suscripciones y el ledger de tokens.
type UseCase struct {
	txRunner  LedgerTxRunner
	planRepo  repository.PlanRepository
	subRepo   repository.SubscriptionRepository
	usageRepo repository.TokenUsageRepository
	userRepo  repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner LedgerTxRunner,
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
	usageRepo repository.TokenUsageRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		planRepo:  planRepo,
		subRepo:   subRepo,
		usageRepo: usageRepo,
		userRepo:  userRepo,
	}
}

// ── Planes ────────────────────────────────────────────────────────────────────

// CreatePlan crea un plan de suscripción (solo admin).
func (uc *UseCase) CreatePlan(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.Name == "" || in.PriceCents < 0 || in.TokenAmount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	plan := &entity.Plan{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		TokenAmount: in.TokenAmount,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// UpdatePlan actualiza nombre, precio, asignación o estado de un plan.
func (uc *UseCase) UpdatePlan(ctx context.Context, id string, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		plan.Name = in.Name
	}
	if in.Description != "" {
		plan.Description = in.Description
	}
	if in.PriceCents > 0 {
		plan.PriceCents = in.PriceCents
	}
	if in.TokenAmount > 0 {
		plan.TokenAmount = in.TokenAmount
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}
	plan.UpdatedAt = time.Now()
	if err := uc.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// ListPlans lista planes; los clientes solo ven los activos.
func (uc *UseCase) ListPlans(ctx context.Context, actorRole string) ([]*dto.PlanResponse, error) {
	onlyActive := !policy.Can(actorRole, policy.ActionManagePlans)
	plans, err := uc.planRepo.List(onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

// ── Suscripciones ─────────────────────────────────────────────────────────────

// Subscribe da de alta una suscripción: el saldo inicial de tokens es la
// asignación completa del plan y el período arranca hoy.
func (uc *UseCase) Subscribe(ctx context.Context, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if in.UserID == "" || in.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if !plan.Active {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sub := &entity.Subscription{
		ID:           uuid.New().String(),
		UserID:       in.UserID,
		PlanID:       in.PlanID,
		Status:       entity.SubscriptionStatusActive,
		TokenBalance: plan.TokenAmount,
		PeriodStart:  now,
		PeriodEnd:    now.AddDate(0, 1, 0),
		AutoRenew:    in.AutoRenew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.subRepo.Create(sub); err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub), nil
}

// GetSubscription obtiene una suscripción; un cliente solo puede ver las suyas.
func (uc *UseCase) GetSubscription(ctx context.Context, actorID, actorRole, id string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.loadForActor(actorID, actorRole, id)
	if err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub), nil
}

// ListSubscriptions lista suscripciones: los clientes ven solo las propias.
func (uc *UseCase) ListSubscriptions(ctx context.Context, actorID, actorRole string, limit, offset int) ([]*dto.SubscriptionResponse, error) {
	var subs []*entity.Subscription
	var err error
	if actorRole == entity.RoleCustomer {
		subs, err = uc.subRepo.ListByUser(actorID)
	} else {
		subs, err = uc.subRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriptionResponse(s))
	}
	return out, nil
}

// ── Ledger de tokens ──────────────────────────────────────────────────────────

// DeductTokens descuenta tokens del saldo. Corre en transacción con bloqueo
// de fila: la verificación de saldo, el apunte append-only y el nuevo saldo
// son atómicos, por lo que dos descuentos concurrentes nunca dejan el saldo
// negativo ni el log desincronizado del saldo.
func (uc *UseCase) DeductTokens(ctx context.Context, actorID, actorRole string, in dto.DeductTokensRequest) (*dto.TokenUsageResponse, error) {
	if in.SubscriptionID == "" || in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var usage *entity.TokenUsage
	err := uc.txRunner.RunLedger(ctx, func(
		subRepo repository.SubscriptionRepository,
		usageRepo repository.TokenUsageRepository,
	) error {
		sub, err := subRepo.GetByIDForUpdate(in.SubscriptionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		if actorRole == entity.RoleCustomer && sub.UserID != actorID {
			return domain.ErrForbidden
		}
		if in.Amount > sub.TokenBalance {
			return domain.ErrInsufficientBalance
		}
		usage = &entity.TokenUsage{
			ID:             uuid.New().String(),
			SubscriptionID: sub.ID,
			Amount:         in.Amount,
			Description:    in.Description,
			UsedAt:         time.Now(),
		}
		if err := usageRepo.Create(usage); err != nil {
			return err
		}
		return subRepo.UpdateBalance(sub.ID, sub.TokenBalance-in.Amount)
	})
	if err != nil {
		return nil, err
	}
	return toUsageResponse(usage), nil
}

// TopUp acredita tokens a una suscripción (solo admin). La recarga NO genera
// apunte en el log de consumo: el log registra únicamente descuentos.
func (uc *UseCase) TopUp(ctx context.Context, actorRole, id string, in dto.TopUpRequest) (*dto.SubscriptionResponse, error) {
	if !policy.Can(actorRole, policy.ActionTopUpTokens) {
		return nil, domain.ErrForbidden
	}
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Subscription
	err := uc.txRunner.RunLedger(ctx, func(
		subRepo repository.SubscriptionRepository,
		_ repository.TokenUsageRepository,
	) error {
		sub, err := subRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		sub.TokenBalance += in.Amount
		if err := subRepo.UpdateBalance(sub.ID, sub.TokenBalance); err != nil {
			return err
		}
		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSubscriptionResponse(updated), nil
}

// ListUsage lista el historial de consumo de una suscripción.
func (uc *UseCase) ListUsage(ctx context.Context, actorID, actorRole, subscriptionID string, limit, offset int) ([]*dto.TokenUsageResponse, error) {
	if _, err := uc.loadForActor(actorID, actorRole, subscriptionID); err != nil {
		return nil, err
	}
	usages, err := uc.usageRepo.ListBySubscription(subscriptionID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TokenUsageResponse, 0, len(usages))
	for _, u := range usages {
		out = append(out, toUsageResponse(u))
	}
	return out, nil
}

func (uc *UseCase) loadForActor(actorID, actorRole, id string) (*entity.Subscription, error) {
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	if actorRole == entity.RoleCustomer && sub.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	return sub, nil
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		TokenAmount: p.TokenAmount,
		Active:      p.Active,
	}
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		PlanID:       s.PlanID,
		Status:       s.Status,
		TokenBalance: s.TokenBalance,
		PeriodStart:  s.PeriodStart,
		PeriodEnd:    s.PeriodEnd,
		AutoRenew:    s.AutoRenew,
	}
}

func toUsageResponse(u *entity.TokenUsage) *dto.TokenUsageResponse {
	return &dto.TokenUsageResponse{
		ID:             u.ID,
		SubscriptionID: u.SubscriptionID,
		Amount:         u.Amount,
		Description:    u.Description,
		UsedAt:         u.UsedAt,
	}
}
