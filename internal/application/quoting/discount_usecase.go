package quoting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/money"
	"github.com/jhoicas/Cotiza-api/internal/domain/policy"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// DiscountUseCase gestiona la cola de aprobación de descuentos. La decisión
// (aprobar/rechazar) corre dentro de una transacción con bloqueo de fila:
// una solicitud ya decidida no puede decidirse dos veces, ni siquiera con dos
// decisiones concurrentes.
type DiscountUseCase struct {
	txRunner     DiscountTxRunner
	discountRepo repository.DiscountRequestRepository
	quoteRepo    repository.QuoteRepository
	userRepo     repository.UserRepository
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(
	txRunner DiscountTxRunner,
	discountRepo repository.DiscountRequestRepository,
	quoteRepo repository.QuoteRepository,
	userRepo repository.UserRepository,
) *DiscountUseCase {
	return &DiscountUseCase{
		txRunner:     txRunner,
		discountRepo: discountRepo,
		quoteRepo:    quoteRepo,
		userRepo:     userRepo,
	}
}

// Create registra una solicitud de descuento explícita (porcentaje XOR monto
// fijo, motivo obligatorio).
func (uc *DiscountUseCase) Create(ctx context.Context, actorID string, in dto.CreateDiscountRequest) (*dto.DiscountRequestResponse, error) {
	if in.Reason == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	percentBased := in.DiscountPercent.IsPositive()
	amountBased := in.DiscountCents > 0
	if percentBased == amountBased { // ninguno o ambos
		return nil, domain.ErrInvalidInput
	}
	if percentBased && in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.QuoteID != "" {
		quote, err := uc.quoteRepo.GetByID(in.QuoteID)
		if err != nil {
			return nil, err
		}
		if quote == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	req := &entity.DiscountRequest{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		RequestedBy:     actorID,
		QuoteID:         in.QuoteID,
		Status:          entity.DiscountStatusPending,
		DiscountPercent: in.DiscountPercent,
		DiscountCents:   in.DiscountCents,
		Reason:          in.Reason,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.discountRepo.Create(req); err != nil {
		return nil, err
	}
	return toDiscountResponse(req), nil
}

// Approve decide favorablemente una solicitud pendiente. El descuento se
// recalcula contra el subtotal VIVO de la cotización (no el de la fecha de
// solicitud) y la cotización queda con descuento y total recalculados según
// la aritmética estándar.
func (uc *DiscountUseCase) Approve(ctx context.Context, actorID, actorRole, id string, in dto.DecideDiscountRequest) (*dto.DiscountRequestResponse, error) {
	if !policy.Can(actorRole, policy.ActionDecideDiscount) {
		return nil, domain.ErrForbidden
	}
	var decided *entity.DiscountRequest
	err := uc.txRunner.RunDiscountDecision(ctx, func(
		discountRepo repository.DiscountRequestRepository,
		quoteRepo repository.QuoteRepository,
	) error {
		req, err := discountRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		// Precondición re-derivada bajo el lock: decidir dos veces es error,
		// no un no-op silencioso.
		if req.Status != entity.DiscountStatusPending {
			return domain.ErrInvalidTransition
		}

		if req.QuoteID != "" {
			quote, err := quoteRepo.GetByIDForUpdate(req.QuoteID)
			if err != nil {
				return err
			}
			if quote == nil {
				return domain.ErrNotFound
			}
			if req.IsAmountBased() {
				tot, pct := money.RecomputeWithAmount(quote.SubtotalCents, req.DiscountCents, quote.VatRate)
				quote.DiscountPercent = pct
				quote.DiscountCents = tot.DiscountCents
				quote.VatCents = tot.VatCents
				quote.TotalCents = tot.TotalCents
			} else {
				tot := money.RecomputeTotals(quote.SubtotalCents, req.DiscountPercent, quote.VatRate)
				quote.DiscountPercent = money.ClampPercent(req.DiscountPercent)
				quote.DiscountCents = tot.DiscountCents
				quote.VatCents = tot.VatCents
				quote.TotalCents = tot.TotalCents
			}
			quote.UpdatedAt = time.Now()
			if err := quoteRepo.Update(quote); err != nil {
				return err
			}
		}

		now := time.Now()
		req.Status = entity.DiscountStatusApproved
		req.ApprovedBy = actorID
		req.DecisionNotes = in.DecisionNotes
		req.DecidedAt = &now
		req.UpdatedAt = now
		if err := discountRepo.Update(req); err != nil {
			return err
		}
		decided = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(decided), nil
}

// Reject decide negativamente una solicitud pendiente; la cotización asociada
// queda intacta.
func (uc *DiscountUseCase) Reject(ctx context.Context, actorID, actorRole, id string, in dto.DecideDiscountRequest) (*dto.DiscountRequestResponse, error) {
	if !policy.Can(actorRole, policy.ActionDecideDiscount) {
		return nil, domain.ErrForbidden
	}
	var decided *entity.DiscountRequest
	err := uc.txRunner.RunDiscountDecision(ctx, func(
		discountRepo repository.DiscountRequestRepository,
		_ repository.QuoteRepository,
	) error {
		req, err := discountRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.DiscountStatusPending {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		req.Status = entity.DiscountStatusRejected
		req.ApprovedBy = actorID
		req.DecisionNotes = in.DecisionNotes
		req.DecidedAt = &now
		req.UpdatedAt = now
		if err := discountRepo.Update(req); err != nil {
			return err
		}
		decided = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(decided), nil
}

// GetByID obtiene una solicitud.
func (uc *DiscountUseCase) GetByID(ctx context.Context, id string) (*dto.DiscountRequestResponse, error) {
	req, err := uc.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toDiscountResponse(req), nil
}

// List lista solicitudes, opcionalmente por estado.
func (uc *DiscountUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.DiscountRequestResponse, error) {
	reqs, err := uc.discountRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DiscountRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toDiscountResponse(r))
	}
	return out, nil
}

func toDiscountResponse(r *entity.DiscountRequest) *dto.DiscountRequestResponse {
	resp := &dto.DiscountRequestResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		RequestedBy:     r.RequestedBy,
		ApprovedBy:      r.ApprovedBy,
		QuoteID:         r.QuoteID,
		Status:          r.Status,
		DiscountPercent: r.DiscountPercent,
		DiscountCents:   r.DiscountCents,
		Reason:          r.Reason,
		DecisionNotes:   r.DecisionNotes,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		resp.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	return resp
}
