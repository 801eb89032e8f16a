package quoting

import (
	"context"
	"fmt"
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

// Options parámetros de numeración y vigencia.
type Options struct {
	QuotePrefix    string          // ej. COT
	DefaultVatRate decimal.Decimal // porcentaje, ej. 5
	QuoteDays      int             // días de vigencia
}

// QuoteUseCase gestiona el ciclo de vida de cotizaciones: creación con
// política de descuentos, transiciones de estado y consulta.
type QuoteUseCase struct {
	txRunner  QuoteTxRunner
	quoteRepo repository.QuoteRepository
	userRepo  repository.UserRepository
	opts      Options
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(txRunner QuoteTxRunner, quoteRepo repository.QuoteRepository, userRepo repository.UserRepository, opts Options) *QuoteUseCase {
	if opts.QuotePrefix == "" {
		opts.QuotePrefix = "COT"
	}
	if opts.QuoteDays <= 0 {
		opts.QuoteDays = 30
	}
	return &QuoteUseCase{txRunner: txRunner, quoteRepo: quoteRepo, userRepo: userRepo, opts: opts}
}

// CreateQuote crea una cotización para un cliente. Si el descuento pedido
// supera el límite del solicitante (y no es admin), la cotización se guarda
// SIN descuento y se encola una DiscountRequest pendiente: el camino directo
// de mutación nunca aplica un descuento fuera de límite.
func (uc *QuoteUseCase) CreateQuote(ctx context.Context, actorID, actorRole string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	items := toLineItems(in.Items)
	subtotal, err := money.SubtotalCents(items)
	if err != nil {
		return nil, err
	}

	vatRate := uc.opts.DefaultVatRate
	if in.VatRate != nil {
		vatRate = money.ClampPercent(*in.VatRate)
	}

	requestedPct := money.ClampPercent(in.DiscountPercent)
	applyPct := requestedPct
	needsApproval := false
	if requestedPct.IsPositive() && policy.ExceedsLimit(actorRole, actor.DiscountLimit, requestedPct) {
		if in.DiscountReason == "" {
			return nil, domain.ErrInvalidInput // la solicitud de aprobación exige motivo
		}
		needsApproval = true
		applyPct = decimal.Zero
	}

	tot := money.RecomputeTotals(subtotal, applyPct, vatRate)
	now := time.Now()
	quote := &entity.Quote{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		CreatedBy:       actorID,
		QuoteNumber:     fmt.Sprintf("%s-%d", uc.opts.QuotePrefix, now.UnixNano()),
		Status:          entity.QuoteStatusPending,
		SubtotalCents:   tot.SubtotalCents,
		DiscountPercent: applyPct,
		DiscountCents:   tot.DiscountCents,
		VatRate:         vatRate,
		VatCents:        tot.VatCents,
		TotalCents:      tot.TotalCents,
		Notes:           in.Notes,
		ExpiryDate:      now.AddDate(0, 0, uc.opts.QuoteDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	quoteItems := buildQuoteItems(quote.ID, items)

	var discountReq *entity.DiscountRequest
	if needsApproval {
		discountReq = &entity.DiscountRequest{
			ID:              uuid.New().String(),
			UserID:          in.UserID,
			RequestedBy:     actorID,
			QuoteID:         quote.ID,
			Status:          entity.DiscountStatusPending,
			DiscountPercent: requestedPct,
			Reason:          in.DiscountReason,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	err = uc.txRunner.RunQuoteCreate(ctx, func(
		quoteRepo repository.QuoteRepository,
		discountRepo repository.DiscountRequestRepository,
	) error {
		if err := quoteRepo.Create(quote); err != nil {
			return err
		}
		for _, it := range quoteItems {
			if err := quoteRepo.CreateItem(it); err != nil {
				return err
			}
		}
		if discountReq != nil {
			return discountRepo.Create(discountReq)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toQuoteResponse(quote, quoteItems)
	if discountReq != nil {
		resp.DiscountRequestID = discountReq.ID
	}
	return resp, nil
}

// GetQuote obtiene una cotización; un cliente solo puede ver las suyas.
func (uc *QuoteUseCase) GetQuote(ctx context.Context, actorID, actorRole, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if actorRole == entity.RoleCustomer && quote.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// ListQuotes lista cotizaciones: los clientes ven solo las propias.
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, actorID, actorRole string, limit, offset int) ([]*dto.QuoteResponse, error) {
	var quotes []*entity.Quote
	var err error
	if actorRole == entity.RoleCustomer {
		quotes, err = uc.quoteRepo.ListByUser(actorID, limit, offset)
	} else {
		quotes, err = uc.quoteRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteResponse(q, nil))
	}
	return out, nil
}

// UpdateStatus aplica una transición de estado. pending es el único estado no
// terminal: desde accepted/rejected/expired no hay vuelta atrás. El dueño
// (cliente) solo puede aceptar o rechazar; el staff puede forzar cualquier
// transición (ej. marcar expired).
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, actorID, actorRole, id string, in dto.UpdateQuoteStatusRequest) (*dto.QuoteResponse, error) {
	switch in.Status {
	case entity.QuoteStatusAccepted, entity.QuoteStatusRejected, entity.QuoteStatusExpired:
	default:
		return nil, domain.ErrInvalidInput
	}
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanSetQuoteStatus(actorRole, actorID, quote, in.Status) {
		return nil, domain.ErrForbidden
	}
	if entity.QuoteStatusTerminal(quote.Status) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.quoteRepo.UpdateStatus(id, in.Status); err != nil {
		return nil, err
	}
	quote.Status = in.Status
	return toQuoteResponse(quote, nil), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func toLineItems(items []dto.QuoteItemRequest) []money.LineItem {
	out := make([]money.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, money.LineItem{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	return out
}

func buildQuoteItems(quoteID string, items []money.LineItem) []*entity.QuoteItem {
	out := make([]*entity.QuoteItem, 0, len(items))
	for _, it := range items {
		out = append(out, &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quoteID,
			Name:        it.Name,
			Description: it.Description,
			PriceCents:  money.ToCents(it.Price),
			Quantity:    it.Quantity,
		})
	}
	return out
}

func toQuoteResponse(q *entity.Quote, items []*entity.QuoteItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:              q.ID,
		UserID:          q.UserID,
		CreatedBy:       q.CreatedBy,
		QuoteNumber:     q.QuoteNumber,
		Status:          q.Status,
		SubtotalCents:   q.SubtotalCents,
		DiscountPercent: q.DiscountPercent,
		DiscountCents:   q.DiscountCents,
		VatRate:         q.VatRate,
		VatCents:        q.VatCents,
		TotalCents:      q.TotalCents,
		Total:           money.FromCents(q.TotalCents),
		Notes:           q.Notes,
		ExpiryDate:      q.ExpiryDate.Format("2006-01-02"),
		Items:           make([]dto.QuoteItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuoteItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       money.FromCents(it.PriceCents),
			PriceCents:  it.PriceCents,
			Quantity:    it.Quantity,
		})
	}
	return resp
}
