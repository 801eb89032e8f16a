package billing

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
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// Options parámetros de numeración y vencimiento.
type Options struct {
	InvoicePrefix  string          // ej. FAC
	DefaultVatRate decimal.Decimal // porcentaje
	DueDays        int             // plazo de pago
}

// InvoiceUseCase gestiona el ciclo de vida de facturas: creación (independiente
// o desde cotización), marcado de pago y vencimiento.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	quoteRepo   repository.QuoteRepository
	userRepo    repository.UserRepository
	gateway     PaymentGateway
	opts        Options
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
	opts Options,
) *InvoiceUseCase {
	if opts.InvoicePrefix == "" {
		opts.InvoicePrefix = "FAC"
	}
	if opts.DueDays <= 0 {
		opts.DueDays = 30
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		opts:        opts,
	}
}

// CreateInvoice crea una factura independiente (sin cotización de origen).
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, actorID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
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
	vatRate := uc.opts.DefaultVatRate
	if in.VatRate != nil {
		vatRate = money.ClampPercent(*in.VatRate)
	}
	lineItems := make([]money.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		lineItems = append(lineItems, money.LineItem{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	tot, err := money.ComputeTotals(lineItems, in.DiscountPercent, vatRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		InvoiceNumber:   fmt.Sprintf("%s-%d", uc.opts.InvoicePrefix, now.UnixNano()),
		Status:          entity.InvoiceStatusPending,
		SubtotalCents:   tot.SubtotalCents,
		DiscountPercent: money.ClampPercent(in.DiscountPercent),
		DiscountCents:   tot.DiscountCents,
		VatRate:         vatRate,
		VatCents:        tot.VatCents,
		TotalCents:      tot.TotalCents,
		DueDate:         now.AddDate(0, 0, uc.opts.DueDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]*entity.InvoiceItem, 0, len(lineItems))
	for _, it := range lineItems {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Name:        it.Name,
			Description: it.Description,
			PriceCents:  money.ToCents(it.Price),
			Quantity:    it.Quantity,
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.QuoteRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// CreateFromQuote convierte una cotización aceptada en factura: copia líneas
// y descuento tal cual (snapshot congelado) y recalcula los totales de la
// factura con la aritmética estándar en lugar de copiarlos a ciegas.
func (uc *InvoiceUseCase) CreateFromQuote(ctx context.Context, actorID, quoteID string) (*dto.InvoiceResponse, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status != entity.QuoteStatusAccepted {
		return nil, domain.ErrInvalidTransition
	}
	quoteItems, err := uc.quoteRepo.GetItemsByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	if len(quoteItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var subtotal int64
	for _, it := range quoteItems {
		subtotal += it.PriceCents * it.Quantity
	}
	tot := money.RecomputeTotals(subtotal, quote.DiscountPercent, quote.VatRate)

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		UserID:          quote.UserID,
		QuoteID:         quote.ID,
		InvoiceNumber:   fmt.Sprintf("%s-%d", uc.opts.InvoicePrefix, now.UnixNano()),
		Status:          entity.InvoiceStatusPending,
		SubtotalCents:   tot.SubtotalCents,
		DiscountPercent: quote.DiscountPercent,
		DiscountCents:   tot.DiscountCents,
		VatRate:         quote.VatRate,
		VatCents:        tot.VatCents,
		TotalCents:      tot.TotalCents,
		DueDate:         now.AddDate(0, 0, uc.opts.DueDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]*entity.InvoiceItem, 0, len(quoteItems))
	for _, qi := range quoteItems {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Name:        qi.Name,
			Description: qi.Description,
			PriceCents:  qi.PriceCents,
			Quantity:    qi.Quantity,
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.QuoteRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// GetInvoice obtiene una factura; un cliente solo puede ver las suyas.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, actorID, actorRole, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.loadForActor(actorID, actorRole, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListInvoices lista facturas: los clientes ven solo las propias.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, actorID, actorRole string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	var invoices []*entity.Invoice
	var err error
	if actorRole == entity.RoleCustomer {
		invoices, err = uc.invoiceRepo.ListByUser(actorID, limit, offset)
	} else {
		invoices, err = uc.invoiceRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// UpdateStatus pasa una factura entre pending y overdue (decisión explícita
// del staff, no hay disparador temporal). paid NUNCA pasa por aquí: esa
// transición es exclusiva de MarkAsPaid para garantizar que fecha, método y
// referencia de pago se estampan juntos.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if in.Status != entity.InvoiceStatusOverdue && in.Status != entity.InvoiceStatusPending {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	inv.Status = in.Status
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, nil), nil
}

// MarkAsPaid es la única transición autoritativa a paid: estampa paid_date,
// método y referencia en una sola operación, venga de una acción manual del
// staff o del callback de la pasarela.
func (uc *InvoiceUseCase) MarkAsPaid(ctx context.Context, id, method, reference string) (*dto.InvoiceResponse, error) {
	if method == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidDate = &now
	inv.PaymentMethod = method
	inv.PaymentReference = reference
	inv.UpdatedAt = now
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, nil), nil
}

// CreatePaymentIntent inicia un cobro contra la pasarela configurada. Si el
// intento se resuelve de inmediato (stub de desarrollo), el resultado se
// canaliza por MarkAsPaid igual que un callback real.
func (uc *InvoiceUseCase) CreatePaymentIntent(ctx context.Context, actorID, actorRole, id string) (*dto.PaymentIntentResponse, error) {
	inv, err := uc.loadForActor(actorID, actorRole, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == entity.InvoiceStatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	intent, err := uc.gateway.CreatePaymentIntent(ctx, inv.ID, inv.TotalCents)
	if err != nil {
		return nil, err
	}
	if intent.Status == "succeeded" {
		if _, err := uc.MarkAsPaid(ctx, inv.ID, intent.Method, intent.Reference); err != nil {
			return nil, err
		}
	}
	return &dto.PaymentIntentResponse{
		IntentID:    intent.ID,
		AmountCents: intent.AmountCents,
		Status:      intent.Status,
	}, nil
}

func (uc *InvoiceUseCase) loadForActor(actorID, actorRole, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if actorRole == entity.RoleCustomer && inv.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		UserID:           inv.UserID,
		QuoteID:          inv.QuoteID,
		InvoiceNumber:    inv.InvoiceNumber,
		Status:           inv.Status,
		SubtotalCents:    inv.SubtotalCents,
		DiscountPercent:  inv.DiscountPercent,
		DiscountCents:    inv.DiscountCents,
		VatRate:          inv.VatRate,
		VatCents:         inv.VatCents,
		TotalCents:       inv.TotalCents,
		Total:            money.FromCents(inv.TotalCents),
		DueDate:          inv.DueDate.Format("2006-01-02"),
		PaymentMethod:    inv.PaymentMethod,
		PaymentReference: inv.PaymentReference,
		Items:            make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	if inv.PaidDate != nil {
		resp.PaidDate = inv.PaidDate.Format("2006-01-02")
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
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
