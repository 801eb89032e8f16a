package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// Fakes en memoria para los puertos que usa la facturación.

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error { r.invoices[inv.ID] = inv; return nil }
func (r *fakeInvoiceRepo) CreateItem(it *entity.InvoiceItem) error {
	r.items[it.InvoiceID] = append(r.items[it.InvoiceID], it)
	return nil
}
func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) { return r.invoices[id], nil }
func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}
func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error { r.invoices[inv.ID] = inv; return nil }
func (r *fakeInvoiceRepo) ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *fakeInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}
func (r *fakeInvoiceRepo) SumVatPaidBetween(from, to time.Time) (int64, error) {
	var sum int64
	for _, inv := range r.invoices {
		if inv.Status == entity.InvoiceStatusPaid && inv.PaidDate != nil &&
			!inv.PaidDate.Before(from) && !inv.PaidDate.After(to) {
			sum += inv.VatCents
		}
	}
	return sum, nil
}

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
	items  map[string][]*entity.QuoteItem
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes: make(map[string]*entity.Quote),
		items:  make(map[string][]*entity.QuoteItem),
	}
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error { r.quotes[q.ID] = q; return nil }
func (r *fakeQuoteRepo) CreateItem(it *entity.QuoteItem) error {
	r.items[it.QuoteID] = append(r.items[it.QuoteID], it)
	return nil
}
func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error)          { return r.quotes[id], nil }
func (r *fakeQuoteRepo) GetByIDForUpdate(id string) (*entity.Quote, error) { return r.quotes[id], nil }
func (r *fakeQuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	return r.items[quoteID], nil
}
func (r *fakeQuoteRepo) Update(q *entity.Quote) error { r.quotes[q.ID] = q; return nil }
func (r *fakeQuoteRepo) UpdateStatus(id, status string) error {
	if q, ok := r.quotes[id]; ok {
		q.Status = status
	}
	return nil
}
func (r *fakeQuoteRepo) ListByUser(string, int, int) ([]*entity.Quote, error) { return nil, nil }
func (r *fakeQuoteRepo) List(int, int) ([]*entity.Quote, error)               { return nil, nil }

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error                { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)    { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(string, int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(id string) error                     { delete(r.users, id); return nil }

type fakeBillingRunner struct {
	invoiceRepo *fakeInvoiceRepo
	quoteRepo   *fakeQuoteRepo
}

func (t *fakeBillingRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return fn(t.invoiceRepo, t.quoteRepo)
}

// fakeGateway devuelve un intento con el estado configurado.
type fakeGateway struct {
	status string
	calls  int
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, invoiceID string, amountCents int64) (*PaymentIntent, error) {
	g.calls++
	return &PaymentIntent{
		ID:          "intent-1",
		InvoiceID:   invoiceID,
		AmountCents: amountCents,
		Status:      g.status,
		Method:      "gateway",
		Reference:   "ref-1",
	}, nil
}

type billingFixture struct {
	uc          *InvoiceUseCase
	invoiceRepo *fakeInvoiceRepo
	quoteRepo   *fakeQuoteRepo
	userRepo    *fakeUserRepo
	gateway     *fakeGateway
}

func newBillingFixture(gatewayStatus string) *billingFixture {
	invoiceRepo := newFakeInvoiceRepo()
	quoteRepo := newFakeQuoteRepo()
	userRepo := &fakeUserRepo{users: make(map[string]*entity.User)}
	gateway := &fakeGateway{status: gatewayStatus}
	tx := &fakeBillingRunner{invoiceRepo: invoiceRepo, quoteRepo: quoteRepo}
	uc := NewInvoiceUseCase(tx, invoiceRepo, quoteRepo, userRepo, gateway, Options{
		DefaultVatRate: decimal.NewFromInt(5),
	})
	return &billingFixture{uc: uc, invoiceRepo: invoiceRepo, quoteRepo: quoteRepo, userRepo: userRepo, gateway: gateway}
}

func TestCreateInvoice_CalculaTotales(t *testing.T) {
	f := newBillingFixture("pending")
	f.userRepo.users["cust-1"] = &entity.User{ID: "cust-1", Role: entity.RoleCustomer}

	resp, err := f.uc.CreateInvoice(context.Background(), "seller-1", dto.CreateInvoiceRequest{
		UserID: "cust-1",
		Items: []dto.QuoteItemRequest{
			{Name: "Licencia", Price: decimal.NewFromInt(200), Quantity: 2},
		},
		DiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// subtotal 40000, descuento 4000, IVA 5% de 36000 = 1800
	assert.Equal(t, int64(40000), resp.SubtotalCents)
	assert.Equal(t, int64(4000), resp.DiscountCents)
	assert.Equal(t, int64(1800), resp.VatCents)
	assert.Equal(t, int64(37800), resp.TotalCents)
	assert.Equal(t, entity.InvoiceStatusPending, resp.Status)
	assert.NotEmpty(t, resp.InvoiceNumber)
	assert.Len(t, f.invoiceRepo.items[resp.ID], 1)
}

func TestCreateFromQuote_RequiereAceptada(t *testing.T) {
	f := newBillingFixture("pending")
	f.quoteRepo.quotes["q-1"] = &entity.Quote{ID: "q-1", UserID: "cust-1", Status: entity.QuoteStatusPending}

	_, err := f.uc.CreateFromQuote(context.Background(), "seller-1", "q-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreateFromQuote_CopiaLineasYRecalcula(t *testing.T) {
	f := newBillingFixture("pending")
	f.quoteRepo.quotes["q-1"] = &entity.Quote{
		ID:              "q-1",
		UserID:          "cust-1",
		Status:          entity.QuoteStatusAccepted,
		SubtotalCents:   30000,
		DiscountPercent: decimal.NewFromInt(10),
		VatRate:         decimal.NewFromInt(5),
	}
	f.quoteRepo.items["q-1"] = []*entity.QuoteItem{
		{ID: "qi-1", QuoteID: "q-1", Name: "Consultoría", PriceCents: 10000, Quantity: 3},
	}

	resp, err := f.uc.CreateFromQuote(context.Background(), "seller-1", "q-1")
	require.NoError(t, err)

	assert.Equal(t, "q-1", resp.QuoteID)
	assert.Equal(t, "cust-1", resp.UserID)
	// subtotal derivado de las líneas: 30000; 10% = 3000; IVA 5% de 27000 = 1350
	assert.Equal(t, int64(30000), resp.SubtotalCents)
	assert.Equal(t, int64(3000), resp.DiscountCents)
	assert.Equal(t, int64(1350), resp.VatCents)
	assert.Equal(t, int64(28350), resp.TotalCents)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(10000), resp.Items[0].PriceCents)
}

func TestCreateFromQuote_SinLineasFalla(t *testing.T) {
	f := newBillingFixture("pending")
	f.quoteRepo.quotes["q-1"] = &entity.Quote{ID: "q-1", UserID: "cust-1", Status: entity.QuoteStatusAccepted}

	_, err := f.uc.CreateFromQuote(context.Background(), "seller-1", "q-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAsPaid_EstampaCamposJuntos(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "cust-1", Status: entity.InvoiceStatusPending, TotalCents: 10000,
	}

	resp, err := f.uc.MarkAsPaid(context.Background(), "inv-1", "transferencia", "TX-99")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
	assert.Equal(t, "transferencia", resp.PaymentMethod)
	assert.Equal(t, "TX-99", resp.PaymentReference)
	assert.NotEmpty(t, resp.PaidDate)

	saved := f.invoiceRepo.invoices["inv-1"]
	require.NotNil(t, saved.PaidDate)
}

func TestMarkAsPaid_YaPagadaFalla(t *testing.T) {
	f := newBillingFixture("pending")
	paid := time.Now()
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", Status: entity.InvoiceStatusPaid, PaidDate: &paid, PaymentMethod: "efectivo",
	}

	_, err := f.uc.MarkAsPaid(context.Background(), "inv-1", "transferencia", "TX-99")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	// El pago original no se pisa.
	assert.Equal(t, "efectivo", f.invoiceRepo.invoices["inv-1"].PaymentMethod)
}

func TestMarkAsPaid_RequiereMetodo(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{ID: "inv-1", Status: entity.InvoiceStatusPending}

	_, err := f.uc.MarkAsPaid(context.Background(), "inv-1", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_PaidNoPasaPorAqui(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{ID: "inv-1", Status: entity.InvoiceStatusPending}

	_, err := f.uc.UpdateStatus(context.Background(), "inv-1", dto.UpdateInvoiceStatusRequest{
		Status: entity.InvoiceStatusPaid,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_PendingOverdueIdaYVuelta(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{ID: "inv-1", Status: entity.InvoiceStatusPending}

	resp, err := f.uc.UpdateStatus(context.Background(), "inv-1", dto.UpdateInvoiceStatusRequest{
		Status: entity.InvoiceStatusOverdue,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, resp.Status)

	resp, err = f.uc.UpdateStatus(context.Background(), "inv-1", dto.UpdateInvoiceStatusRequest{
		Status: entity.InvoiceStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, resp.Status)
}

func TestCreatePaymentIntent_StubResueltoMarcaPagada(t *testing.T) {
	f := newBillingFixture("succeeded")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "cust-1", Status: entity.InvoiceStatusPending, TotalCents: 5000,
	}

	resp, err := f.uc.CreatePaymentIntent(context.Background(), "cust-1", entity.RoleCustomer, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, int64(5000), resp.AmountCents)

	saved := f.invoiceRepo.invoices["inv-1"]
	assert.Equal(t, entity.InvoiceStatusPaid, saved.Status)
	assert.Equal(t, "gateway", saved.PaymentMethod)
	assert.Equal(t, "ref-1", saved.PaymentReference)
	require.NotNil(t, saved.PaidDate)
}

func TestCreatePaymentIntent_PendienteNoMarcaPago(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "cust-1", Status: entity.InvoiceStatusPending, TotalCents: 5000,
	}

	resp, err := f.uc.CreatePaymentIntent(context.Background(), "cust-1", entity.RoleCustomer, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, entity.InvoiceStatusPending, f.invoiceRepo.invoices["inv-1"].Status)
}

func TestCreatePaymentIntent_FacturaPagadaFalla(t *testing.T) {
	f := newBillingFixture("succeeded")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "cust-1", Status: entity.InvoiceStatusPaid,
	}

	_, err := f.uc.CreatePaymentIntent(context.Background(), "cust-1", entity.RoleCustomer, "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 0, f.gateway.calls)
}

func TestGetInvoice_ClienteSoloVeLasSuyas(t *testing.T) {
	f := newBillingFixture("pending")
	f.invoiceRepo.invoices["inv-1"] = &entity.Invoice{ID: "inv-1", UserID: "otro-cliente"}

	_, err := f.uc.GetInvoice(context.Background(), "cust-1", entity.RoleCustomer, "inv-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
