package quoting

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

func newQuoteFixture(actors ...*entity.User) (*QuoteUseCase, *fakeQuoteRepo, *fakeDiscountRepo) {
	quoteRepo := newFakeQuoteRepo()
	discountRepo := newFakeDiscountRepo()
	userRepo := newFakeUserRepo(actors...)
	tx := &fakeTxRunner{quoteRepo: quoteRepo, discountRepo: discountRepo}
	uc := NewQuoteUseCase(tx, quoteRepo, userRepo, Options{
		DefaultVatRate: decimal.NewFromInt(5),
	})
	return uc, quoteRepo, discountRepo
}

func salesUser(id string, limit int64) *entity.User {
	return &entity.User{
		ID:            id,
		Username:      "vendedor",
		Role:          entity.RoleSales,
		Status:        entity.UserStatusActive,
		DiscountLimit: decimal.NewFromInt(limit),
	}
}

func customerUser(id string) *entity.User {
	return &entity.User{ID: id, Username: "cliente", Role: entity.RoleCustomer, Status: entity.UserStatusActive}
}

func TestCreateQuote_DescuentoDentroDelLimite(t *testing.T) {
	seller := salesUser("seller-1", 10)
	customer := customerUser("cust-1")
	uc, _, discountRepo := newQuoteFixture(seller, customer)

	resp, err := uc.CreateQuote(context.Background(), seller.ID, seller.Role, dto.CreateQuoteRequest{
		UserID: customer.ID,
		Items: []dto.QuoteItemRequest{
			{Name: "Consultoría", Price: decimal.NewFromInt(100), Quantity: 1},
		},
		DiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// subtotal 10000, descuento 10% = 1000, IVA 5% de 9000 = 450
	assert.Equal(t, int64(10000), resp.SubtotalCents)
	assert.Equal(t, int64(1000), resp.DiscountCents)
	assert.Equal(t, int64(450), resp.VatCents)
	assert.Equal(t, int64(9450), resp.TotalCents)
	assert.Equal(t, resp.SubtotalCents-resp.DiscountCents+resp.VatCents, resp.TotalCents)
	assert.Equal(t, entity.QuoteStatusPending, resp.Status)
	assert.Empty(t, resp.DiscountRequestID)

	pending, _ := discountRepo.List(entity.DiscountStatusPending, 0, 0)
	assert.Empty(t, pending)
}

func TestCreateQuote_DescuentoSobreLimiteEncolaAprobacion(t *testing.T) {
	seller := salesUser("seller-1", 10)
	customer := customerUser("cust-1")
	uc, quoteRepo, discountRepo := newQuoteFixture(seller, customer)

	resp, err := uc.CreateQuote(context.Background(), seller.ID, seller.Role, dto.CreateQuoteRequest{
		UserID: customer.ID,
		Items: []dto.QuoteItemRequest{
			{Name: "Consultoría", Price: decimal.NewFromInt(100), Quantity: 2},
		},
		DiscountPercent: decimal.NewFromInt(25),
		DiscountReason:  "cliente estratégico",
	})
	require.NoError(t, err)

	// La cotización se guarda SIN el descuento fuera de límite.
	assert.True(t, resp.DiscountPercent.IsZero())
	assert.Equal(t, int64(0), resp.DiscountCents)
	assert.Equal(t, int64(20000), resp.SubtotalCents)
	assert.Equal(t, int64(21000), resp.TotalCents) // 20000 + 5% IVA
	require.NotEmpty(t, resp.DiscountRequestID)

	req, _ := discountRepo.GetByID(resp.DiscountRequestID)
	require.NotNil(t, req)
	assert.Equal(t, entity.DiscountStatusPending, req.Status)
	assert.Equal(t, resp.ID, req.QuoteID)
	assert.True(t, req.DiscountPercent.Equal(decimal.NewFromInt(25)))

	saved, _ := quoteRepo.GetByID(resp.ID)
	require.NotNil(t, saved)
	assert.Equal(t, int64(0), saved.DiscountCents)
}

func TestCreateQuote_SobreLimiteSinMotivoFalla(t *testing.T) {
	seller := salesUser("seller-1", 10)
	customer := customerUser("cust-1")
	uc, _, _ := newQuoteFixture(seller, customer)

	_, err := uc.CreateQuote(context.Background(), seller.ID, seller.Role, dto.CreateQuoteRequest{
		UserID: customer.ID,
		Items: []dto.QuoteItemRequest{
			{Name: "Consultoría", Price: decimal.NewFromInt(100), Quantity: 1},
		},
		DiscountPercent: decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateQuote_AdminNoTieneLimite(t *testing.T) {
	admin := &entity.User{ID: "admin-1", Role: entity.RoleAdmin, Status: entity.UserStatusActive, DiscountLimit: decimal.NewFromInt(10)}
	customer := customerUser("cust-1")
	uc, _, discountRepo := newQuoteFixture(admin, customer)

	resp, err := uc.CreateQuote(context.Background(), admin.ID, admin.Role, dto.CreateQuoteRequest{
		UserID: customer.ID,
		Items: []dto.QuoteItemRequest{
			{Name: "Consultoría", Price: decimal.NewFromInt(100), Quantity: 1},
		},
		DiscountPercent: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.DiscountCents)
	assert.Empty(t, resp.DiscountRequestID)
	pending, _ := discountRepo.List(entity.DiscountStatusPending, 0, 0)
	assert.Empty(t, pending)
}

func TestCreateQuote_SinLineasFalla(t *testing.T) {
	seller := salesUser("seller-1", 10)
	customer := customerUser("cust-1")
	uc, _, _ := newQuoteFixture(seller, customer)

	_, err := uc.CreateQuote(context.Background(), seller.ID, seller.Role, dto.CreateQuoteRequest{
		UserID: customer.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_ClienteAceptaLaPropia(t *testing.T) {
	customer := customerUser("cust-1")
	quote := &entity.Quote{ID: "q-1", UserID: customer.ID, Status: entity.QuoteStatusPending}
	uc, quoteRepo, _ := newQuoteFixture(customer)
	quoteRepo.quotes[quote.ID] = quote

	resp, err := uc.UpdateStatus(context.Background(), customer.ID, customer.Role, quote.ID, dto.UpdateQuoteStatusRequest{
		Status: entity.QuoteStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, resp.Status)
}

func TestUpdateStatus_ClienteNoPuedeExpirar(t *testing.T) {
	customer := customerUser("cust-1")
	quote := &entity.Quote{ID: "q-1", UserID: customer.ID, Status: entity.QuoteStatusPending}
	uc, quoteRepo, _ := newQuoteFixture(customer)
	quoteRepo.quotes[quote.ID] = quote

	_, err := uc.UpdateStatus(context.Background(), customer.ID, customer.Role, quote.ID, dto.UpdateQuoteStatusRequest{
		Status: entity.QuoteStatusExpired,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_ClienteNoTocaAjenas(t *testing.T) {
	customer := customerUser("cust-1")
	quote := &entity.Quote{ID: "q-1", UserID: "otro-cliente", Status: entity.QuoteStatusPending}
	uc, quoteRepo, _ := newQuoteFixture(customer)
	quoteRepo.quotes[quote.ID] = quote

	_, err := uc.UpdateStatus(context.Background(), customer.ID, customer.Role, quote.ID, dto.UpdateQuoteStatusRequest{
		Status: entity.QuoteStatusAccepted,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_TerminalNoSeReabre(t *testing.T) {
	seller := salesUser("seller-1", 10)
	quote := &entity.Quote{ID: "q-1", UserID: "cust-1", Status: entity.QuoteStatusAccepted}
	uc, quoteRepo, _ := newQuoteFixture(seller)
	quoteRepo.quotes[quote.ID] = quote

	_, err := uc.UpdateStatus(context.Background(), seller.ID, seller.Role, quote.ID, dto.UpdateQuoteStatusRequest{
		Status: entity.QuoteStatusRejected,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetQuote_ClienteSoloVeLasSuyas(t *testing.T) {
	customer := customerUser("cust-1")
	quote := &entity.Quote{ID: "q-1", UserID: "otro-cliente", Status: entity.QuoteStatusPending}
	uc, quoteRepo, _ := newQuoteFixture(customer)
	quoteRepo.quotes[quote.ID] = quote

	_, err := uc.GetQuote(context.Background(), customer.ID, customer.Role, quote.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
