package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

type fakeVatRepo struct{ returns map[string]*entity.VatReturn }

func (r *fakeVatRepo) Create(vr *entity.VatReturn) error             { r.returns[vr.ID] = vr; return nil }
func (r *fakeVatRepo) GetByID(id string) (*entity.VatReturn, error)  { return r.returns[id], nil }
func (r *fakeVatRepo) Update(vr *entity.VatReturn) error             { r.returns[vr.ID] = vr; return nil }
func (r *fakeVatRepo) List(limit, offset int) ([]*entity.VatReturn, error) {
	var out []*entity.VatReturn
	for _, vr := range r.returns {
		out = append(out, vr)
	}
	return out, nil
}

// fakeVatInvoiceRepo solo implementa la suma que usa la declaración.
type fakeVatInvoiceRepo struct {
	fakeInvoiceRepoStub
	vatPaid int64
}

func (r *fakeVatInvoiceRepo) SumVatPaidBetween(from, to time.Time) (int64, error) {
	return r.vatPaid, nil
}

// fakeInvoiceRepoStub satisface el resto del puerto con no-ops.
type fakeInvoiceRepoStub struct{}

func (fakeInvoiceRepoStub) Create(*entity.Invoice) error                  { return nil }
func (fakeInvoiceRepoStub) CreateItem(*entity.InvoiceItem) error          { return nil }
func (fakeInvoiceRepoStub) GetByID(string) (*entity.Invoice, error)       { return nil, nil }
func (fakeInvoiceRepoStub) GetItemsByInvoiceID(string) ([]*entity.InvoiceItem, error) {
	return nil, nil
}
func (fakeInvoiceRepoStub) Update(*entity.Invoice) error { return nil }
func (fakeInvoiceRepoStub) ListByUser(string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (fakeInvoiceRepoStub) List(int, int) ([]*entity.Invoice, error) { return nil, nil }
func (fakeInvoiceRepoStub) SumVatPaidBetween(time.Time, time.Time) (int64, error) {
	return 0, nil
}

type vatFixture struct {
	uc          *VatUseCase
	vatRepo     *fakeVatRepo
	invoiceRepo *fakeVatInvoiceRepo
	expenseRepo *fakeExpenseRepo
}

func newVatFixture(outputVat int64) *vatFixture {
	vatRepo := &fakeVatRepo{returns: make(map[string]*entity.VatReturn)}
	invoiceRepo := &fakeVatInvoiceRepo{vatPaid: outputVat}
	expenseRepo := &fakeExpenseRepo{expenses: make(map[string]*entity.Expense)}
	return &vatFixture{
		uc:          NewVatUseCase(vatRepo, invoiceRepo, expenseRepo),
		vatRepo:     vatRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
	}
}

func TestCalculate_RepercutidoMenosSoportado(t *testing.T) {
	f := newVatFixture(9000)
	f.expenseRepo.expenses["exp-1"] = &entity.Expense{
		ID: "exp-1", Status: entity.ExpenseStatusApproved, VatRecoverable: true,
		VatCents: 2500, ExpenseDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	// No recuperable: fuera del soportado deducible.
	f.expenseRepo.expenses["exp-2"] = &entity.Expense{
		ID: "exp-2", Status: entity.ExpenseStatusApproved, VatRecoverable: false,
		VatCents: 1000, ExpenseDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	}

	calc, err := f.uc.Calculate(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), calc.OutputVatCents)
	assert.Equal(t, int64(2500), calc.InputVatCents)
	assert.Equal(t, int64(6500), calc.NetVatCents)
}

func TestCalculate_PeriodoInvalido(t *testing.T) {
	f := newVatFixture(0)

	_, err := f.uc.Calculate(context.Background(), "2026-01-31", "2026-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Calculate(context.Background(), "enero", "2026-01-31")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVatReturn_AutocompletaImportes(t *testing.T) {
	f := newVatFixture(9000)

	vr, err := f.uc.Create(context.Background(), "fin-1", dto.CreateVatReturnRequest{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		DueDate:     "2026-02-20",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VatReturnStatusDraft, vr.Status)
	assert.Equal(t, int64(9000), vr.OutputVatCents)
	assert.Equal(t, int64(9000), vr.NetVatCents)
}

func TestCreateVatReturn_RespetaImportesExplicitos(t *testing.T) {
	f := newVatFixture(9000)

	output, input := int64(12000), int64(3000)
	vr, err := f.uc.Create(context.Background(), "fin-1", dto.CreateVatReturnRequest{
		PeriodStart:    "2026-01-01",
		PeriodEnd:      "2026-01-31",
		DueDate:        "2026-02-20",
		OutputVatCents: &output,
		InputVatCents:  &input,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), vr.OutputVatCents)
	assert.Equal(t, int64(3000), vr.InputVatCents)
	assert.Equal(t, int64(9000), vr.NetVatCents)
}

func TestUpdateVatReturn_CicloEstricto(t *testing.T) {
	f := newVatFixture(0)
	f.vatRepo.returns["vr-1"] = &entity.VatReturn{ID: "vr-1", Status: entity.VatReturnStatusDraft}

	// draft → paid se salta submitted: inválido.
	_, err := f.uc.Update(context.Background(), "vr-1", dto.UpdateVatReturnRequest{
		Status: entity.VatReturnStatusPaid,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	vr, err := f.uc.Update(context.Background(), "vr-1", dto.UpdateVatReturnRequest{
		Status: entity.VatReturnStatusSubmitted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VatReturnStatusSubmitted, vr.Status)

	// submitted → draft es retroceso: inválido.
	_, err = f.uc.Update(context.Background(), "vr-1", dto.UpdateVatReturnRequest{
		Status: entity.VatReturnStatusDraft,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	vr, err = f.uc.Update(context.Background(), "vr-1", dto.UpdateVatReturnRequest{
		Status: entity.VatReturnStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VatReturnStatusPaid, vr.Status)
}

func TestUpdateVatReturn_ImportesSoloEnDraft(t *testing.T) {
	f := newVatFixture(0)
	f.vatRepo.returns["vr-1"] = &entity.VatReturn{ID: "vr-1", Status: entity.VatReturnStatusSubmitted}

	output := int64(5000)
	_, err := f.uc.Update(context.Background(), "vr-1", dto.UpdateVatReturnRequest{
		OutputVatCents: &output,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
