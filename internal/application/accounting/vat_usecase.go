package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// VatUseCase gestiona declaraciones de IVA: cálculo del período (repercutido
// menos soportado recuperable), alta con autocompletado y ciclo
// draft→submitted→paid.
type VatUseCase struct {
	vatRepo     repository.VatReturnRepository
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
}

// NewVatUseCase construye el caso de uso.
func NewVatUseCase(
	vatRepo repository.VatReturnRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
) *VatUseCase {
	return &VatUseCase{vatRepo: vatRepo, invoiceRepo: invoiceRepo, expenseRepo: expenseRepo}
}

// Calculate deriva el IVA del período desde los documentos reales: repercutido
// de facturas pagadas, soportado recuperable de gastos aprobados.
func (uc *VatUseCase) Calculate(ctx context.Context, periodStart, periodEnd string) (*dto.VatCalculationResponse, error) {
	from, to, err := parsePeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	output, err := uc.invoiceRepo.SumVatPaidBetween(from, to)
	if err != nil {
		return nil, err
	}
	input, err := uc.expenseRepo.SumRecoverableVatBetween(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.VatCalculationResponse{
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OutputVatCents: output,
		InputVatCents:  input,
		NetVatCents:    output - input,
	}, nil
}

// Create abre una declaración en draft. Los importes no provistos se
// autocompletan con el cálculo del período.
func (uc *VatUseCase) Create(ctx context.Context, actorID string, in dto.CreateVatReturnRequest) (*dto.VatReturnResponse, error) {
	from, to, err := parsePeriod(in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	dueDate, err := time.Parse(periodDateLayout, in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var output, input int64
	if in.OutputVatCents != nil {
		output = *in.OutputVatCents
	} else {
		if output, err = uc.invoiceRepo.SumVatPaidBetween(from, to); err != nil {
			return nil, err
		}
	}
	if in.InputVatCents != nil {
		input = *in.InputVatCents
	} else {
		if input, err = uc.expenseRepo.SumRecoverableVatBetween(from, to); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	vr := &entity.VatReturn{
		ID:             uuid.New().String(),
		PeriodStart:    from,
		PeriodEnd:      to,
		DueDate:        dueDate,
		OutputVatCents: output,
		InputVatCents:  input,
		NetVatCents:    output - input,
		Status:         entity.VatReturnStatusDraft,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.vatRepo.Create(vr); err != nil {
		return nil, err
	}
	return toVatReturnResponse(vr), nil
}

// Update edita importes (solo en draft) o avanza el estado. El ciclo es
// estrictamente draft→submitted→paid, sin saltos ni retrocesos.
func (uc *VatUseCase) Update(ctx context.Context, id string, in dto.UpdateVatReturnRequest) (*dto.VatReturnResponse, error) {
	vr, err := uc.vatRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vr == nil {
		return nil, domain.ErrNotFound
	}

	if in.OutputVatCents != nil || in.InputVatCents != nil {
		if vr.Status != entity.VatReturnStatusDraft {
			return nil, domain.ErrInvalidTransition
		}
		if in.OutputVatCents != nil {
			vr.OutputVatCents = *in.OutputVatCents
		}
		if in.InputVatCents != nil {
			vr.InputVatCents = *in.InputVatCents
		}
		vr.NetVatCents = vr.OutputVatCents - vr.InputVatCents
	}

	if in.Status != "" && in.Status != vr.Status {
		if !validVatTransition(vr.Status, in.Status) {
			return nil, domain.ErrInvalidTransition
		}
		vr.Status = in.Status
	}

	vr.UpdatedAt = time.Now()
	if err := uc.vatRepo.Update(vr); err != nil {
		return nil, err
	}
	return toVatReturnResponse(vr), nil
}

// GetByID obtiene una declaración.
func (uc *VatUseCase) GetByID(ctx context.Context, id string) (*dto.VatReturnResponse, error) {
	vr, err := uc.vatRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vr == nil {
		return nil, domain.ErrNotFound
	}
	return toVatReturnResponse(vr), nil
}

// List lista declaraciones.
func (uc *VatUseCase) List(ctx context.Context, limit, offset int) ([]*dto.VatReturnResponse, error) {
	vrs, err := uc.vatRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VatReturnResponse, 0, len(vrs))
	for _, vr := range vrs {
		out = append(out, toVatReturnResponse(vr))
	}
	return out, nil
}

const periodDateLayout = "2006-01-02"

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse(periodDateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	to, err := time.Parse(periodDateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}

func validVatTransition(from, to string) bool {
	switch from {
	case entity.VatReturnStatusDraft:
		return to == entity.VatReturnStatusSubmitted
	case entity.VatReturnStatusSubmitted:
		return to == entity.VatReturnStatusPaid
	}
	return false
}

func toVatReturnResponse(vr *entity.VatReturn) *dto.VatReturnResponse {
	return &dto.VatReturnResponse{
		ID:             vr.ID,
		PeriodStart:    vr.PeriodStart.Format(periodDateLayout),
		PeriodEnd:      vr.PeriodEnd.Format(periodDateLayout),
		DueDate:        vr.DueDate.Format(periodDateLayout),
		OutputVatCents: vr.OutputVatCents,
		InputVatCents:  vr.InputVatCents,
		NetVatCents:    vr.NetVatCents,
		Status:         vr.Status,
	}
}
