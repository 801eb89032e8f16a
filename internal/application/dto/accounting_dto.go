package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	AmountCents    int64            `json:"amount_cents"`
	VatRate        *decimal.Decimal `json:"vat_rate,omitempty"` // default 5
	VatRecoverable bool             `json:"vat_recoverable"`
	Category       string           `json:"category"`
	AccountID      string           `json:"account_id"`
	ExpenseDate    string           `json:"expense_date,omitempty"` // YYYY-MM-DD, default hoy
}

// UpdateExpenseRequest body para PUT /api/expenses/:id (solo pending).
type UpdateExpenseRequest struct {
	Title          string           `json:"title,omitempty"`
	Description    string           `json:"description,omitempty"`
	AmountCents    *int64           `json:"amount_cents,omitempty"`
	VatRate        *decimal.Decimal `json:"vat_rate,omitempty"`
	VatRecoverable *bool            `json:"vat_recoverable,omitempty"`
	Category       string           `json:"category,omitempty"`
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	AmountCents    int64           `json:"amount_cents"`
	VatCents       int64           `json:"vat_cents"`
	VatRate        decimal.Decimal `json:"vat_rate"`
	VatRecoverable bool            `json:"vat_recoverable"`
	Category       string          `json:"category"`
	AccountID      string          `json:"account_id"`
	CreatedBy      string          `json:"created_by"`
	Status         string          `json:"status"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	ApprovedAt     string          `json:"approved_at,omitempty"`
	ExpenseDate    string          `json:"expense_date"`
}

// CreateVatReturnRequest body para POST /api/vat-returns.
type CreateVatReturnRequest struct {
	PeriodStart    string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd      string `json:"period_end"`
	DueDate        string `json:"due_date"`
	OutputVatCents *int64 `json:"output_vat_cents,omitempty"` // vacío → autocalcular
	InputVatCents  *int64 `json:"input_vat_cents,omitempty"`
}

// UpdateVatReturnRequest body para PUT /api/vat-returns/:id (solo draft).
type UpdateVatReturnRequest struct {
	OutputVatCents *int64 `json:"output_vat_cents,omitempty"`
	InputVatCents  *int64 `json:"input_vat_cents,omitempty"`
	Status         string `json:"status,omitempty"` // draft→submitted→paid
}

// VatReturnResponse declaración en respuestas.
type VatReturnResponse struct {
	ID             string `json:"id"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	DueDate        string `json:"due_date"`
	OutputVatCents int64  `json:"output_vat_cents"`
	InputVatCents  int64  `json:"input_vat_cents"`
	NetVatCents    int64  `json:"net_vat_cents"`
	Status         string `json:"status"`
}

// VatCalculationResponse respuesta de GET /api/vat-returns/calculate.
type VatCalculationResponse struct {
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	OutputVatCents int64  `json:"output_vat_cents"`
	InputVatCents  int64  `json:"input_vat_cents"`
	NetVatCents    int64  `json:"net_vat_cents"`
}

// CreateAccountRequest body para POST /api/accounts.
type CreateAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"` // asset, liability, equity, income, expense
}

// AccountResponse cuenta en respuestas.
type AccountResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	BalanceCents int64  `json:"balance_cents"`
	Active       bool   `json:"active"`
}

// AccountTransactionResponse apunte del historial.
type AccountTransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Reference   string    `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
