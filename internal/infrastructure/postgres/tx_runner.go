package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/billing"
	"github.com/jhoicas/Cotiza-api/internal/application/quoting"
	"github.com/jhoicas/Cotiza-api/internal/application/subscription"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// Ensure TxRunner implements every runner port of the application layer.
var _ quoting.QuoteTxRunner = (*TxRunner)(nil)
var _ quoting.DiscountTxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ subscription.LedgerTxRunner = (*TxRunner)(nil)
var _ accounting.ExpenseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada Run*
// construye repos atados a la tx, de modo que todo lo que haga el callback se
// confirma o revierte como unidad.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuoteCreate transacción para crear cotización + líneas + solicitud de
// descuento opcional.
func (r *TxRunner) RunQuoteCreate(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	discountRepo repository.DiscountRequestRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuoteRepository(q), NewDiscountRequestRepository(q))
	})
}

// RunDiscountDecision transacción para decidir una solicitud de descuento
// mutando (o no) la cotización asociada.
func (r *TxRunner) RunDiscountDecision(ctx context.Context, fn func(
	discountRepo repository.DiscountRequestRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewDiscountRequestRepository(q), NewQuoteRepository(q))
	})
}

// RunBilling transacción para crear factura + líneas (independiente o desde
// cotización).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInvoiceRepository(q), NewQuoteRepository(q))
	})
}

// RunLedger transacción para el ledger de tokens: apunte + nuevo saldo.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	subRepo repository.SubscriptionRepository,
	usageRepo repository.TokenUsageRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSubscriptionRepository(q), NewTokenUsageRepository(q))
	})
}

// RunExpenseDecision transacción para decidir un gasto publicando el apunte
// contable.
func (r *TxRunner) RunExpenseDecision(ctx context.Context, fn func(
	expenseRepo repository.ExpenseRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewExpenseRepository(q), NewAccountRepository(q))
	})
}
