package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, quote_id, invoice_number, status, subtotal_cents, discount_percent, discount_cents, vat_rate, vat_cents, total_cents, due_date, paid_date, payment_method, payment_reference, created_at, updated_at`

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, nullIfEmpty(invoice.QuoteID), invoice.InvoiceNumber, invoice.Status,
		invoice.SubtotalCents, invoice.DiscountPercent, invoice.DiscountCents,
		invoice.VatRate, invoice.VatCents, invoice.TotalCents,
		invoice.DueDate, invoice.PaidDate, invoice.PaymentMethod, invoice.PaymentReference,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, name, description, price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Name, item.Description, item.PriceCents, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, user_id, COALESCE(quote_id::TEXT, ''), invoice_number, status,
			subtotal_cents, discount_percent, discount_cents, vat_rate, vat_cents, total_cents,
			due_date, paid_date, payment_method, payment_reference, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.UserID, &inv.QuoteID, &inv.InvoiceNumber, &inv.Status,
		&inv.SubtotalCents, &inv.DiscountPercent, &inv.DiscountCents,
		&inv.VatRate, &inv.VatCents, &inv.TotalCents,
		&inv.DueDate, &inv.PaidDate, &inv.PaymentMethod, &inv.PaymentReference,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, name, description, price_cents, quantity
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Name, &it.Description, &it.PriceCents, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza una factura existente (estado, pago, montos).
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, subtotal_cents = $3, discount_percent = $4, discount_cents = $5,
			vat_rate = $6, vat_cents = $7, total_cents = $8, due_date = $9,
			paid_date = $10, payment_method = $11, payment_reference = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Status, invoice.SubtotalCents, invoice.DiscountPercent, invoice.DiscountCents,
		invoice.VatRate, invoice.VatCents, invoice.TotalCents, invoice.DueDate,
		invoice.PaidDate, invoice.PaymentMethod, invoice.PaymentReference, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ListByUser lista facturas de un cliente con paginación.
func (r *InvoiceRepo) ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, user_id, COALESCE(quote_id::TEXT, ''), invoice_number, status,
			subtotal_cents, discount_percent, discount_cents, vat_rate, vat_cents, total_cents,
			due_date, paid_date, payment_method, payment_reference, created_at, updated_at
		FROM invoices WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// List lista todas las facturas con paginación.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, user_id, COALESCE(quote_id::TEXT, ''), invoice_number, status,
			subtotal_cents, discount_percent, discount_cents, vat_rate, vat_cents, total_cents,
			due_date, paid_date, payment_method, payment_reference, created_at, updated_at
		FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.QuoteID, &inv.InvoiceNumber, &inv.Status,
			&inv.SubtotalCents, &inv.DiscountPercent, &inv.DiscountCents,
			&inv.VatRate, &inv.VatCents, &inv.TotalCents,
			&inv.DueDate, &inv.PaidDate, &inv.PaymentMethod, &inv.PaymentReference,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// SumVatPaidBetween suma el IVA repercutido de facturas pagadas en el período.
// COALESCE devuelve cero si el período no tiene facturas.
func (r *InvoiceRepo) SumVatPaidBetween(from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(vat_cents), 0)
		FROM invoices
		WHERE status = 'paid' AND paid_date BETWEEN $1 AND $2`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum vat paid: %w", err)
	}
	return total, nil
}
