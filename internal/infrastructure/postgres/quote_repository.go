package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación del puerto QuoteRepository sobre PostgreSQL.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador de persistencia para cotizaciones. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, user_id, created_by, quote_number, status, subtotal_cents, discount_percent, discount_cents, vat_rate, vat_cents, total_cents, notes, expiry_date, created_at, updated_at`

// Create persiste una nueva cotización.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.UserID, quote.CreatedBy, quote.QuoteNumber, quote.Status,
		quote.SubtotalCents, quote.DiscountPercent, quote.DiscountCents,
		quote.VatRate, quote.VatCents, quote.TotalCents,
		quote.Notes, quote.ExpiryDate, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, name, description, price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.Name, item.Description, item.PriceCents, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene una cotización con bloqueo de fila (SELECT ... FOR UPDATE).
func (r *QuoteRepo) GetByIDForUpdate(id string) (*entity.Quote, error) {
	return r.getByID(id, true)
}

func (r *QuoteRepo) getByID(id string, forUpdate bool) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var q entity.Quote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.UserID, &q.CreatedBy, &q.QuoteNumber, &q.Status,
		&q.SubtotalCents, &q.DiscountPercent, &q.DiscountCents,
		&q.VatRate, &q.VatCents, &q.TotalCents,
		&q.Notes, &q.ExpiryDate, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItemsByQuoteID obtiene las líneas de una cotización.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, name, description, price_cents, quantity
		FROM quote_items WHERE quote_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Name, &it.Description, &it.PriceCents, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza montos, descuento y notas de una cotización.
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	query := `
		UPDATE quotes SET status = $2, subtotal_cents = $3, discount_percent = $4, discount_cents = $5,
			vat_rate = $6, vat_cents = $7, total_cents = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.Status, quote.SubtotalCents, quote.DiscountPercent, quote.DiscountCents,
		quote.VatRate, quote.VatCents, quote.TotalCents, quote.Notes, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// UpdateStatus actualiza solo el estado de una cotización.
func (r *QuoteRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// ListByUser lista cotizaciones de un cliente con paginación.
func (r *QuoteRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + ` FROM quotes
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// List lista todas las cotizaciones con paginación.
func (r *QuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + ` FROM quotes
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *QuoteRepo) list(query string, args ...any) ([]*entity.Quote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.UserID, &q.CreatedBy, &q.QuoteNumber, &q.Status,
			&q.SubtotalCents, &q.DiscountPercent, &q.DiscountCents,
			&q.VatRate, &q.VatCents, &q.TotalCents,
			&q.Notes, &q.ExpiryDate, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}
