package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	// GetByIDForUpdate lee la cotización con bloqueo de fila; se usa dentro
	// de la transacción de decisión de descuento.
	GetByIDForUpdate(id string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	Update(quote *entity.Quote) error
	UpdateStatus(id, status string) error
	ListByUser(userID string, limit, offset int) ([]*entity.Quote, error)
	List(limit, offset int) ([]*entity.Quote, error)
}
