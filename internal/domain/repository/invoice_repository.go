package repository

import (
	"time"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	Update(invoice *entity.Invoice) error
	ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// SumVatPaidBetween suma el IVA repercutido de facturas pagadas en el
	// período (para la declaración de IVA).
	SumVatPaidBetween(from, to time.Time) (int64, error)
}
