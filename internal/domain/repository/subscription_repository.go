package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// SubscriptionRepository define el puerto de persistencia para Subscription.
type SubscriptionRepository interface {
	Create(sub *entity.Subscription) error
	GetByID(id string) (*entity.Subscription, error)
	// GetByIDForUpdate lee la fila con bloqueo (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción: serializa descuentos
	// concurrentes contra el mismo saldo.
	GetByIDForUpdate(id string) (*entity.Subscription, error)
	Update(sub *entity.Subscription) error
	// UpdateBalance persiste únicamente el nuevo saldo de tokens.
	UpdateBalance(id string, balance int64) error
	ListByUser(userID string) ([]*entity.Subscription, error)
	List(limit, offset int) ([]*entity.Subscription, error)
}
