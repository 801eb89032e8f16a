package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account y su
// historial de transacciones.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	// GetByIDForUpdate lee la cuenta con bloqueo de fila; el registro de una
	// transacción actualiza el saldo bajo el lock.
	GetByIDForUpdate(id string) (*entity.Account, error)
	Update(account *entity.Account) error
	List() ([]*entity.Account, error)
	CreateTransaction(tx *entity.AccountTransaction) error
	ListTransactions(accountID string, limit, offset int) ([]*entity.AccountTransaction, error)
}
