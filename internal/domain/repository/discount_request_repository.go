package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// DiscountRequestRepository define el puerto de persistencia para
// DiscountRequest.
type DiscountRequestRepository interface {
	Create(req *entity.DiscountRequest) error
	GetByID(id string) (*entity.DiscountRequest, error)
	// GetByIDForUpdate lee la solicitud con bloqueo de fila; la decisión
	// re-verifica status == pending bajo el lock.
	GetByIDForUpdate(id string) (*entity.DiscountRequest, error)
	Update(req *entity.DiscountRequest) error
	List(status string, limit, offset int) ([]*entity.DiscountRequest, error)
}
