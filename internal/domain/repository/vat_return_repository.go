package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// VatReturnRepository define el puerto de persistencia para VatReturn.
type VatReturnRepository interface {
	Create(vr *entity.VatReturn) error
	GetByID(id string) (*entity.VatReturn, error)
	Update(vr *entity.VatReturn) error
	List(limit, offset int) ([]*entity.VatReturn, error)
}
