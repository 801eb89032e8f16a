package repository

import "github.com/jhoicas/Cotiza-api/internal/domain/entity"

// PlanRepository define el puerto de persistencia para Plan.
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	Update(plan *entity.Plan) error
	List(onlyActive bool) ([]*entity.Plan, error)
}
