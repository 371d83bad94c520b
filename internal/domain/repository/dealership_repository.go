package repository

import "github.com/tu-usuario/floorplan-pro/internal/domain/entity"

// DealershipRepository define el puerto de persistencia para Dealership (DIP).
type DealershipRepository interface {
	Create(dealership *entity.Dealership) error
	GetByID(id string) (*entity.Dealership, error)
	Update(dealership *entity.Dealership) error
	List(limit, offset int) ([]*entity.Dealership, error)
}
