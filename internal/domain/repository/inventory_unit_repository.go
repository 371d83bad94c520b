package repository

import "github.com/tu-usuario/floorplan-pro/internal/domain/entity"

// UnitFilter filtros de listado de unidades.
type UnitFilter struct {
	DealershipID string
	Status       string
	Limit        int
	Offset       int
}

// InventoryUnitRepository define el puerto de persistencia para InventoryUnit.
// El VIN es la identidad; Create debe fallar con domain.ErrDuplicateVin si el
// VIN ya existe en cualquier estado (los VIN nunca se reutilizan).
type InventoryUnitRepository interface {
	Create(unit *entity.InventoryUnit) error
	GetByVIN(vin string) (*entity.InventoryUnit, error)
	Update(unit *entity.InventoryUnit) error
	List(filter UnitFilter) ([]*entity.InventoryUnit, error)
	// ListFinanced unidades del concesionario con estado InStock o
	// SoldPendingPayment. Llamar dentro de la transacción que tiene la
	// línea bloqueada para obtener un snapshot consistente.
	ListFinanced(dealershipID string) ([]*entity.InventoryUnit, error)
}
