package repository

import "github.com/tu-usuario/floorplan-pro/internal/domain/entity"

// CreditLineRepository define el puerto de persistencia para CreditLine.
//
// GetForUpdate serializa reserve/release/devengo por línea: en PostgreSQL
// bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción; en
// memoria toma el mutex de la línea hasta que el TxRunner retorna.
type CreditLineRepository interface {
	Create(line *entity.CreditLine) error
	GetByID(id string) (*entity.CreditLine, error)
	GetByDealership(dealershipID string) (*entity.CreditLine, error)
	GetForUpdate(id string) (*entity.CreditLine, error)
	Update(line *entity.CreditLine) error
	List(dealershipID string, limit, offset int) ([]*entity.CreditLine, error)
}
