package repository

import "github.com/tu-usuario/floorplan-pro/internal/domain/entity"

// AuditRepository define el puerto de persistencia para Audit.
// Solo alta y lectura: una auditoría Completed es inmutable.
type AuditRepository interface {
	Create(audit *entity.Audit) error
	GetByID(id string) (*entity.Audit, error)
	List(dealershipID string, limit, offset int) ([]*entity.Audit, error)
}
