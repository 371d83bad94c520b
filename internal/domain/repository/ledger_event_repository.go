package repository

import "github.com/tu-usuario/floorplan-pro/internal/domain/entity"

// LedgerEventRepository log append-only por línea de crédito.
type LedgerEventRepository interface {
	Append(event *entity.LedgerEvent) error
	ListByCreditLine(creditLineID string) ([]*entity.LedgerEvent, error)
}
