package funding

import (
	"context"

	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella;
// Commit si fn retorna nil, Rollback si no. GetForUpdate sobre la línea
// serializa fund/repay/devengo por línea de crédito; líneas distintas no
// contienden.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		eventRepo repository.LedgerEventRepository,
	) error) error
}
