package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// Ambos contratos transaccionales salen del mismo runner.
var _ funding.TxRunner = (*TxRunner)(nil)
var _ credit.TxRunner = (*TxRunner)(nil)
var _ reconcile.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El
// SELECT FOR UPDATE de CreditLineRepo.GetForUpdate retiene el lock de
// fila hasta el Commit/Rollback, que es lo que serializa el ledger por
// línea de crédito.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el retorno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
	eventRepo repository.LedgerEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCreditLineRepository(tx),
		NewInventoryUnitRepository(tx),
		NewLedgerEventRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAudit variante para el motor de conciliación: repos de línea, unidad
// y auditoría atados a la misma transacción.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCreditLineRepository(tx),
		NewInventoryUnitRepository(tx),
		NewAuditRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
