package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

var _ repository.LedgerEventRepository = (*LedgerEventRepo)(nil)

// LedgerEventRepo log append-only del ledger sobre PostgreSQL (usable con
// pool o tx). Solo INSERT y SELECT: los eventos jamás se tocan.
type LedgerEventRepo struct {
	q Querier
}

// NewLedgerEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEventRepository(q Querier) *LedgerEventRepo {
	return &LedgerEventRepo{q: q}
}

// Append agrega un evento al log.
func (r *LedgerEventRepo) Append(ev *entity.LedgerEvent) error {
	query := `
		INSERT INTO ledger_events (id, credit_line_id, event_type, amount, vin, effective_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.CreditLineID, ev.Type, int64(ev.Amount), ev.VIN, ev.EffectiveDate, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// ListByCreditLine eventos de una línea en orden de inserción (el orden
// que espera el replay).
func (r *LedgerEventRepo) ListByCreditLine(creditLineID string) ([]*entity.LedgerEvent, error) {
	query := `
		SELECT id, credit_line_id, event_type, amount, vin, effective_date, created_at
		FROM ledger_events WHERE credit_line_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, creditLineID)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEvent
	for rows.Next() {
		var ev entity.LedgerEvent
		var amount int64
		if err := rows.Scan(&ev.ID, &ev.CreditLineID, &ev.Type, &amount, &ev.VIN, &ev.EffectiveDate, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		ev.Amount = money.Paise(amount)
		out = append(out, &ev)
	}
	return out, rows.Err()
}
