package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// TxRunner equivalente en memoria del runner transaccional SQL. No hay
// rollback: las escrituras van directo al store, y la atomicidad se
// obtiene serializando por línea de crédito — GetForUpdate dentro del
// callback toma el mutex de esa línea y lo retiene hasta que fn retorna.
// Los casos de uso compensan explícitamente (release tras un create
// fallido), así que la falta de rollback no deja crédito huérfano.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// lockSession locks tomados durante una ejecución de fn. Idempotente por
// línea: el segundo GetForUpdate sobre la misma línea no re-bloquea.
type lockSession struct {
	store *Store
	held  map[string]*sync.Mutex
}

func newLockSession(store *Store) *lockSession {
	return &lockSession{store: store, held: make(map[string]*sync.Mutex)}
}

func (s *lockSession) lockLine(id string) {
	if _, ok := s.held[id]; ok {
		return
	}
	l := s.store.lockForLine(id)
	l.Lock()
	s.held[id] = l
}

func (s *lockSession) releaseAll() {
	for _, l := range s.held {
		l.Unlock()
	}
	s.held = nil
}

// lockedCreditLineRepo repo de líneas atado a una sesión: GetForUpdate
// adquiere el lock de la línea antes de leer.
type lockedCreditLineRepo struct {
	*CreditLineRepo
	session *lockSession
}

var _ repository.CreditLineRepository = (*lockedCreditLineRepo)(nil)

func (r *lockedCreditLineRepo) GetForUpdate(id string) (*entity.CreditLine, error) {
	r.session.lockLine(id)
	return r.CreditLineRepo.GetByID(id)
}

// Run ejecuta fn con repos atados a una sesión de locks; todos los locks
// de línea adquiridos se liberan al retornar, con o sin error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
	eventRepo repository.LedgerEventRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session := newLockSession(r.store)
	defer session.releaseAll()
	return fn(
		&lockedCreditLineRepo{CreditLineRepo: NewCreditLineRepository(r.store), session: session},
		NewInventoryUnitRepository(r.store),
		NewLedgerEventRepository(r.store),
	)
}

// RunAudit variante para el motor de conciliación: mismo esquema de
// locks, con el repo de auditorías en lugar del log de eventos.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
	auditRepo repository.AuditRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session := newLockSession(r.store)
	defer session.releaseAll()
	return fn(
		&lockedCreditLineRepo{CreditLineRepo: NewCreditLineRepository(r.store), session: session},
		NewInventoryUnitRepository(r.store),
		NewAuditRepository(r.store),
	)
}
