// Package memory implementa los puertos de persistencia sobre mapas en
// memoria con un lock manager por línea de crédito. Respalda los tests y
// el modo dev (LEDGER_DRIVER=memory); el esquema de serialización es el
// mismo contrato que la variante PostgreSQL (GetForUpdate bloquea la
// línea hasta que el TxRunner retorna).
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// Store estado compartido en memoria. Los mapas guardan valores (no
// punteros): cada lectura devuelve una copia y cada escritura reemplaza,
// para que ningún caller mute estado compartido por alias.
type Store struct {
	mu sync.RWMutex

	dealerships map[string]entity.Dealership
	lines       map[string]entity.CreditLine
	units       map[string]entity.InventoryUnit
	audits      map[string]entity.Audit
	events      map[string][]entity.LedgerEvent
	users       map[string]entity.User

	lineLocks map[string]*sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		dealerships: make(map[string]entity.Dealership),
		lines:       make(map[string]entity.CreditLine),
		units:       make(map[string]entity.InventoryUnit),
		audits:      make(map[string]entity.Audit),
		events:      make(map[string][]entity.LedgerEvent),
		users:       make(map[string]entity.User),
		lineLocks:   make(map[string]*sync.Mutex),
	}
}

// lockForLine devuelve el mutex de la línea, creándolo la primera vez.
func (s *Store) lockForLine(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lineLocks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.lineLocks[id] = l
	return l
}

// ── Dealerships ───────────────────────────────────────────────────────────────

// DealershipRepo implementación en memoria de DealershipRepository.
type DealershipRepo struct{ store *Store }

var _ repository.DealershipRepository = (*DealershipRepo)(nil)

// NewDealershipRepository construye el adaptador.
func NewDealershipRepository(store *Store) *DealershipRepo {
	return &DealershipRepo{store: store}
}

func (r *DealershipRepo) Create(d *entity.Dealership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.dealerships[d.ID] = *d
	return nil
}

func (r *DealershipRepo) GetByID(id string) (*entity.Dealership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if d, ok := r.store.dealerships[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *DealershipRepo) Update(d *entity.Dealership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.dealerships[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.dealerships[d.ID] = *d
	return nil
}

func (r *DealershipRepo) List(limit, offset int) ([]*entity.Dealership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.Dealership, 0, len(r.store.dealerships))
	for _, d := range r.store.dealerships {
		dd := d
		all = append(all, &dd)
	}
	sortByCreatedThenID(all, func(d *entity.Dealership) (string, string) {
		return d.CreatedAt.Format("2006-01-02T15:04:05.000000000"), d.ID
	})
	return paginate(all, limit, offset), nil
}

// ── Credit lines ──────────────────────────────────────────────────────────────

// CreditLineRepo implementación en memoria de CreditLineRepository.
// Fuera de un TxRunner, GetForUpdate equivale a GetByID: la serialización
// por línea solo existe dentro de una transacción (igual que en SQL).
type CreditLineRepo struct{ store *Store }

var _ repository.CreditLineRepository = (*CreditLineRepo)(nil)

// NewCreditLineRepository construye el adaptador.
func NewCreditLineRepository(store *Store) *CreditLineRepo {
	return &CreditLineRepo{store: store}
}

func (r *CreditLineRepo) Create(l *entity.CreditLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.lines {
		if existing.DealershipID == l.DealershipID {
			return domain.ErrDuplicateCreditLine
		}
	}
	r.store.lines[l.ID] = *l
	return nil
}

func (r *CreditLineRepo) GetByID(id string) (*entity.CreditLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if l, ok := r.store.lines[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *CreditLineRepo) GetByDealership(dealershipID string) (*entity.CreditLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, l := range r.store.lines {
		if l.DealershipID == dealershipID {
			ll := l
			return &ll, nil
		}
	}
	return nil, nil
}

func (r *CreditLineRepo) GetForUpdate(id string) (*entity.CreditLine, error) {
	return r.GetByID(id)
}

func (r *CreditLineRepo) Update(l *entity.CreditLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.lines[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.lines[l.ID] = *l
	return nil
}

func (r *CreditLineRepo) List(dealershipID string, limit, offset int) ([]*entity.CreditLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.CreditLine, 0, len(r.store.lines))
	for _, l := range r.store.lines {
		if dealershipID != "" && l.DealershipID != dealershipID {
			continue
		}
		ll := l
		all = append(all, &ll)
	}
	sortByCreatedThenID(all, func(l *entity.CreditLine) (string, string) {
		return l.CreatedAt.Format("2006-01-02T15:04:05.000000000"), l.ID
	})
	return paginate(all, limit, offset), nil
}

// ── Inventory units ───────────────────────────────────────────────────────────

// InventoryUnitRepo implementación en memoria de InventoryUnitRepository.
type InventoryUnitRepo struct{ store *Store }

var _ repository.InventoryUnitRepository = (*InventoryUnitRepo)(nil)

// NewInventoryUnitRepository construye el adaptador.
func NewInventoryUnitRepository(store *Store) *InventoryUnitRepo {
	return &InventoryUnitRepo{store: store}
}

func (r *InventoryUnitRepo) Create(u *entity.InventoryUnit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	// Los VIN nunca se reutilizan, en ningún estado.
	if _, ok := r.store.units[u.VIN]; ok {
		return domain.ErrDuplicateVin
	}
	r.store.units[u.VIN] = *u
	return nil
}

func (r *InventoryUnitRepo) GetByVIN(vin string) (*entity.InventoryUnit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.units[vin]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *InventoryUnitRepo) Update(u *entity.InventoryUnit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.units[u.VIN]; !ok {
		return domain.ErrNotFound
	}
	r.store.units[u.VIN] = *u
	return nil
}

func (r *InventoryUnitRepo) List(filter repository.UnitFilter) ([]*entity.InventoryUnit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.InventoryUnit, 0, len(r.store.units))
	for _, u := range r.store.units {
		if filter.DealershipID != "" && u.DealershipID != filter.DealershipID {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		uu := u
		all = append(all, &uu)
	}
	sortByCreatedThenID(all, func(u *entity.InventoryUnit) (string, string) {
		return u.CreatedAt.Format("2006-01-02T15:04:05.000000000"), u.VIN
	})
	return paginate(all, filter.Limit, filter.Offset), nil
}

func (r *InventoryUnitRepo) ListFinanced(dealershipID string) ([]*entity.InventoryUnit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InventoryUnit
	for _, u := range r.store.units {
		if u.DealershipID != dealershipID {
			continue
		}
		if u.Status == entity.UnitStatusInStock || u.Status == entity.UnitStatusSoldPendingPayment {
			uu := u
			out = append(out, &uu)
		}
	}
	sortByCreatedThenID(out, func(u *entity.InventoryUnit) (string, string) {
		return u.CreatedAt.Format("2006-01-02T15:04:05.000000000"), u.VIN
	})
	return out, nil
}

// ── Audits ────────────────────────────────────────────────────────────────────

// AuditRepo implementación en memoria de AuditRepository.
type AuditRepo struct{ store *Store }

var _ repository.AuditRepository = (*AuditRepo)(nil)

// NewAuditRepository construye el adaptador.
func NewAuditRepository(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Create(a *entity.Audit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *a
	cp.AuditedVehicles = append([]entity.AuditedVehicle(nil), a.AuditedVehicles...)
	r.store.audits[a.ID] = cp
	return nil
}

func (r *AuditRepo) GetByID(id string) (*entity.Audit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if a, ok := r.store.audits[id]; ok {
		cp := a
		cp.AuditedVehicles = append([]entity.AuditedVehicle(nil), a.AuditedVehicles...)
		return &cp, nil
	}
	return nil, nil
}

func (r *AuditRepo) List(dealershipID string, limit, offset int) ([]*entity.Audit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.Audit, 0, len(r.store.audits))
	for _, a := range r.store.audits {
		if dealershipID != "" && a.DealershipID != dealershipID {
			continue
		}
		cp := a
		cp.AuditedVehicles = append([]entity.AuditedVehicle(nil), a.AuditedVehicles...)
		all = append(all, &cp)
	}
	sortByCreatedThenID(all, func(a *entity.Audit) (string, string) {
		return a.CreatedAt.Format("2006-01-02T15:04:05.000000000"), a.ID
	})
	return paginate(all, limit, offset), nil
}

// ── Ledger events ─────────────────────────────────────────────────────────────

// LedgerEventRepo implementación en memoria del log append-only.
type LedgerEventRepo struct{ store *Store }

var _ repository.LedgerEventRepository = (*LedgerEventRepo)(nil)

// NewLedgerEventRepository construye el adaptador.
func NewLedgerEventRepository(store *Store) *LedgerEventRepo {
	return &LedgerEventRepo{store: store}
}

func (r *LedgerEventRepo) Append(ev *entity.LedgerEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[ev.CreditLineID] = append(r.store.events[ev.CreditLineID], *ev)
	return nil
}

func (r *LedgerEventRepo) ListByCreditLine(creditLineID string) ([]*entity.LedgerEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[creditLineID]
	out := make([]*entity.LedgerEvent, 0, len(events))
	for _, ev := range events {
		cp := ev
		out = append(out, &cp)
	}
	return out, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ store *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			uu := u
			return &uu, nil
		}
	}
	return nil, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sortByCreatedThenID[T any](items []*T, key func(*T) (string, string)) {
	sort.Slice(items, func(i, j int) bool {
		ci, ii := key(items[i])
		cj, ij := key(items[j])
		if ci != cj {
			return ci < cj
		}
		return ii < ij
	})
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
