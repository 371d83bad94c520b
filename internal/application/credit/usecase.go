package credit

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una transacción; Commit si fn
// retorna nil, Rollback si no. La implementación en memoria serializa por
// línea vía GetForUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		eventRepo repository.LedgerEventRepository,
	) error) error
}

// CreditLineUseCase casos de uso del ledger de líneas de crédito:
// apertura, suspensión, devengo de interés, utilización y lecturas.
type CreditLineUseCase struct {
	txRunner       TxRunner
	registryUC     *registry.DealershipUseCase
	dealershipRepo repository.DealershipRepository
	lineRepo       repository.CreditLineRepository
	eventRepo      repository.LedgerEventRepository
	validate       *validator.Validate
}

// NewCreditLineUseCase construye el caso de uso.
func NewCreditLineUseCase(
	txRunner TxRunner,
	registryUC *registry.DealershipUseCase,
	dealershipRepo repository.DealershipRepository,
	lineRepo repository.CreditLineRepository,
	eventRepo repository.LedgerEventRepository,
) *CreditLineUseCase {
	return &CreditLineUseCase{
		txRunner:       txRunner,
		registryUC:     registryUC,
		dealershipRepo: dealershipRepo,
		lineRepo:       lineRepo,
		eventRepo:      eventRepo,
		validate:       validator.New(),
	}
}

// Open abre la facilidad revolvente de un concesionario Activo.
// AvailableCredit arranca igual a TotalLimit. Falla con
// ErrDealershipNotActive o ErrDuplicateCreditLine según corresponda.
func (uc *CreditLineUseCase) Open(ctx context.Context, in dto.OpenCreditLineRequest) (*dto.CreditLineResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	totalLimit, err := money.FromDecimal(in.TotalLimit)
	if err != nil || totalLimit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.InterestRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	dealership, err := uc.dealershipRepo.GetByID(in.DealershipID)
	if err != nil {
		return nil, err
	}
	if dealership == nil {
		return nil, domain.ErrNotFound
	}
	if dealership.Status != entity.DealershipStatusActive {
		return nil, domain.ErrDealershipNotActive
	}
	existing, err := uc.lineRepo.GetByDealership(in.DealershipID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCreditLine
	}

	now := time.Now()
	line := &entity.CreditLine{
		ID:              uuid.New().String(),
		DealershipID:    in.DealershipID,
		TotalLimit:      totalLimit,
		AvailableCredit: totalLimit,
		InterestRate:    in.InterestRate,
		Status:          entity.CreditLineStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.lineRepo.Create(line); err != nil {
		return nil, err
	}
	if err := uc.registryUC.AttachCreditLine(in.DealershipID, line.ID); err != nil {
		return nil, err
	}
	return toCreditLineResponse(line), nil
}

// Suspend suspende la línea (rechaza con ErrInvalidTransition si el estado
// actual no lo permite). Una línea suspendida no admite reservas.
func (uc *CreditLineUseCase) Suspend(ctx context.Context, id string) (*dto.CreditLineResponse, error) {
	return uc.transition(ctx, id, entity.CreditLineStatusSuspended)
}

// Reactivate vuelve la línea a Active desde Suspended o Under Review.
func (uc *CreditLineUseCase) Reactivate(ctx context.Context, id string) (*dto.CreditLineResponse, error) {
	return uc.transition(ctx, id, entity.CreditLineStatusActive)
}

func (uc *CreditLineUseCase) transition(ctx context.Context, id, next string) (*dto.CreditLineResponse, error) {
	var out *dto.CreditLineResponse
	err := uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		_ repository.InventoryUnitRepository,
		_ repository.LedgerEventRepository,
	) error {
		line, err := lineRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if !line.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		line.Status = next
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(line); err != nil {
			return err
		}
		out = toCreditLineResponse(line)
		return nil
	})
	return out, err
}

// AccrueInterest devenga interés simple diario (ACT/365) sobre el monto
// dispuesto desde la última fecha de devengo (o la apertura). Idempotente
// por fecha: una segunda llamada con el mismo asOf no suma nada.
func (uc *CreditLineUseCase) AccrueInterest(ctx context.Context, id string, asOf time.Time) (*dto.CreditLineResponse, error) {
	asOf = truncateToDate(asOf)
	var out *dto.CreditLineResponse
	err := uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		_ repository.InventoryUnitRepository,
		eventRepo repository.LedgerEventRepository,
	) error {
		line, err := lineRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		since := line.LastInterestDate
		if since.IsZero() {
			since = truncateToDate(line.CreatedAt)
		}
		days := int64(asOf.Sub(since).Hours() / 24)
		if days <= 0 {
			// Ya devengado hasta esta fecha: no-op.
			out = toCreditLineResponse(line)
			return nil
		}
		interest := dailyInterest(line.Drawn(), line.InterestRate, days)
		line.InterestAccrued += interest
		line.LastInterestDate = asOf
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(line); err != nil {
			return err
		}
		if interest > 0 {
			if err := eventRepo.Append(&entity.LedgerEvent{
				ID:            uuid.New().String(),
				CreditLineID:  line.ID,
				Type:          entity.EventInterestAccrued,
				Amount:        interest,
				EffectiveDate: asOf,
				CreatedAt:     time.Now(),
			}); err != nil {
				return err
			}
		}
		out = toCreditLineResponse(line)
		return nil
	})
	return out, err
}

// Utilization fracción del límite dispuesta; 0 si TotalLimit es 0.
func (uc *CreditLineUseCase) Utilization(id string) (*dto.UtilizationResponse, error) {
	line, err := uc.lineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.UtilizationResponse{
		CreditLineID: line.ID,
		Utilization:  line.Utilization(),
	}, nil
}

// GetByID obtiene una línea por ID.
func (uc *CreditLineUseCase) GetByID(id string) (*dto.CreditLineResponse, error) {
	line, err := uc.lineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	return toCreditLineResponse(line), nil
}

// List lista líneas, opcionalmente filtradas por concesionario.
func (uc *CreditLineUseCase) List(dealershipID string, limit, offset int) (*dto.CreditLineListResponse, error) {
	lines, err := uc.lineRepo.List(dealershipID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CreditLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, *toCreditLineResponse(l))
	}
	return &dto.CreditLineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Events devuelve el log append-only de una línea.
func (uc *CreditLineUseCase) Events(id string) ([]dto.LedgerEventResponse, error) {
	line, err := uc.lineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	events, err := uc.eventRepo.ListByCreditLine(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.LedgerEventResponse{
			ID:            ev.ID,
			CreditLineID:  ev.CreditLineID,
			Type:          ev.Type,
			Amount:        ev.Amount.Decimal(),
			VIN:           ev.VIN,
			EffectiveDate: ev.EffectiveDate,
			CreatedAt:     ev.CreatedAt,
		})
	}
	return out, nil
}

// dailyInterest interés simple: dispuesto * APR/100 / 365 * días,
// redondeado a paisa.
func dailyInterest(drawn money.Paise, apr decimal.Decimal, days int64) money.Paise {
	if drawn <= 0 || days <= 0 {
		return 0
	}
	interest := drawn.Decimal().
		Mul(apr).
		Div(decimal.NewFromInt(36500)).
		Mul(decimal.NewFromInt(days))
	return money.FromDecimalRounded(interest)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toCreditLineResponse(l *entity.CreditLine) *dto.CreditLineResponse {
	if l == nil {
		return nil
	}
	resp := &dto.CreditLineResponse{
		ID:              l.ID,
		DealershipID:    l.DealershipID,
		TotalLimit:      l.TotalLimit.Decimal(),
		AvailableCredit: l.AvailableCredit.Decimal(),
		InterestRate:    l.InterestRate,
		InterestAccrued: l.InterestAccrued.Decimal(),
		Status:          l.Status,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if !l.LastInterestDate.IsZero() {
		d := l.LastInterestDate
		resp.LastInterestDate = &d
	}
	return resp
}
