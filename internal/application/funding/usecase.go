package funding

import (
	"context"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

// vinPattern VIN bien formado: 17 caracteres, alfanumérico sin I, O ni Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// FundUnitUseCase registro de unidades de inventario: financiación, venta,
// repago. Compone las operaciones reserve/release del ledger de crédito de
// forma todo-o-nada.
type FundUnitUseCase struct {
	txRunner       TxRunner
	dealershipRepo repository.DealershipRepository
	lineRepo       repository.CreditLineRepository
	unitRepo       repository.InventoryUnitRepository
	log            *logger.Logger
	validate       *validator.Validate
}

// NewFundUnitUseCase construye el caso de uso y registra la validación
// custom de VIN.
func NewFundUnitUseCase(
	txRunner TxRunner,
	dealershipRepo repository.DealershipRepository,
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
	log *logger.Logger,
) *FundUnitUseCase {
	v := validator.New()
	_ = v.RegisterValidation("vin", func(fl validator.FieldLevel) bool {
		return vinPattern.MatchString(fl.Field().String())
	})
	return &FundUnitUseCase{
		txRunner:       txRunner,
		dealershipRepo: dealershipRepo,
		lineRepo:       lineRepo,
		unitRepo:       unitRepo,
		log:            log,
		validate:       v,
	}
}

// Fund financia una unidad nueva: verifica VIN global único, reserva el
// monto contra la línea del concesionario y crea la unidad In Stock. Todo
// o nada: si la creación falla después de reservar (p.ej. VIN duplicado
// detectado tarde por el constraint), la reserva se revierte vía release
// antes de retornar el error.
func (uc *FundUnitUseCase) Fund(ctx context.Context, in dto.FundUnitRequest) (*dto.InventoryUnitResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	amount, err := money.FromDecimal(in.FinancedAmount)
	if err != nil || amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	dealership, err := uc.dealershipRepo.GetByID(in.DealershipID)
	if err != nil {
		return nil, err
	}
	if dealership == nil {
		return nil, domain.ErrNotFound
	}
	lineID := dealership.CreditLineID
	if lineID == "" {
		// La apertura escribe la línea y la adjunción al concesionario por
		// separado; si la segunda escritura no llegó, la línea manda.
		line, err := uc.lineRepo.GetByDealership(in.DealershipID)
		if err != nil {
			return nil, err
		}
		if line == nil {
			return nil, domain.ErrNotFound // sin línea de crédito
		}
		lineID = line.ID
	}

	// Chequeo rápido de VIN duplicado fuera de la transacción; el
	// constraint único del repositorio cubre la carrera residual.
	if existing, err := uc.unitRepo.GetByVIN(in.VIN); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateVin
	}

	now := time.Now()
	unit := &entity.InventoryUnit{
		VIN:              in.VIN,
		DealershipID:     in.DealershipID,
		CreditLineID:     lineID,
		OemInvoiceNumber: in.OemInvoiceNumber,
		Make:             in.Make,
		Model:            in.Model,
		Year:             in.Year,
		FinancedAmount:   amount,
		FundingDate:      now,
		Status:           entity.UnitStatusInStock,
		Hypothecation:    entity.HypothecationPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		eventRepo repository.LedgerEventRepository,
	) error {
		if err := credit.ReserveInTx(lineRepo, eventRepo, lineID, amount, in.VIN, now); err != nil {
			return err
		}
		if err := unitRepo.Create(unit); err != nil {
			// Reserva hecha y unidad no creada: revertir el decremento
			// antes de salir para no dejar crédito huérfano visible.
			if relErr := credit.ReleaseInTx(uc.log, lineRepo, eventRepo, lineID, amount, in.VIN, now); relErr != nil {
				return relErr
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("vin", unit.VIN).
		Str("dealership_id", unit.DealershipID).
		Int64("financed_paise", int64(amount)).
		Msg("unidad financiada")
	return toUnitResponse(unit, now), nil
}

// MarkSold transición In Stock -> Sold - Pending Payment. No toca
// balances: la unidad sigue consumiendo crédito hasta el repago. Corre
// con la línea bloqueada: un repago concurrente no puede intercalarse
// entre la lectura del estado y la escritura (escribir Sold sobre una
// unidad ya Repaid la devolvería al conjunto financiado con el principal
// ya liberado).
func (uc *FundUnitUseCase) MarkSold(ctx context.Context, vin string) (*dto.InventoryUnitResponse, error) {
	peek, err := uc.unitRepo.GetByVIN(vin)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var out *dto.InventoryUnitResponse
	err = uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		_ repository.LedgerEventRepository,
	) error {
		if _, err := lineRepo.GetForUpdate(peek.CreditLineID); err != nil {
			return err
		}
		unit, err := unitRepo.GetByVIN(vin)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		// Re-verificar bajo el lock: el estado pudo cambiar desde el peek.
		if unit.Status != entity.UnitStatusInStock {
			return domain.ErrInvalidTransition
		}
		unit.Status = entity.UnitStatusSoldPendingPayment
		unit.UpdatedAt = now
		if err := unitRepo.Update(unit); err != nil {
			return err
		}
		out = toUnitResponse(unit, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Repay repaga una unidad: fija estado Repaid, fecha y monto de repago, y
// libera en la línea exactamente el principal financiado, nunca el monto
// de repago (que puede traer margen o castigo y no debe distorsionar la
// conservación). Emite el NOC de la hipoteca.
func (uc *FundUnitUseCase) Repay(ctx context.Context, vin string, in dto.RepayUnitRequest) (*dto.InventoryUnitResponse, error) {
	repayment, err := money.FromDecimal(in.RepaymentAmount)
	if err != nil || repayment <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Lectura previa solo para ubicar la línea; el estado se re-verifica
	// dentro de la transacción con la línea bloqueada.
	peek, err := uc.unitRepo.GetByVIN(vin)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var out *dto.InventoryUnitResponse
	err = uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		eventRepo repository.LedgerEventRepository,
	) error {
		// Tomar el lock de la línea primero serializa repagos
		// concurrentes del mismo VIN.
		line, err := lineRepo.GetForUpdate(peek.CreditLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		unit, err := unitRepo.GetByVIN(vin)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if !unit.CanTransitionTo(entity.UnitStatusRepaid) {
			return domain.ErrInvalidTransition
		}
		if err := credit.ReleaseInTx(uc.log, lineRepo, eventRepo, unit.CreditLineID, unit.FinancedAmount, vin, now); err != nil {
			return err
		}
		unit.Status = entity.UnitStatusRepaid
		unit.RepaymentDate = now
		unit.RepaymentAmount = repayment
		unit.Hypothecation = entity.HypothecationNocIssued
		unit.UpdatedAt = now
		if err := unitRepo.Update(unit); err != nil {
			return err
		}
		out = toUnitResponse(unit, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("vin", vin).
		Int64("principal_paise", int64(peek.FinancedAmount)).
		Int64("repayment_paise", int64(repayment)).
		Msg("unidad repagada, principal liberado")
	return out, nil
}

// CompleteHypothecation marca el gravamen como registrado (Pending ->
// Completed). Paso administrativo posterior a la financiación. Misma
// disciplina de lock que MarkSold: un repago concurrente emite el NOC y
// esta escritura no debe pisarlo.
func (uc *FundUnitUseCase) CompleteHypothecation(ctx context.Context, vin string) (*dto.InventoryUnitResponse, error) {
	peek, err := uc.unitRepo.GetByVIN(vin)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var out *dto.InventoryUnitResponse
	err = uc.txRunner.Run(ctx, func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		_ repository.LedgerEventRepository,
	) error {
		if _, err := lineRepo.GetForUpdate(peek.CreditLineID); err != nil {
			return err
		}
		unit, err := unitRepo.GetByVIN(vin)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if unit.Hypothecation != entity.HypothecationPending {
			return domain.ErrInvalidTransition
		}
		unit.Hypothecation = entity.HypothecationCompleted
		unit.UpdatedAt = now
		if err := unitRepo.Update(unit); err != nil {
			return err
		}
		out = toUnitResponse(unit, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByVIN obtiene una unidad por VIN.
func (uc *FundUnitUseCase) GetByVIN(vin string) (*dto.InventoryUnitResponse, error) {
	unit, err := uc.unitRepo.GetByVIN(vin)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitResponse(unit, time.Now()), nil
}

// List lista unidades con filtros opcionales por concesionario y estado.
func (uc *FundUnitUseCase) List(filter repository.UnitFilter) (*dto.InventoryListResponse, error) {
	units, err := uc.unitRepo.List(filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.InventoryUnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, *toUnitResponse(u, now))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func toUnitResponse(u *entity.InventoryUnit, asOf time.Time) *dto.InventoryUnitResponse {
	if u == nil {
		return nil
	}
	resp := &dto.InventoryUnitResponse{
		VIN:              u.VIN,
		DealershipID:     u.DealershipID,
		CreditLineID:     u.CreditLineID,
		OemInvoiceNumber: u.OemInvoiceNumber,
		Make:             u.Make,
		Model:            u.Model,
		Year:             u.Year,
		FinancedAmount:   u.FinancedAmount.Decimal(),
		FundingDate:      u.FundingDate,
		Status:           u.Status,
		Hypothecation:    u.Hypothecation,
		DaysInStock:      u.DaysInStock(asOf),
	}
	if !u.RepaymentDate.IsZero() {
		d := u.RepaymentDate
		resp.RepaymentDate = &d
		resp.RepaymentAmount = u.RepaymentAmount.Decimal()
	}
	return resp
}
