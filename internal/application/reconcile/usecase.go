package reconcile

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

// TxRunner variante transaccional para auditorías: mismo contrato que el
// runner de financiación pero con el repo de auditorías en lugar del log
// de eventos.
type TxRunner interface {
	RunAudit(ctx context.Context, fn func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// AuditUseCase motor de conciliación física: compara el inventario
// observado en piso contra el conjunto "financiado y en stock" del
// registro. Es el único componente con la capacidad de marcar unidades
// Audit - Missing; nunca muta balances de crédito.
type AuditUseCase struct {
	txRunner       TxRunner
	dealershipRepo repository.DealershipRepository
	lineRepo       repository.CreditLineRepository
	auditRepo      repository.AuditRepository
	log            *logger.Logger
	validate       *validator.Validate
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(
	txRunner TxRunner,
	dealershipRepo repository.DealershipRepository,
	lineRepo repository.CreditLineRepository,
	auditRepo repository.AuditRepository,
	log *logger.Logger,
) *AuditUseCase {
	return &AuditUseCase{
		txRunner:       txRunner,
		dealershipRepo: dealershipRepo,
		lineRepo:       lineRepo,
		auditRepo:      auditRepo,
		log:            log,
		validate:       validator.New(),
	}
}

// Run ejecuta una auditoría y produce un registro Completed inmutable.
//
// El conjunto esperado se lee con la línea del concesionario bloqueada,
// de modo que una unidad repagada a mitad de auditoría no quede marcada
// Missing por error. Clasificación:
//   - esperado y observado  -> Verified
//   - esperado, no observado -> Missing (In Stock pasa a Audit - Missing;
//     el crédito NO se libera: el principal sigue debido)
//   - observado, no esperado -> Sold - Unreported (solo bandera para
//     revisión manual, sin cambio de estado)
//
// Re-ejecutar para el mismo concesionario y día crea un registro nuevo.
func (uc *AuditUseCase) Run(ctx context.Context, in dto.RunAuditRequest) (*dto.AuditResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	dealership, err := uc.dealershipRepo.GetByID(in.DealershipID)
	if err != nil {
		return nil, err
	}
	if dealership == nil {
		return nil, domain.ErrNotFound
	}

	observed := make(map[string]bool, len(in.ObservedVins))
	for _, vin := range in.ObservedVins {
		observed[vin] = true
	}

	now := time.Now()
	audit := &entity.Audit{
		ID:           uuid.New().String(),
		DealershipID: in.DealershipID,
		AuditDate:    now,
		AuditorName:  in.AuditorName,
		Status:       entity.AuditStatusCompleted,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunAudit(ctx, func(
		lineRepo repository.CreditLineRepository,
		unitRepo repository.InventoryUnitRepository,
		auditRepo repository.AuditRepository,
	) error {
		// Snapshot consistente: la línea bloqueada excluye fund/repay
		// concurrentes mientras se lee el conjunto esperado.
		if dealership.CreditLineID != "" {
			if _, err := lineRepo.GetForUpdate(dealership.CreditLineID); err != nil {
				return err
			}
		}
		expected, err := unitRepo.ListFinanced(in.DealershipID)
		if err != nil {
			return err
		}

		expectedVins := make(map[string]bool, len(expected))
		for _, unit := range expected {
			expectedVins[unit.VIN] = true
			if observed[unit.VIN] {
				audit.AuditedVehicles = append(audit.AuditedVehicles, entity.AuditedVehicle{
					VIN:                unit.VIN,
					VerificationStatus: entity.VerificationVerified,
				})
				continue
			}
			av := entity.AuditedVehicle{
				VIN:                unit.VIN,
				VerificationStatus: entity.VerificationMissing,
			}
			if unit.CanTransitionTo(entity.UnitStatusAuditMissing) {
				unit.Status = entity.UnitStatusAuditMissing
				unit.UpdatedAt = now
				if err := unitRepo.Update(unit); err != nil {
					return err
				}
			} else {
				// Vendida pendiente de pago: ausencia física esperable,
				// se reporta sin cambiar el estado.
				av.Notes = "vendida pendiente de pago; sin cambio de estado"
			}
			audit.AuditedVehicles = append(audit.AuditedVehicles, av)
		}

		for _, vin := range in.ObservedVins {
			if !expectedVins[vin] {
				audit.AuditedVehicles = append(audit.AuditedVehicles, entity.AuditedVehicle{
					VIN:                vin,
					VerificationStatus: entity.VerificationSoldUnreported,
					Notes:              "presente en piso pero no figura financiada; revisar manualmente",
				})
			}
		}
		return auditRepo.Create(audit)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("audit_id", audit.ID).
		Str("dealership_id", in.DealershipID).
		Int("vehicles", len(audit.AuditedVehicles)).
		Msg("auditoría completada")
	return toAuditResponse(audit), nil
}

// GetByID obtiene una auditoría por ID.
func (uc *AuditUseCase) GetByID(id string) (*dto.AuditResponse, error) {
	audit, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, domain.ErrNotFound
	}
	return toAuditResponse(audit), nil
}

// List lista auditorías, opcionalmente por concesionario.
func (uc *AuditUseCase) List(dealershipID string, limit, offset int) (*dto.AuditListResponse, error) {
	audits, err := uc.auditRepo.List(dealershipID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditResponse, 0, len(audits))
	for _, a := range audits {
		items = append(items, *toAuditResponse(a))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAuditResponse(a *entity.Audit) *dto.AuditResponse {
	if a == nil {
		return nil
	}
	vehicles := make([]dto.AuditedVehicleResponse, 0, len(a.AuditedVehicles))
	for _, av := range a.AuditedVehicles {
		vehicles = append(vehicles, dto.AuditedVehicleResponse{
			VIN:                av.VIN,
			VerificationStatus: av.VerificationStatus,
			Notes:              av.Notes,
		})
	}
	return &dto.AuditResponse{
		ID:              a.ID,
		DealershipID:    a.DealershipID,
		AuditDate:       a.AuditDate,
		AuditorName:     a.AuditorName,
		Status:          a.Status,
		AuditedVehicles: vehicles,
	}
}
