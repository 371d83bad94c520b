package reporting

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// SummaryUseCase métricas agregadas del portafolio para el dashboard
// mayorista. Consumidor de solo lectura: jamás muta el ledger.
type SummaryUseCase struct {
	dealershipRepo repository.DealershipRepository
	lineRepo       repository.CreditLineRepository
	unitRepo       repository.InventoryUnitRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(
	dealershipRepo repository.DealershipRepository,
	lineRepo repository.CreditLineRepository,
	unitRepo repository.InventoryUnitRepository,
) *SummaryUseCase {
	return &SummaryUseCase{
		dealershipRepo: dealershipRepo,
		lineRepo:       lineRepo,
		unitRepo:       unitRepo,
	}
}

// PortfolioSummary total desembolsado, límites y disponible agregados,
// utilización global, concesionarios activos, unidades en stock y repagos
// pendientes (valor financiado aún en piso).
func (uc *SummaryUseCase) PortfolioSummary() (*dto.PortfolioSummaryResponse, error) {
	dealerships, err := uc.dealershipRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	lines, err := uc.lineRepo.List("", 0, 0)
	if err != nil {
		return nil, err
	}
	units, err := uc.unitRepo.List(repository.UnitFilter{})
	if err != nil {
		return nil, err
	}

	var totalDisbursed, totalLimit, totalAvailable, pendingRepayments money.Paise
	var activeDealerships, unitsInStock, suspendedLines int

	for _, d := range dealerships {
		if d.Status == entity.DealershipStatusActive {
			activeDealerships++
		}
	}
	for _, l := range lines {
		totalLimit += l.TotalLimit
		totalAvailable += l.AvailableCredit
		if l.Status == entity.CreditLineStatusSuspended {
			suspendedLines++
		}
	}
	for _, u := range units {
		totalDisbursed += u.FinancedAmount
		if u.Status == entity.UnitStatusInStock {
			unitsInStock++
			pendingRepayments += u.FinancedAmount
		}
	}

	utilization := decimal.Zero
	if totalLimit > 0 {
		utilization = (totalLimit - totalAvailable).Decimal().Div(totalLimit.Decimal())
	}

	return &dto.PortfolioSummaryResponse{
		TotalDisbursed:     totalDisbursed.Decimal(),
		TotalLimit:         totalLimit.Decimal(),
		TotalAvailable:     totalAvailable.Decimal(),
		OverallUtilization: utilization,
		ActiveDealerships:  activeDealerships,
		UnitsInStock:       unitsInStock,
		PendingRepayments:  pendingRepayments.Decimal(),
		SuspendedLines:     suspendedLines,
	}, nil
}
