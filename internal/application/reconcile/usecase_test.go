package reconcile_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
	"github.com/tu-usuario/floorplan-pro/internal/infrastructure/memory"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	vinA = "MAT62533ZKDA00001"
	vinB = "MAT62533ZKDB00002"
	vinC = "MAT62533ZKDC00003"
	vinZ = "MAT62533ZKDZ99999" // jamás financiado
)

type env struct {
	lineRepo  repository.CreditLineRepository
	unitRepo  repository.InventoryUnitRepository
	fundingUC *funding.FundUnitUseCase
	auditUC   *reconcile.AuditUseCase

	dealershipID string
	lineID       string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	dealershipRepo := memory.NewDealershipRepository(store)
	lineRepo := memory.NewCreditLineRepository(store)
	unitRepo := memory.NewInventoryUnitRepository(store)
	eventRepo := memory.NewLedgerEventRepository(store)
	auditRepo := memory.NewAuditRepository(store)

	dealershipUC := registry.NewDealershipUseCase(dealershipRepo)
	creditUC := credit.NewCreditLineUseCase(txRunner, dealershipUC, dealershipRepo, lineRepo, eventRepo)

	d, err := dealershipUC.Create(dto.CreateDealershipRequest{
		Name:             "Galaxy Trucks",
		PrincipalContact: "Mr. Reddy",
		Location:         "Hyderabad",
		AgreementDate:    "2025-03-20",
	})
	require.NoError(t, err)
	_, err = dealershipUC.Activate(d.ID)
	require.NoError(t, err)
	line, err := creditUC.Open(context.Background(), dto.OpenCreditLineRequest{
		DealershipID: d.ID,
		TotalLimit:   decimal.NewFromInt(5_000_000),
		InterestRate: decimal.NewFromFloat(13.5),
	})
	require.NoError(t, err)

	return &env{
		lineRepo:     lineRepo,
		unitRepo:     unitRepo,
		fundingUC:    funding.NewFundUnitUseCase(txRunner, dealershipRepo, lineRepo, unitRepo, log),
		auditUC:      reconcile.NewAuditUseCase(txRunner, dealershipRepo, lineRepo, auditRepo, log),
		dealershipID: d.ID,
		lineID:       line.ID,
	}
}

func (e *env) fund(t *testing.T, vin string, amountRupees int64) {
	t.Helper()
	_, err := e.fundingUC.Fund(context.Background(), dto.FundUnitRequest{
		DealershipID:     e.dealershipID,
		VIN:              vin,
		OemInvoiceNumber: "OEM-INV-30001",
		Make:             "Eicher",
		Model:            "Pro 2049",
		Year:             2024,
		FinancedAmount:   decimal.NewFromInt(amountRupees),
	})
	require.NoError(t, err)
}

func (e *env) repay(t *testing.T, vin string, amountRupees int64) {
	t.Helper()
	_, err := e.fundingUC.Repay(context.Background(), vin, dto.RepayUnitRequest{
		RepaymentAmount: decimal.NewFromInt(amountRupees),
	})
	require.NoError(t, err)
}

func (e *env) available(t *testing.T) money.Paise {
	t.Helper()
	line, err := e.lineRepo.GetByID(e.lineID)
	require.NoError(t, err)
	return line.AvailableCredit
}

// resultFor busca el resultado de un VIN dentro de la auditoría.
func resultFor(a *dto.AuditResponse, vin string) *dto.AuditedVehicleResponse {
	for i := range a.AuditedVehicles {
		if a.AuditedVehicles[i].VIN == vin {
			return &a.AuditedVehicles[i]
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación
// ──────────────────────────────────────────────────────────────────────────────

// Esperado {A, B}; C ya repagada queda fuera. Observado {A, Z}:
//   - A: Verified
//   - B: Missing y la unidad pasa a Audit - Missing
//   - Z: Sold - Unreported (no estaba financiada)
//   - C: no aparece en el resultado
func TestRun_ClasificaVerifiedMissingYUnreported(t *testing.T) {
	e := newEnv(t)
	e.fund(t, vinA, 500_000)
	e.fund(t, vinB, 600_000)
	e.fund(t, vinC, 400_000)
	e.repay(t, vinC, 408_000)

	before := e.available(t)

	audit, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: []string{vinA, vinZ},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusCompleted, audit.Status)
	require.Len(t, audit.AuditedVehicles, 3, "A, B y Z; C repagada no cuenta")

	a := resultFor(audit, vinA)
	require.NotNil(t, a)
	assert.Equal(t, entity.VerificationVerified, a.VerificationStatus)

	b := resultFor(audit, vinB)
	require.NotNil(t, b)
	assert.Equal(t, entity.VerificationMissing, b.VerificationStatus)

	z := resultFor(audit, vinZ)
	require.NotNil(t, z)
	assert.Equal(t, entity.VerificationSoldUnreported, z.VerificationStatus)

	assert.Nil(t, resultFor(audit, vinC))

	// La unidad faltante queda marcada en el registro de inventario.
	unitB, err := e.unitRepo.GetByVIN(vinB)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitStatusAuditMissing, unitB.Status)

	// La conciliación jamás toca balances: el principal de B sigue debido.
	assert.Equal(t, before, e.available(t),
		"una auditoría no libera ni reserva crédito")
}

// Una unidad vendida pendiente de pago que no está en piso es esperable:
// se reporta Missing con nota pero el estado no cambia.
func TestRun_VendidaPendienteNoCambiaEstado(t *testing.T) {
	e := newEnv(t)
	e.fund(t, vinA, 500_000)
	_, err := e.fundingUC.MarkSold(context.Background(), vinA)
	require.NoError(t, err)

	audit, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: nil, // piso vacío
	})
	require.NoError(t, err)

	a := resultFor(audit, vinA)
	require.NotNil(t, a)
	assert.Equal(t, entity.VerificationMissing, a.VerificationStatus)
	assert.NotEmpty(t, a.Notes, "la ausencia esperable lleva nota para revisión")

	unit, err := e.unitRepo.GetByVIN(vinA)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitStatusSoldPendingPayment, unit.Status,
		"vendida pendiente de pago no pasa a Audit - Missing")
}

// Una unidad marcada Audit - Missing queda fuera del conjunto esperado de
// auditorías posteriores (ya no consume el contrato financiado-en-stock).
func TestRun_UnidadYaMissingQuedaFueraDelEsperado(t *testing.T) {
	e := newEnv(t)
	e.fund(t, vinA, 500_000)

	_, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: nil,
	})
	require.NoError(t, err)

	second, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, second.AuditedVehicles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ReEjecucionCreaRegistroNuevo(t *testing.T) {
	e := newEnv(t)
	e.fund(t, vinA, 500_000)

	first, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: []string{vinA},
	})
	require.NoError(t, err)
	second, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: e.dealershipID,
		AuditorName:  "S. Iyer",
		ObservedVins: []string{vinA},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := e.auditUC.List(e.dealershipID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2, "cada ejecución deja su propio registro")

	got, err := e.auditUC.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestRun_ConcesionarioInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.auditUC.Run(context.Background(), dto.RunAuditRequest{
		DealershipID: "11111111-1111-4111-8111-111111111111",
		AuditorName:  "S. Iyer",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
