package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/infrastructure/memory"
)

func newUseCase() *registry.DealershipUseCase {
	store := memory.NewStore()
	return registry.NewDealershipUseCase(memory.NewDealershipRepository(store))
}

func create(t *testing.T, uc *registry.DealershipUseCase) *dto.DealershipResponse {
	t.Helper()
	d, err := uc.Create(dto.CreateDealershipRequest{
		Name:             "Pioneer Commercials",
		PrincipalContact: "Mr. Verma",
		Location:         "Jaipur",
		AgreementDate:    "2025-02-11",
	})
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ArrancaEnOnboarding(t *testing.T) {
	uc := newUseCase()
	d := create(t, uc)
	assert.Equal(t, entity.DealershipStatusOnboarding, d.Status)
	assert.NotEmpty(t, d.ID)
	assert.Empty(t, d.CreditLineID)
}

func TestCreate_FechaDeConvenioInvalida(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create(dto.CreateDealershipRequest{
		Name:             "National Auto",
		PrincipalContact: "Mr. Sharma",
		Location:         "Surat",
		AgreementDate:    "11-02-2025", // formato incorrecto
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestLifecycle_OnboardingActiveSuspendedActive(t *testing.T) {
	uc := newUseCase()
	d := create(t, uc)

	d2, err := uc.Activate(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DealershipStatusActive, d2.Status)

	d3, err := uc.Suspend(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DealershipStatusSuspended, d3.Status)

	d4, err := uc.Activate(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DealershipStatusActive, d4.Status)
}

func TestSuspend_SoloDesdeActive(t *testing.T) {
	uc := newUseCase()
	d := create(t, uc)
	// Onboarding -> Suspended no está en la tabla.
	_, err := uc.Suspend(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeactivate_EsTerminal(t *testing.T) {
	uc := newUseCase()
	d := create(t, uc)
	_, err := uc.Deactivate(d.ID)
	require.NoError(t, err)

	// Inactive no vuelve a ningún estado.
	_, err = uc.Activate(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Suspend(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_NoEncontrado(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Activate("11111111-1111-4111-8111-111111111111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Línea de crédito adjunta
// ──────────────────────────────────────────────────────────────────────────────

func TestAttachCreditLine_UnaSolaVez(t *testing.T) {
	uc := newUseCase()
	d := create(t, uc)

	require.NoError(t, uc.AttachCreditLine(d.ID, "line-1"))

	got, err := uc.GetByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "line-1", got.CreditLineID)

	err = uc.AttachCreditLine(d.ID, "line-2")
	assert.ErrorIs(t, err, domain.ErrDuplicateCreditLine,
		"un concesionario no admite una segunda línea en toda su vida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_Paginado(t *testing.T) {
	uc := newUseCase()
	for i := 0; i < 5; i++ {
		create(t, uc)
	}

	page, err := uc.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	rest, err := uc.List(0, 4)
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1, "offset 4 de 5 deja un elemento")
}
