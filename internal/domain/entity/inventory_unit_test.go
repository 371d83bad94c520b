package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tablas de transición
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryUnit_Transiciones(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.UnitStatusPendingFunding, entity.UnitStatusInStock, true},
		{entity.UnitStatusInStock, entity.UnitStatusSoldPendingPayment, true},
		{entity.UnitStatusInStock, entity.UnitStatusRepaid, true},
		{entity.UnitStatusInStock, entity.UnitStatusAuditMissing, true},
		{entity.UnitStatusSoldPendingPayment, entity.UnitStatusRepaid, true},
		// terminales
		{entity.UnitStatusRepaid, entity.UnitStatusInStock, false},
		{entity.UnitStatusRepaid, entity.UnitStatusRepaid, false},
		{entity.UnitStatusAuditMissing, entity.UnitStatusInStock, false},
		// no permitidas
		{entity.UnitStatusSoldPendingPayment, entity.UnitStatusAuditMissing, false},
		{entity.UnitStatusSoldPendingPayment, entity.UnitStatusInStock, false},
		{entity.UnitStatusPendingFunding, entity.UnitStatusRepaid, false},
	}
	for _, tc := range cases {
		u := &entity.InventoryUnit{Status: tc.from}
		assert.Equal(t, tc.ok, u.CanTransitionTo(tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

func TestDealership_Transiciones(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.DealershipStatusOnboarding, entity.DealershipStatusActive, true},
		{entity.DealershipStatusOnboarding, entity.DealershipStatusInactive, true},
		{entity.DealershipStatusActive, entity.DealershipStatusSuspended, true},
		{entity.DealershipStatusSuspended, entity.DealershipStatusActive, true},
		// Suspended solo desde Active
		{entity.DealershipStatusOnboarding, entity.DealershipStatusSuspended, false},
		// Inactive es terminal
		{entity.DealershipStatusInactive, entity.DealershipStatusActive, false},
		{entity.DealershipStatusInactive, entity.DealershipStatusOnboarding, false},
	}
	for _, tc := range cases {
		d := &entity.Dealership{Status: tc.from}
		assert.Equal(t, tc.ok, d.CanTransitionTo(tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysInStock
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysInStock_PisoDeDias(t *testing.T) {
	funded := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	u := &entity.InventoryUnit{FundingDate: funded, Status: entity.UnitStatusInStock}

	// 5 días y medio después: floor = 5
	asOf := funded.Add(5*24*time.Hour + 12*time.Hour)
	assert.Equal(t, 5, u.DaysInStock(asOf))

	// mismo día
	assert.Equal(t, 0, u.DaysInStock(funded.Add(3*time.Hour)))
}

func TestDaysInStock_CongeladoTrasRepago(t *testing.T) {
	funded := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repaid := funded.AddDate(0, 0, 30)
	u := &entity.InventoryUnit{
		FundingDate:   funded,
		Status:        entity.UnitStatusRepaid,
		RepaymentDate: repaid,
	}
	// un año después del repago el contador no sigue corriendo
	assert.Equal(t, 30, u.DaysInStock(repaid.AddDate(1, 0, 0)))
}

func TestDaysInStock_AsOfAnteriorALaFinanciacion(t *testing.T) {
	funded := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	u := &entity.InventoryUnit{FundingDate: funded, Status: entity.UnitStatusInStock}
	assert.Equal(t, 0, u.DaysInStock(funded.AddDate(0, 0, -3)))
}

func TestIsFinanced_SoloInStockYSoldPending(t *testing.T) {
	for _, s := range []string{entity.UnitStatusInStock, entity.UnitStatusSoldPendingPayment} {
		u := &entity.InventoryUnit{Status: s}
		assert.True(t, u.IsFinanced(), "estado %s consume crédito", s)
	}
	for _, s := range []string{entity.UnitStatusPendingFunding, entity.UnitStatusRepaid, entity.UnitStatusAuditMissing} {
		u := &entity.InventoryUnit{Status: s}
		assert.False(t, u.IsFinanced(), "estado %s no consume crédito", s)
	}
}
