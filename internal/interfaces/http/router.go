package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/auth"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/application/reporting"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DealershipUC *registry.DealershipUseCase
	CreditUC     *credit.CreditLineUseCase
	FundingUC    *funding.FundUnitUseCase
	AuditUC      *reconcile.AuditUseCase
	SummaryUC    *reporting.SummaryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. RBAC: las escrituras del registro y
// del ledger son de admin; financiación/repago de credit_ops; ejecutar
// auditorías de auditor. admin pasa siempre; las lecturas son para
// cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Dealerships
	dealerships := protected.Group("/dealerships")
	dealershipHandler := NewDealershipHandler(deps.DealershipUC)
	dealerships.Post("/", RequireRole(), dealershipHandler.Create)
	dealerships.Get("/", dealershipHandler.List)
	dealerships.Get("/:id", dealershipHandler.GetByID)
	dealerships.Post("/:id/activate", RequireRole(), dealershipHandler.Activate)
	dealerships.Post("/:id/suspend", RequireRole(), dealershipHandler.Suspend)
	dealerships.Post("/:id/deactivate", RequireRole(), dealershipHandler.Deactivate)

	// Credit lines
	creditLines := protected.Group("/credit-lines")
	creditHandler := NewCreditHandler(deps.CreditUC)
	creditLines.Post("/", RequireRole(), creditHandler.Open)
	creditLines.Get("/", creditHandler.List)
	creditLines.Get("/:id", creditHandler.GetByID)
	creditLines.Post("/:id/suspend", RequireRole(), creditHandler.Suspend)
	creditLines.Post("/:id/reactivate", RequireRole(), creditHandler.Reactivate)
	creditLines.Post("/:id/accrue-interest", RequireRole(entity.RoleCreditOps), creditHandler.AccrueInterest)
	creditLines.Get("/:id/utilization", creditHandler.Utilization)
	creditLines.Get("/:id/events", creditHandler.Events)

	// Inventory units
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.FundingUC)
	inventory.Post("/units", RequireRole(entity.RoleCreditOps), inventoryHandler.Fund)
	inventory.Get("/units", inventoryHandler.List)
	inventory.Get("/units/:vin", inventoryHandler.GetByVIN)
	inventory.Post("/units/:vin/sold", RequireRole(entity.RoleCreditOps), inventoryHandler.MarkSold)
	inventory.Post("/units/:vin/repay", RequireRole(entity.RoleCreditOps), inventoryHandler.Repay)
	inventory.Post("/units/:vin/hypothecation/complete", RequireRole(entity.RoleCreditOps), inventoryHandler.CompleteHypothecation)

	// Audits
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", RequireRole(entity.RoleAuditor), auditHandler.Run)
	audits.Get("/", auditHandler.List)
	audits.Get("/:id", auditHandler.GetByID)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SummaryUC)
	reports.Get("/portfolio-summary", reportHandler.PortfolioSummary)
}
