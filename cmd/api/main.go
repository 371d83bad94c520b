package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/floorplan-pro/internal/application/auth"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/application/reporting"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
	"github.com/tu-usuario/floorplan-pro/internal/infrastructure/memory"
	"github.com/tu-usuario/floorplan-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/floorplan-pro/internal/interfaces/http"
	"github.com/tu-usuario/floorplan-pro/pkg/config"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ledger_driver", cfg.Ledger.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		dealershipRepo repository.DealershipRepository
		lineRepo       repository.CreditLineRepository
		unitRepo       repository.InventoryUnitRepository
		auditRepo      repository.AuditRepository
		eventRepo      repository.LedgerEventRepository
		userRepo       repository.UserRepository

		fundingTx   funding.TxRunner
		creditTx    credit.TxRunner
		reconcileTx reconcile.TxRunner
	)

	if cfg.Ledger.Driver == "memory" {
		store := memory.NewStore()
		tx := memory.NewTxRunner(store)
		dealershipRepo = memory.NewDealershipRepository(store)
		lineRepo = memory.NewCreditLineRepository(store)
		unitRepo = memory.NewInventoryUnitRepository(store)
		auditRepo = memory.NewAuditRepository(store)
		eventRepo = memory.NewLedgerEventRepository(store)
		userRepo = memory.NewUserRepository(store)
		fundingTx, creditTx, reconcileTx = tx, tx, tx
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		tx := postgres.NewTxRunner(pool)
		dealershipRepo = postgres.NewDealershipRepository(pool)
		lineRepo = postgres.NewCreditLineRepository(pool)
		unitRepo = postgres.NewInventoryUnitRepository(pool)
		auditRepo = postgres.NewAuditRepository(pool)
		eventRepo = postgres.NewLedgerEventRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		fundingTx, creditTx, reconcileTx = tx, tx, tx
	}

	dealershipUC := registry.NewDealershipUseCase(dealershipRepo)
	creditUC := credit.NewCreditLineUseCase(creditTx, dealershipUC, dealershipRepo, lineRepo, eventRepo)
	fundingUC := funding.NewFundUnitUseCase(fundingTx, dealershipRepo, lineRepo, unitRepo, log)
	auditUC := reconcile.NewAuditUseCase(reconcileTx, dealershipRepo, lineRepo, auditRepo, log)
	summaryUC := reporting.NewSummaryUseCase(dealershipRepo, lineRepo, unitRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Floorplan Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DealershipUC: dealershipUC,
		CreditUC:     creditUC,
		FundingUC:    fundingUC,
		AuditUC:      auditUC,
		SummaryUC:    summaryUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
