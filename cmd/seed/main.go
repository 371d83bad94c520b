// seed puebla la base con un portafolio mayorista de demostración:
// 8 concesionarios activos con línea de crédito, ~10 unidades financiadas
// cada uno (parte ya repagada con margen del 2%) y una auditoría de
// ejemplo. Pasa por los casos de uso, nunca por SQL directo, así el
// portafolio resultante respeta la conservación de crédito.
//
// Uso: go run ./cmd/seed (usa la misma configuración que cmd/api)
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
	"github.com/tu-usuario/floorplan-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/floorplan-pro/pkg/config"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

const (
	dealershipCount = 8
	unitsPerDealer  = 10
)

var (
	dealerNames = []string{
		"Prestige Motors", "Capital Auto", "Sunrise Cars", "Galaxy Trucks",
		"Pioneer Commercials", "National Auto", "Metro Vehicles", "United Dealers",
	}
	dealerLocations = []string{
		"Mumbai", "Delhi", "Bangalore", "Chennai", "Pune", "Hyderabad", "Kolkata", "Ahmedabad",
	}
	principals = []string{"Sharma", "Verma", "Patel", "Reddy"}
	makes      = []string{"Tata", "Ashok Leyland", "Eicher", "BharatBenz"}
	models     = []string{"Ace", "Dost", "Pro 2049", "1015R"}

	vinAlphabet = []rune("ABCDEFGHJKLMNPRSTUVWXYZ0123456789")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	dealershipRepo := postgres.NewDealershipRepository(pool)
	lineRepo := postgres.NewCreditLineRepository(pool)
	unitRepo := postgres.NewInventoryUnitRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	eventRepo := postgres.NewLedgerEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	dealershipUC := registry.NewDealershipUseCase(dealershipRepo)
	creditUC := credit.NewCreditLineUseCase(txRunner, dealershipUC, dealershipRepo, lineRepo, eventRepo)
	fundingUC := funding.NewFundUnitUseCase(txRunner, dealershipRepo, lineRepo, unitRepo, log)
	auditUC := reconcile.NewAuditUseCase(txRunner, dealershipRepo, lineRepo, auditRepo, log)

	// Semilla por reloj: los VIN deben ser únicos también entre corridas.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < dealershipCount; i++ {
		agreement := time.Now().AddDate(0, 0, -(100 + i*50)).Format("2006-01-02")
		dealer, err := dealershipUC.Create(dto.CreateDealershipRequest{
			Name:             dealerNames[i],
			PrincipalContact: "Mr. " + principals[i%len(principals)],
			Location:         dealerLocations[i],
			AgreementDate:    agreement,
		})
		if err != nil {
			log.Fatal().Err(err).Str("dealer", dealerNames[i]).Msg("alta de concesionario")
		}
		if _, err := dealershipUC.Activate(dealer.ID); err != nil {
			log.Fatal().Err(err).Msg("activar concesionario")
		}

		// Límite entre 50 lakh y 2 crore, tasa 11.5%-13.5%.
		limitLakhs := 50 + rng.Intn(151)
		line, err := creditUC.Open(ctx, dto.OpenCreditLineRequest{
			DealershipID: dealer.ID,
			TotalLimit:   decimal.NewFromInt(int64(limitLakhs) * 100000),
			InterestRate: decimal.NewFromFloat(11.5 + rng.Float64()*2).Round(2),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("apertura de línea")
		}

		for j := 0; j < unitsPerDealer; j++ {
			// Principal entre 5 y 25 lakh.
			amount := decimal.NewFromInt(int64(5+rng.Intn(21)) * 100000)
			unit, err := fundingUC.Fund(ctx, dto.FundUnitRequest{
				DealershipID:     dealer.ID,
				VIN:              randomVin(rng),
				OemInvoiceNumber: fmt.Sprintf("OEM-INV-%05d", 10000+rng.Intn(90000)),
				Make:             makes[j%len(makes)],
				Model:            models[j%len(models)],
				Year:             2023,
				FinancedAmount:   amount,
			})
			if err != nil {
				// Línea agotada: el concesionario queda con menos unidades.
				log.Warn().Err(err).Str("dealer", dealer.Name).Msg("financiación omitida")
				continue
			}
			if rng.Float64() < 0.4 {
				// Repagada con margen del 2% sobre el principal.
				repayment := amount.Mul(decimal.NewFromFloat(1.02))
				if _, err := fundingUC.Repay(ctx, unit.VIN, dto.RepayUnitRequest{RepaymentAmount: repayment}); err != nil {
					log.Fatal().Err(err).Msg("repago")
				}
			} else if _, err := fundingUC.CompleteHypothecation(ctx, unit.VIN); err != nil {
				log.Fatal().Err(err).Msg("hipoteca")
			}
		}

		if i == 0 {
			// Auditoría de ejemplo sobre el primer concesionario: observa
			// todo lo financiado, así el registro queda todo Verified.
			financed, err := unitRepo.ListFinanced(dealer.ID)
			if err != nil {
				log.Fatal().Err(err).Msg("listar financiadas")
			}
			vins := make([]string, 0, len(financed))
			for _, u := range financed {
				vins = append(vins, u.VIN)
			}
			if _, err := auditUC.Run(ctx, dto.RunAuditRequest{
				DealershipID: dealer.ID,
				AuditorName:  "PwC Audit Team",
				ObservedVins: vins,
			}); err != nil {
				log.Fatal().Err(err).Msg("auditoría de ejemplo")
			}
		}

		log.Info().
			Str("dealer", dealer.Name).
			Str("credit_line", line.ID).
			Msg("concesionario sembrado")
	}

	log.Info().Msg("portafolio de demostración listo")
}

// randomVin VIN sintético bien formado (17 caracteres, sin I/O/Q).
func randomVin(rng *rand.Rand) string {
	out := make([]rune, 17)
	for i := range out {
		out[i] = vinAlphabet[rng.Intn(len(vinAlphabet))]
	}
	return string(out)
}
