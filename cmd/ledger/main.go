package main

import (
	"context"
	"log"

	"github.com/ventafacil/ledger/internal/database"
	router "github.com/ventafacil/ledger/internal/http"
	"github.com/ventafacil/ledger/internal/logger"
	"github.com/ventafacil/ledger/internal/services"
	"github.com/ventafacil/ledger/internal/utils"
)

func main() {
	ctx := context.Background()
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	log.Printf("Running server on %s\n", config.endpoint)

	rateService := services.NewRateService(db)
	jobQueueService := services.NewJobQueueService(ctx, 100, 2)

	// Опрос внешнего источника курса включается только при заданном адресе:
	// журнал курсов можно вести и вручную через API.
	if config.rateFeedEndpoint != "" {
		rateFeedService := services.NewRateFeedService(
			rateService,
			jobQueueService,
			config.rateFeedEndpoint,
			config.ratePollInterval,
		)

		if err := rateFeedService.StartPolling(); err != nil {
			log.Fatalf("Rate feed polling wasn't started due to %s", err)
		}
	}

	utils.HandleTerminationProcess(func() {
		jobQueueService.Shutdown()
	})

	router.New(
		router.Config{Endpoint: config.endpoint},
		rateService,
		services.NewInstallmentService(db, rateService),
		services.NewOrderService(db),
		services.NewDebtService(db),
		services.NewReportService(db),
	).Run()
}
