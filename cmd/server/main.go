package main

import (
	"fmt"
	"os"

	"adlens/internal/delivery"
	"adlens/internal/infrastructure"
	"adlens/internal/usecase"
	"adlens/pkg/config"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.New()

	recordRepo := infrastructure.NewRecordRepository(log)
	budgetRepo := infrastructure.NewBudgetRepository(log)

	httpClient := infrastructure.NewHTTPClient(
		cfg.External.PlatformExportURL,
		cfg.External.SinkURL,
		cfg.External.SinkSecret,
		cfg.Insights.RequestTimeout,
		cfg.Insights.RateLimitPerSecond,
		log,
		m,
	)

	insights := usecase.NewInsightsService(recordRepo, budgetRepo, log, m, cfg.Insights.WorkerPoolSize)
	ingest := usecase.NewIngestService(recordRepo, httpClient, httpClient, insights, log, m)

	handlers := delivery.NewHTTPHandlers(insights, ingest, cfg.Insights.PerResultValue, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Insights.RequestTimeout)

	engine := router.SetupRoutes()

	log.WithField("port", cfg.Server.Port).Info("Starting ad insights server")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
