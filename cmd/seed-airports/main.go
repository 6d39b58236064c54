package main

import (
	"context"
	"flag"
	"os"
	"time"

	"flightreport/internal/infrastructure/config"
	"flightreport/internal/infrastructure/persistence"
	repo "flightreport/internal/interface/repository"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Loads the airports CSV into PostgreSQL so reports can run with --airport-source=postgres
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	fs := flag.NewFlagSet("seed-airports", flag.ExitOnError)
	fs.StringVar(&cfg.AirportPath, "airport-path", cfg.AirportPath, "Path to airport data CSV file")
	fs.StringVar(&cfg.PostgresURI, "postgres-dsn", cfg.PostgresURI, "PostgreSQL connection string")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.Parse(os.Args[1:])

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.NewRegistry())
	airports, err := repo.NewCSVAirportRepository(cfg.AirportPath, log, m).FindAll(ctx)
	if err != nil {
		log.Fatal("Failed to read airports", "path", cfg.AirportPath, "error", err)
	}

	db, err := persistence.NewPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	defer persistence.ClosePostgres(db)

	store := repo.NewGormAirportRepository(db)
	if err := store.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate airports table", "error", err)
	}
	if err := store.Upsert(ctx, airports); err != nil {
		log.Fatal("Failed to seed airports", "error", err)
	}

	log.Info("Airports seeded", "count", len(airports))
}
