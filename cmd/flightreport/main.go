package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
	"flightreport/internal/infrastructure/config"
	"flightreport/internal/infrastructure/persistence"
	"flightreport/internal/infrastructure/router"
	"flightreport/internal/interface/export"
	repo "flightreport/internal/interface/repository"
	"flightreport/internal/usecase"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"
	"flightreport/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	fs := flag.NewFlagSet("flightreport", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flightreport [flags]\n\nReport the most popular KL destinations by country, season and weekday.\n\n")
		fs.PrintDefaults()
	}
	cfg.BindFlags(fs)
	fs.Parse(os.Args[1:])

	// Dates are checked before anything is opened
	dateRange, err := parseRange(cfg.StartDate, cfg.EndDate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fs.Usage()
		return 2
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting flight report", "version", cfg.AppVersion)

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(cfg.MetricsNamespace, reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res := &resources{cfg: cfg, log: log}
	defer res.close(context.Background())

	airportRepo, err := res.airportRepository(ctx, m)
	if err != nil {
		log.Error("Failed to set up airport source", "source", cfg.AirportSource, "error", err)
		return 1
	}
	bookingRepo, err := res.bookingRepository(ctx, m)
	if err != nil {
		log.Error("Failed to set up booking source", "source", cfg.BookingSource, "error", err)
		return 1
	}

	processor := usecase.NewReportProcessor(airportRepo, bookingRepo, cfg.HomeCountry, log, m)
	report, err := processor.ProduceReport(ctx, dateRange)
	if err != nil {
		log.Error("Failed to produce report", "error", err)
		return 1
	}

	formatRouter := router.NewFormatRouter(log)
	formatRouter.Register(export.NewTableExporter(os.Stdout))
	formatRouter.Register(export.NewCSVExporter(cfg.OutputPath, log))
	formatRouter.Register(export.NewParquetExporter(cfg.OutputPath, log))
	formatRouter.Register(export.NewXLSXExporter(cfg.OutputPath, log))
	if cfg.Postgres {
		reportRepo, err := res.reportRepository(ctx)
		if err != nil {
			log.Error("Failed to set up report store", "error", err)
			return 1
		}
		formatRouter.Register(export.NewPostgresExporter(reportRepo))
	}

	code := 0
	orchestrator := usecase.NewExportOrchestrator(formatRouter, log, m)
	if err := orchestrator.Dispatch(ctx, report, cfg.ExportFormats()); err != nil {
		log.Error("Some exports failed", "error", err)
		code = 1
	}

	if cfg.PushgatewayURL != "" {
		if err := m.Push(cfg.PushgatewayURL, "flightreport"); err != nil {
			log.Warn("Failed to push metrics", "url", cfg.PushgatewayURL, "error", err)
		}
	}

	log.Info("Flight report finished",
		"runID", report.RunID,
		"rows", len(report.Rows),
		"passengers", report.TotalPassengers())
	return code
}

func parseRange(start, end string) (entity.DateRange, error) {
	var r entity.DateRange
	var err error
	if r.Start, err = utils.ParseOptionalDate(start); err != nil {
		return r, err
	}
	if r.End, err = utils.ParseOptionalDate(end); err != nil {
		return r, err
	}
	return r, r.Validate()
}

// resources opens database connections on first use and closes them at exit
type resources struct {
	cfg *config.Config
	log logger.Logger

	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	gormDB      *gorm.DB
}

func (r *resources) mongoDatabase(ctx context.Context) (*mongo.Database, error) {
	if r.mongoDB != nil {
		return r.mongoDB, nil
	}
	r.log.Info("Connecting to MongoDB")
	client, db, err := persistence.NewMongoClient(ctx, r.cfg.MongoURI, r.cfg.MongoDB, r.cfg.MongoUser, r.cfg.MongoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	r.mongoClient, r.mongoDB = client, db
	return db, nil
}

func (r *resources) postgresDB() (*gorm.DB, error) {
	if r.gormDB != nil {
		return r.gormDB, nil
	}
	r.log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgres(r.cfg.PostgresURI)
	if err != nil {
		return nil, err
	}
	r.gormDB = db
	return db, nil
}

func (r *resources) airportRepository(ctx context.Context, m *metrics.Metrics) (repository.AirportRepository, error) {
	switch r.cfg.AirportSource {
	case config.SourceCSV:
		return repo.NewCSVAirportRepository(r.cfg.AirportPath, r.log, m), nil
	case config.SourcePostgres:
		db, err := r.postgresDB()
		if err != nil {
			return nil, err
		}
		return repo.NewGormAirportRepository(db), nil
	}
	return nil, fmt.Errorf("unknown airport source %q", r.cfg.AirportSource)
}

func (r *resources) bookingRepository(ctx context.Context, m *metrics.Metrics) (repository.BookingEventRepository, error) {
	switch r.cfg.BookingSource {
	case config.SourceFile:
		return repo.NewFileBookingRepository(r.cfg.BookingPath, r.log, m), nil
	case config.SourceMongo:
		db, err := r.mongoDatabase(ctx)
		if err != nil {
			return nil, err
		}
		return repo.NewMongoBookingRepository(db, r.cfg.MongoBookingCollection, r.cfg.MongoBatchSize, r.log, m), nil
	}
	return nil, fmt.Errorf("unknown booking source %q", r.cfg.BookingSource)
}

func (r *resources) reportRepository(ctx context.Context) (repository.ReportRepository, error) {
	db, err := r.postgresDB()
	if err != nil {
		return nil, err
	}
	reportRepo := repo.NewGormReportRepository(db)
	if err := reportRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate report tables: %w", err)
	}
	return reportRepo, nil
}

func (r *resources) close(ctx context.Context) {
	var errs []error
	if r.mongoClient != nil {
		errs = append(errs, r.mongoClient.Disconnect(ctx))
	}
	if r.gormDB != nil {
		errs = append(errs, persistence.ClosePostgres(r.gormDB))
	}
	if err := errors.Join(errs...); err != nil {
		r.log.Error("Failed to close connections", "error", err)
	}
}
