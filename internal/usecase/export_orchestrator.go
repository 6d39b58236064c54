package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"
)

// ExportOrchestrator hands a finished report to every requested exporter
type ExportOrchestrator struct {
	router  ExportRouter
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewExportOrchestrator creates a new export orchestrator
func NewExportOrchestrator(
	router ExportRouter,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ExportOrchestrator {
	return &ExportOrchestrator{
		router:  router,
		logger:  logger,
		metrics: metrics,
	}
}

// Dispatch runs every format in order. A failing export does not stop the others;
// all failures come back joined.
func (o *ExportOrchestrator) Dispatch(ctx context.Context, report *entity.Report, formats []string) error {
	var errs []error
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		exporter := o.router.GetExporter(format)
		if exporter == nil {
			o.logger.Warn("No exporter found for format", "format", format)
			errs = append(errs, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format))
			continue
		}

		start := time.Now()
		dest, err := exporter.Export(ctx, report)
		o.metrics.ObserveStage("export_"+format, start)
		if err != nil {
			o.logger.Error("Export failed",
				"format", format,
				"runID", report.RunID,
				"error", err)
			errs = append(errs, fmt.Errorf("export %s: %w", format, err))
			continue
		}

		o.logger.Info("Report exported",
			"format", format,
			"destination", dest,
			"runID", report.RunID)
	}
	return errors.Join(errs...)
}
