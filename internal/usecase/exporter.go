package usecase

import (
	"context"

	"flightreport/internal/domain/entity"
)

// Exporter defines the interface for report output formats
type Exporter interface {
	// CanHandle determines if this exporter writes the given format
	CanHandle(format string) bool

	// Export writes the report and returns where it went
	Export(ctx context.Context, report *entity.Report) (string, error)
}

// ExportRouter routes each requested format to the exporter that handles it
type ExportRouter interface {
	// Register registers an exporter
	Register(exporter Exporter)

	// GetExporter returns the exporter for a format, or nil
	GetExporter(format string) Exporter
}
