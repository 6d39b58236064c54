package router

import (
	"fmt"

	"flightreport/internal/usecase"
	"flightreport/pkg/logger"
)

// FormatRouter routes report formats to the exporters that write them
type FormatRouter struct {
	exporters []usecase.Exporter
	logger    logger.Logger
}

// NewFormatRouter creates a new format router
func NewFormatRouter(logger logger.Logger) *FormatRouter {
	return &FormatRouter{
		exporters: make([]usecase.Exporter, 0),
		logger:    logger,
	}
}

// Register registers an exporter
func (r *FormatRouter) Register(exporter usecase.Exporter) {
	r.exporters = append(r.exporters, exporter)
	r.logger.Debug("Registered exporter", "exporter", fmt.Sprintf("%T", exporter))
}

// GetExporter returns the first exporter that handles format
func (r *FormatRouter) GetExporter(format string) usecase.Exporter {
	for _, exporter := range r.exporters {
		if exporter.CanHandle(format) {
			return exporter
		}
	}
	return nil
}
