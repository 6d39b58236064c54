package export

import (
	"context"
	"fmt"
	"os"

	"flightreport/internal/domain/entity"
	"flightreport/pkg/logger"
)

const FormatCSV = "csv"

// CSVExporter writes the report to <dir>/output.csv
type CSVExporter struct {
	dir    string
	logger logger.Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(dir string, logger logger.Logger) *CSVExporter {
	return &CSVExporter{dir: dir, logger: logger}
}

// CanHandle implements usecase.Exporter
func (e *CSVExporter) CanHandle(format string) bool {
	return format == FormatCSV
}

// Export implements usecase.Exporter
func (e *CSVExporter) Export(ctx context.Context, report *entity.Report) (string, error) {
	path, err := outputFile(e.dir, "output.csv")
	if err != nil {
		return "", err
	}

	df := reportFrame(report.Rows)
	if df.Err != nil {
		return "", fmt.Errorf("build report frame: %w", df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}

	e.logger.Debug("CSV written", "path", path, "rows", df.Nrow())
	return path, nil
}
