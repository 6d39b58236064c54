package export

import (
	"context"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
)

const FormatPostgres = "postgres"

// PostgresExporter stores the report through a ReportRepository
type PostgresExporter struct {
	repo repository.ReportRepository
}

// NewPostgresExporter creates a new database exporter
func NewPostgresExporter(repo repository.ReportRepository) *PostgresExporter {
	return &PostgresExporter{repo: repo}
}

// CanHandle implements usecase.Exporter
func (e *PostgresExporter) CanHandle(format string) bool {
	return format == FormatPostgres
}

// Export implements usecase.Exporter
func (e *PostgresExporter) Export(ctx context.Context, report *entity.Report) (string, error) {
	if err := e.repo.Save(ctx, report); err != nil {
		return "", err
	}
	return "report_runs/" + report.RunID, nil
}
