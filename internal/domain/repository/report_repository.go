package repository

import (
	"context"

	"flightreport/internal/domain/entity"
)

// ReportRepository defines the interface for persisting finished reports
type ReportRepository interface {
	Save(ctx context.Context, report *entity.Report) error
}
