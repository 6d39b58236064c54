package repository

import (
	"context"
	"fmt"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"

	"gorm.io/gorm"
)

// GormReportRepository implements the ReportRepository interface
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{
		db: db,
	}
}

var _ repository.ReportRepository = (*GormReportRepository)(nil)

// ReportRuns GORM model, one per produced report
type ReportRuns struct {
	ID          string     `gorm:"column:id;primaryKey"`
	GeneratedAt time.Time  `gorm:"column:generated_at"`
	HomeCountry string     `gorm:"column:home_country"`
	StartDate   *time.Time `gorm:"column:start_date;type:date"`
	EndDate     *time.Time `gorm:"column:end_date;type:date"`
	Passengers  int        `gorm:"column:passengers"`
	CreatedAt   time.Time
	Rows        []ReportRows `gorm:"foreignKey:RunID"`
}

// TableName overrides the default table name
func (ReportRuns) TableName() string {
	return "report_runs"
}

// ReportRows GORM model, one per aggregate line
type ReportRows struct {
	ID                 uint     `gorm:"primaryKey"`
	RunID              string   `gorm:"column:run_id;index"`
	Position           int      `gorm:"column:position"`
	DestinationCountry string   `gorm:"column:destination_country"`
	Season             string   `gorm:"column:season"`
	DayOfWeek          string   `gorm:"column:day_of_week"`
	NumberOfPassengers int      `gorm:"column:number_of_passengers"`
	AverageAge         *float64 `gorm:"column:average_age"`
	YoungestAge        *int     `gorm:"column:youngest_age"`
	OldestAge          *int     `gorm:"column:oldest_age"`
}

// TableName overrides the default table name
func (ReportRows) TableName() string {
	return "report_rows"
}

// Migrate creates or updates the report tables
func (r *GormReportRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&ReportRuns{}, &ReportRows{})
}

// Save stores the run and all of its rows in one transaction
func (r *GormReportRepository) Save(ctx context.Context, report *entity.Report) error {
	run := ReportRuns{
		ID:          report.RunID,
		GeneratedAt: report.GeneratedAt,
		HomeCountry: report.HomeCountry,
		StartDate:   report.Range.Start,
		EndDate:     report.Range.End,
		Passengers:  report.TotalPassengers(),
	}

	rows := make([]ReportRows, 0, len(report.Rows))
	for i, row := range report.Rows {
		rows = append(rows, ReportRows{
			RunID:              report.RunID,
			Position:           i + 1,
			DestinationCountry: row.DestinationCountry,
			Season:             row.Season,
			DayOfWeek:          row.DayOfWeek,
			NumberOfPassengers: row.NumberOfPassengers,
			AverageAge:         row.AverageAge,
			YoungestAge:        row.YoungestAge,
			OldestAge:          row.OldestAge,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("save report run: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("save report rows: %w", err)
		}
		return nil
	})
}
