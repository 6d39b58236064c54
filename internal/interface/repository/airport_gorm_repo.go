package repository

import (
	"context"
	"fmt"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) *GormAirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

var (
	_ repository.AirportRepository = (*GormAirportRepository)(nil)
	_ repository.AirportWriter     = (*GormAirportRepository)(nil)
)

// Airports GORM model for database mapping. The IATA code is the key; the source id
// is kept as data.
type Airports struct {
	IATA           string   `gorm:"column:iata;primaryKey"`
	AirportID      int      `gorm:"column:airport_id"`
	Name           string   `gorm:"column:name"`
	City           string   `gorm:"column:city"`
	Country        string   `gorm:"column:country;index"`
	TimezoneOffset *float64 `gorm:"column:timezone_offset"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "airports"
}

// Migrate creates or updates the airports table
func (r *GormAirportRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Airports{})
}

// FindAll returns every airport with an IATA code
func (r *GormAirportRepository) FindAll(ctx context.Context) ([]entity.Airport, error) {
	var rows []Airports
	result := r.db.WithContext(ctx).Where("iata <> ''").Order("airport_id").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("load airports: %w", result.Error)
	}

	// Convert GORM models to domain entities
	airports := make([]entity.Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, entity.Airport{
			ID:             row.AirportID,
			Name:           row.Name,
			City:           row.City,
			Country:        row.Country,
			IATA:           row.IATA,
			TimezoneOffset: row.TimezoneOffset,
		})
	}
	return airports, nil
}

// Upsert inserts airports, replacing rows that share an IATA code
func (r *GormAirportRepository) Upsert(ctx context.Context, airports []entity.Airport) error {
	if len(airports) == 0 {
		return nil
	}

	// One row per code, the last occurrence wins
	pos := make(map[string]int, len(airports))
	rows := make([]Airports, 0, len(airports))
	for _, a := range airports {
		row := Airports{
			AirportID:      a.ID,
			Name:           a.Name,
			City:           a.City,
			Country:        a.Country,
			IATA:           a.IATA,
			TimezoneOffset: a.TimezoneOffset,
		}
		if i, ok := pos[a.IATA]; ok {
			rows[i] = row
			continue
		}
		pos[a.IATA] = len(rows)
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "iata"}},
			DoUpdates: clause.AssignmentColumns([]string{"airport_id", "name", "city", "country", "timezone_offset", "updated_at"}),
		}).
		CreateInBatches(rows, 500).Error
}
