package repository

import (
	"context"

	"flightreport/internal/domain/entity"
)

// AirportRepository defines the interface for loading airport reference data
type AirportRepository interface {
	FindAll(ctx context.Context) ([]entity.Airport, error)
}

// AirportWriter is implemented by reference stores that can be seeded
type AirportWriter interface {
	Upsert(ctx context.Context, airports []entity.Airport) error
}
