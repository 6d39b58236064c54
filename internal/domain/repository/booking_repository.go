package repository

import (
	"context"

	"flightreport/internal/domain/entity"
)

// BookingEventRepository defines the interface for reading raw booking documents.
// Implementations drop undecodable documents and report how many in the batch.
type BookingEventRepository interface {
	FindAll(ctx context.Context) (*entity.EventBatch, error)
}
