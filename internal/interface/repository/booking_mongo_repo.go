package repository

import (
	"context"
	"fmt"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepository implements BookingEventRepository over a MongoDB collection
type MongoBookingRepository struct {
	collection *mongo.Collection
	batchSize  int32
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewMongoBookingRepository creates a new booking event repository
func NewMongoBookingRepository(db *mongo.Database, collection string, batchSize int, log logger.Logger, m *metrics.Metrics) repository.BookingEventRepository {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &MongoBookingRepository{
		collection: db.Collection(collection),
		batchSize:  int32(batchSize),
		logger:     log.With("source", "bookings_mongo", "collection", collection),
		metrics:    m,
	}
}

// FindAll decodes every document of the collection. Documents that do not decode
// are skipped and counted.
func (r *MongoBookingRepository) FindAll(ctx context.Context) (*entity.EventBatch, error) {
	opts := options.Find().
		SetBatchSize(r.batchSize).
		SetProjection(bson.M{"event.DataElement.travelrecord": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find booking events: %w", err)
	}
	defer cursor.Close(ctx)

	batch, err := drainCursor(ctx, cursor, r.logger)
	if err != nil {
		return nil, err
	}

	r.metrics.Loaded("bookings_mongo", len(batch.Events))
	r.metrics.Dropped(metrics.ReasonMalformed, batch.Malformed)

	r.logger.Info("Loaded booking events",
		"events", len(batch.Events),
		"malformed", batch.Malformed)

	return batch, nil
}

// drainCursor decodes every remaining document, counting the ones that do not decode
func drainCursor(ctx context.Context, cursor *mongo.Cursor, log logger.Logger) (*entity.EventBatch, error) {
	batch := &entity.EventBatch{}
	for cursor.Next(ctx) {
		var event entity.BookingEvent
		if err := cursor.Decode(&event); err != nil {
			log.Debug("Skipping malformed booking document",
				"id", cursor.Current.Lookup("_id").String(),
				"error", err)
			batch.Malformed++
			continue
		}
		batch.Events = append(batch.Events, event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking events: %w", err)
	}
	return batch, nil
}
