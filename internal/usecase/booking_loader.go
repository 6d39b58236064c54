package usecase

import (
	"context"
	"fmt"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
)

// FlattenEvent explodes one event into a booking per (product, passenger) pair.
// Products and passengers are siblings, so every product is paired with every
// passenger of the same event, product-major.
func FlattenEvent(event entity.BookingEvent) []entity.Booking {
	record := event.Event.DataElement.TravelRecord
	if len(record.ProductsList) == 0 || len(record.PassengersList) == 0 {
		return nil
	}

	bookings := make([]entity.Booking, 0, len(record.ProductsList)*len(record.PassengersList))
	for _, product := range record.ProductsList {
		var departure *time.Time
		if product.Flight.DepartureDate.Valid {
			t := product.Flight.DepartureDate.Time
			departure = &t
		}
		for _, passenger := range record.PassengersList {
			bookings = append(bookings, entity.Booking{
				Airline:       product.Flight.OperatingAirline,
				DepartureDate: departure,
				Origin:        product.Flight.OriginAirport,
				Destination:   product.Flight.DestinationAirport,
				Status:        product.BookingStatus,
				Age:           passenger.Age.Ptr(),
			})
		}
	}
	return bookings
}

// FilterResult is the outcome of filtering with a count per drop reason
type FilterResult struct {
	Bookings            []entity.Booking
	MalformedDepartures int
	NotConfirmed        int
	OutOfRange          int
	OtherAirline        int
}

// FilterBookings keeps confirmed KL bookings departing within the range. A booking
// without a departure only survives an unbounded range.
func FilterBookings(bookings []entity.Booking, r entity.DateRange) []entity.Booking {
	return filterBookings(bookings, r).Bookings
}

func filterBookings(bookings []entity.Booking, r entity.DateRange) FilterResult {
	res := FilterResult{Bookings: make([]entity.Booking, 0, len(bookings))}
	for _, b := range bookings {
		switch {
		case !b.HasDeparture() && r.Bounded():
			res.MalformedDepartures++
		case b.Status != entity.StatusConfirmed:
			res.NotConfirmed++
		case b.HasDeparture() && !r.Contains(*b.DepartureDate):
			res.OutOfRange++
		case b.Airline != entity.OperatingAirline:
			res.OtherAirline++
		default:
			res.Bookings = append(res.Bookings, b)
		}
	}
	return res
}

// LoadBookings reads every event from repo, flattens and filters it
func LoadBookings(ctx context.Context, repo repository.BookingEventRepository, r entity.DateRange) ([]entity.Booking, entity.LoadStats, error) {
	var stats entity.LoadStats

	batch, err := repo.FindAll(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("load booking events: %w", err)
	}
	stats.Events = len(batch.Events)
	stats.MalformedEvents = batch.Malformed

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	var flat []entity.Booking
	for _, event := range batch.Events {
		flat = append(flat, FlattenEvent(event)...)
	}
	stats.Flattened = len(flat)

	res := filterBookings(flat, r)
	stats.MalformedDepartures = res.MalformedDepartures
	stats.NotConfirmed = res.NotConfirmed
	stats.OutOfRange = res.OutOfRange
	stats.OtherAirline = res.OtherAirline
	stats.Filtered = len(res.Bookings)

	return res.Bookings, stats, nil
}
