package usecase

import (
	"context"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type stubAirportRepo struct {
	airports []entity.Airport
	err      error
	calls    int
}

func (s *stubAirportRepo) FindAll(ctx context.Context) ([]entity.Airport, error) {
	s.calls++
	return s.airports, s.err
}

type stubBookingRepo struct {
	batch *entity.EventBatch
	err   error
	calls int
}

func (s *stubBookingRepo) FindAll(ctx context.Context) (*entity.EventBatch, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.batch, nil
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func ts(s string) entity.DepartureTime {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return entity.DepartureTime{Time: t.UTC(), Valid: true}
}

func age(v int) entity.Age {
	return entity.Age{Value: v, Valid: true}
}

func intp(v int) *int { return &v }

func hours(v float64) *float64 { return &v }

func at(s string) *time.Time {
	t := ts(s).Time
	return &t
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

type product struct {
	status, airline, origin, dest, departure string
}

func event(products []product, ages ...*int) entity.BookingEvent {
	var ev entity.BookingEvent
	rec := &ev.Event.DataElement.TravelRecord
	for _, p := range products {
		var dep entity.DepartureTime
		if p.departure != "" {
			dep = ts(p.departure)
		}
		rec.ProductsList = append(rec.ProductsList, entity.Product{
			BookingStatus: p.status,
			Flight: entity.Flight{
				OperatingAirline:   p.airline,
				OriginAirport:      p.origin,
				DestinationAirport: p.dest,
				DepartureDate:      dep,
			},
		})
	}
	for _, a := range ages {
		var pa entity.Passenger
		if a != nil {
			pa.Age = age(*a)
		}
		rec.PassengersList = append(rec.PassengersList, pa)
	}
	return ev
}

var testAirports = []entity.Airport{
	{ID: 580, Name: "Schiphol", City: "Amsterdam", Country: "Netherlands", IATA: "AMS", TimezoneOffset: hours(1)},
	{ID: 585, Name: "Rotterdam The Hague", City: "Rotterdam", Country: "Netherlands", IATA: "RTM", TimezoneOffset: hours(1)},
	{ID: 3797, Name: "John F Kennedy Intl", City: "New York", Country: "United States", IATA: "JFK", TimezoneOffset: hours(-5)},
	{ID: 2997, Name: "Chhatrapati Shivaji Intl", City: "Mumbai", Country: "India", IATA: "BOM", TimezoneOffset: hours(5.5)},
	{ID: 1382, Name: "Charles De Gaulle", City: "Paris", Country: "France", IATA: "CDG", TimezoneOffset: hours(1)},
}
