package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"
	"flightreport/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RestrictToOrigins keeps bookings whose origin is an airport of homeCountry
func RestrictToOrigins(bookings []entity.Booking, airports []entity.Airport, homeCountry string) []entity.Booking {
	home := make(map[string]struct{})
	for _, a := range airports {
		if a.Country == homeCountry {
			home[a.IATA] = struct{}{}
		}
	}

	out := make([]entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := home[b.Origin]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Enrich joins each booking to its destination airport. Bookings whose destination
// is unknown are left out. Without a departure the season stays empty; without a
// departure or a destination offset the local time and weekday stay empty.
func Enrich(bookings []entity.Booking, airports []entity.Airport) []entity.EnrichedBooking {
	idx := entity.IndexByIATA(airports)

	out := make([]entity.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		dest, ok := idx[b.Destination]
		if !ok {
			continue
		}
		e := entity.EnrichedBooking{
			Booking:            b,
			DestinationAirport: dest,
		}
		if b.DepartureDate != nil {
			e.Season = entity.SeasonOf(b.DepartureDate.UTC().Month())
			if dest.TimezoneOffset != nil {
				local := utils.ShiftHours(*b.DepartureDate, *dest.TimezoneOffset)
				e.LocalDeparture = &local
				e.DayOfWeek = local.Weekday().String()
			}
		}
		out = append(out, e)
	}
	return out
}

type groupKey struct {
	country string
	season  string
	day     string
}

type groupAcc struct {
	count  int
	sum    int
	ages   int
	min    int
	max    int
	hasAge bool
}

// Aggregate groups enriched bookings by destination country, season and weekday.
// Rows are ordered by passenger count descending, then by the group key ascending,
// so groups with an unknown season or weekday sort first among equal counts.
func Aggregate(enriched []entity.EnrichedBooking) []entity.AggregateRow {
	groups := make(map[groupKey]*groupAcc)
	for _, e := range enriched {
		k := groupKey{country: e.DestinationAirport.Country, season: e.Season, day: e.DayOfWeek}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.count++
		if e.Age == nil {
			continue
		}
		age := *e.Age
		acc.sum += age
		acc.ages++
		if !acc.hasAge || age < acc.min {
			acc.min = age
		}
		if !acc.hasAge || age > acc.max {
			acc.max = age
		}
		acc.hasAge = true
	}

	rows := make([]entity.AggregateRow, 0, len(groups))
	for k, acc := range groups {
		row := entity.AggregateRow{
			DestinationCountry: k.country,
			Season:             k.season,
			DayOfWeek:          k.day,
			NumberOfPassengers: acc.count,
		}
		if acc.hasAge {
			avg := utils.RoundHalfUp(float64(acc.sum)/float64(acc.ages), 1)
			youngest, oldest := acc.min, acc.max
			row.AverageAge = &avg
			row.YoungestAge = &youngest
			row.OldestAge = &oldest
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.NumberOfPassengers != b.NumberOfPassengers {
			return a.NumberOfPassengers > b.NumberOfPassengers
		}
		if a.DestinationCountry != b.DestinationCountry {
			return a.DestinationCountry < b.DestinationCountry
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.DayOfWeek < b.DayOfWeek
	})
	return rows
}

// ReportProcessor produces the popularity report from its two sources
type ReportProcessor struct {
	airportRepo repository.AirportRepository
	bookingRepo repository.BookingEventRepository
	homeCountry string
	logger      logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(
	airportRepo repository.AirportRepository,
	bookingRepo repository.BookingEventRepository,
	homeCountry string,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ReportProcessor {
	return &ReportProcessor{
		airportRepo: airportRepo,
		bookingRepo: bookingRepo,
		homeCountry: homeCountry,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// ProduceReport runs the whole pipeline for the given date range. It returns either
// a complete report or an error, never a partial result.
func (p *ReportProcessor) ProduceReport(ctx context.Context, r entity.DateRange) (*entity.Report, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	p.logger.Info("Starting report", "home_country", p.homeCountry,
		"start", formatBound(r.Start), "end", formatBound(r.End))

	var (
		airports []entity.Airport
		bookings []entity.Booking
		stats    entity.LoadStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer p.metrics.ObserveStage("load_airports", time.Now())
		a, err := p.airportRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("load airports: %w", err)
		}
		airports = a
		return nil
	})
	g.Go(func() error {
		defer p.metrics.ObserveStage("load_bookings", time.Now())
		b, s, err := LoadBookings(gctx, p.bookingRepo, r)
		if err != nil {
			return err
		}
		bookings, stats = b, s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Airports = len(airports)
	p.metrics.Dropped(metrics.ReasonMalformed, stats.MalformedDepartures)
	p.metrics.Dropped(metrics.ReasonNotConfirmed, stats.NotConfirmed)
	p.metrics.Dropped(metrics.ReasonOutOfRange, stats.OutOfRange)
	p.metrics.Dropped(metrics.ReasonOtherAirline, stats.OtherAirline)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	bookings = RestrictToOrigins(bookings, airports, p.homeCountry)
	stats.FromHomeCountry = len(bookings)
	p.metrics.Dropped(metrics.ReasonForeignOrigin, stats.Filtered-stats.FromHomeCountry)
	p.metrics.ObserveStage("restrict_origins", start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	enriched := Enrich(bookings, airports)
	stats.Enriched = len(enriched)
	stats.UnmatchedBookings = stats.FromHomeCountry - stats.Enriched
	p.metrics.Dropped(metrics.ReasonNoDestinationApt, stats.UnmatchedBookings)
	p.metrics.ObserveStage("enrich", start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	rows := Aggregate(enriched)
	p.metrics.ObserveStage("aggregate", start)
	p.metrics.ReportRows.Set(float64(len(rows)))

	p.logger.Info("Report produced",
		"rows", len(rows),
		"events", stats.Events,
		"bookings", stats.Flattened,
		"filtered", stats.Filtered,
		"from_home_country", stats.FromHomeCountry,
		"enriched", stats.Enriched)

	return &entity.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: p.now().UTC(),
		HomeCountry: p.homeCountry,
		Range:       r,
		Rows:        rows,
		Stats:       stats,
	}, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(utils.DATE_LAYOUT)
}
