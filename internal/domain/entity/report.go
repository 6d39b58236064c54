package entity

import (
	"fmt"
	"time"
)

// Seasons, by calendar month of the UTC departure.
const (
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
)

// SeasonOf maps a month to its meteorological season. Every valid month has exactly one.
func SeasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonFall
	}
	return ""
}

// EnrichedBooking is a booking joined to its destination airport.
type EnrichedBooking struct {
	Booking
	DestinationAirport Airport
	LocalDeparture     *time.Time // nil without a departure or a destination offset
	Season             string     // from the UTC departure month, empty without a departure
	DayOfWeek          string     // from the local departure, empty when LocalDeparture is nil
}

// AggregateRow is one (country, season, weekday) line of the popularity report.
type AggregateRow struct {
	DestinationCountry string   `json:"destination_country"`
	Season             string   `json:"season"`
	DayOfWeek          string   `json:"day_of_week"`
	NumberOfPassengers int      `json:"number_of_passengers"`
	AverageAge         *float64 `json:"average_age"`
	YoungestAge        *int     `json:"youngest_age"`
	OldestAge          *int     `json:"oldest_age"`
}

// DateRange bounds departures by calendar day. Both ends are optional and inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Validate rejects a range whose start falls after its end.
func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// Bounded reports whether either end of the range is set.
func (r DateRange) Bounded() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls within the range. The end bound covers its whole day.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(startOfDay(*r.Start)) {
		return false
	}
	if r.End != nil && !t.Before(startOfDay(*r.End).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LoadStats counts records through each pipeline stage.
type LoadStats struct {
	Airports            int `json:"airports"`
	Events              int `json:"events"`
	MalformedEvents     int `json:"malformed_events"`
	Flattened           int `json:"flattened"`
	NotConfirmed        int `json:"not_confirmed"`
	OutOfRange          int `json:"out_of_range"`
	OtherAirline        int `json:"other_airline"`
	Filtered            int `json:"filtered"`
	FromHomeCountry     int `json:"from_home_country"`
	Enriched            int `json:"enriched"`
	UnmatchedBookings   int `json:"unmatched_bookings"`
	MalformedDepartures int `json:"malformed_departures"`
}

// Report is the finished result of one run, handed to the exporters.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	HomeCountry string
	Range       DateRange
	Rows        []AggregateRow
	Stats       LoadStats
}

// TotalPassengers sums the passenger counts over all rows.
func (r *Report) TotalPassengers() int {
	total := 0
	for _, row := range r.Rows {
		total += row.NumberOfPassengers
	}
	return total
}
