package entity

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSeasonOf(t *testing.T) {
	want := map[time.Month]string{
		time.January:   SeasonWinter,
		time.February:  SeasonWinter,
		time.March:     SeasonSpring,
		time.April:     SeasonSpring,
		time.May:       SeasonSpring,
		time.June:      SeasonSummer,
		time.July:      SeasonSummer,
		time.August:    SeasonSummer,
		time.September: SeasonFall,
		time.October:   SeasonFall,
		time.November:  SeasonFall,
		time.December:  SeasonWinter,
	}
	for m := time.January; m <= time.December; m++ {
		if got := SeasonOf(m); got != want[m] {
			t.Errorf("SeasonOf(%s) = %q, want %q", m, got, want[m])
		}
	}
}

func TestDateRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		wantErr bool
	}{
		{"open", DateRange{}, false},
		{"start only", DateRange{Start: date(2024, 1, 1)}, false},
		{"end only", DateRange{End: date(2024, 1, 1)}, false},
		{"same day", DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 1)}, false},
		{"ordered", DateRange{Start: date(2024, 1, 1), End: date(2024, 2, 1)}, false},
		{"reversed", DateRange{Start: date(2024, 2, 1), End: date(2024, 1, 1)}, true},
	}
	for _, test := range tests {
		err := test.r.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", test.name, err, test.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("%s: error %v does not wrap ErrInvalidDateRange", test.name, err)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 10), End: date(2024, 1, 15)}

	tests := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2024, 1, 9, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 15, 23, 59, 59, 999, time.UTC), true},
		{time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), false},
	}
	for _, test := range tests {
		if got := r.Contains(test.at); got != test.want {
			t.Errorf("Contains(%s) = %v, want %v", test.at, got, test.want)
		}
	}

	if !(DateRange{}).Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("open range should contain everything")
	}
}

func TestReportTotalPassengers(t *testing.T) {
	r := &Report{Rows: []AggregateRow{{NumberOfPassengers: 3}, {NumberOfPassengers: 4}}}
	if got := r.TotalPassengers(); got != 7 {
		t.Errorf("TotalPassengers() = %d, want 7", got)
	}
}

func TestIndexByIATA(t *testing.T) {
	idx := IndexByIATA([]Airport{
		{ID: 1, IATA: "AMS", Country: "Netherlands"},
		{ID: 2, IATA: "JFK", Country: "United States"},
		{ID: 3, IATA: "AMS", Country: "Netherlands"},
	})
	if len(idx) != 2 {
		t.Fatalf("len = %d, want 2", len(idx))
	}
	if idx["AMS"].ID != 3 {
		t.Errorf("AMS id = %d, want the later duplicate 3", idx["AMS"].ID)
	}
}
