package utils

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-06-10T10:00:00Z", want, false},
		{"2024-06-10T12:00:00+02:00", want, false},
		{"2024-06-10T10:00:00.000Z", want, false},
		{"2024-06-10T10:00:00", want, false},
		{"2024-06-10 10:00:00", want, false},
		{" 2024-06-10T10:00:00Z ", want, false},
		{"2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{`\N`, time.Time{}, true},
		{"10/06/2024", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}

	for _, test := range tests {
		got, err := ParseTimestamp(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseTimestamp(%q) err = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if !got.Equal(test.want) {
			t.Errorf("ParseTimestamp(%q) = %s, want %s", test.in, got, test.want)
		}
		if err == nil && got.Location() != time.UTC {
			t.Errorf("ParseTimestamp(%q) location = %s, want UTC", test.in, got.Location())
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	if err != nil || got != nil {
		t.Fatalf("empty date: got %v, %v", got, err)
	}

	got, err = ParseOptionalDate("2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	for _, bad := range []string{"2024-1-15", "15-01-2024", "2024-13-01", "2024-01-15T00:00:00"} {
		if _, err := ParseOptionalDate(bad); err == nil {
			t.Errorf("ParseOptionalDate(%q): expected error", bad)
		}
	}
}

func TestShiftHours(t *testing.T) {
	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		hours float64
		want  time.Time
	}{
		{0, base},
		{-5, time.Date(2024, 6, 10, 5, 0, 0, 0, time.UTC)},
		{5.5, time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)},
		{-9.5, time.Date(2024, 6, 10, 0, 30, 0, 0, time.UTC)},
		{14, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)},
	}
	for _, test := range tests {
		if got := ShiftHours(base, test.hours); !got.Equal(test.want) {
			t.Errorf("ShiftHours(%v) = %s, want %s", test.hours, got, test.want)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{30, 30},
		{30.25, 30.3},
		{30.24, 30.2},
		{41.6666, 41.7},
		{0.05, 0.1},
	}
	for _, test := range tests {
		if got := RoundHalfUp(test.in, 1); got != test.want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestParseIntLoose(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"-3", -3, true},
		{"30.9", 30, true},
		{"1e2", 100, true},
		{"", 0, false},
		{`\N`, 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"1e30", 0, false},
		{"-1e30", 0, false},
		{"99999999999999999999", 0, false},
		{"Inf", 0, false},
	}
	for _, test := range tests {
		got, ok := ParseIntLoose(test.in)
		if ok != test.wantOK || got != test.want {
			t.Errorf("ParseIntLoose(%q) = %d, %v; want %d, %v", test.in, got, ok, test.want, test.wantOK)
		}
	}
}

func TestParseFloatLoose(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1", 1, true},
		{"-5", -5, true},
		{"5.5", 5.5, true},
		{`\N`, 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"U", 0, false},
	}
	for _, test := range tests {
		got, ok := ParseFloatLoose(test.in)
		if ok != test.wantOK || got != test.want {
			t.Errorf("ParseFloatLoose(%q) = %v, %v; want %v, %v", test.in, got, ok, test.want, test.wantOK)
		}
	}
}
