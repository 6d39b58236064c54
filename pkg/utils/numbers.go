package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds v to the given number of decimal places, halves away from zero.
func RoundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ParseIntLoose converts numeric text to an int the way an integer cast would:
// fractional values are truncated, anything non-numeric or outside the int range
// is rejected.
func ParseIntLoose(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == NullMarker {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return TruncateFloat(f)
}

// TruncateFloat drops the fraction of f. NaN and values outside the int range are rejected.
func TruncateFloat(f float64) (int, bool) {
	if math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// ParseFloatLoose parses a numeric column, rejecting the dump's null marker.
func ParseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == NullMarker {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
