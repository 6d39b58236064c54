package utils

// Layouts accepted for dates and timestamps coming from booking documents and CLI flags.
const (
	DATE_LAYOUT     = "2006-01-02"
	DATETIME_LAYOUT = "2006-01-02T15:04:05"
	SPACED_LAYOUT   = "2006-01-02 15:04:05"
)

// NullMarker is how OpenFlights dumps spell a missing value.
const NullMarker = `\N`
