package entity

// Airport is one row of the airport reference data. IATA is the join key for bookings.
type Airport struct {
	ID             int
	Name           string
	City           string
	Country        string
	IATA           string
	TimezoneOffset *float64 // hours from UTC, may be fractional (e.g. 5.5); nil when unknown
}

// AirportIndex maps IATA codes to airports.
type AirportIndex map[string]Airport

// IndexByIATA builds a lookup table. A later duplicate code replaces an earlier one.
func IndexByIATA(airports []Airport) AirportIndex {
	idx := make(AirportIndex, len(airports))
	for _, a := range airports {
		idx[a.IATA] = a
	}
	return idx
}
