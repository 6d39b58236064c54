package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"flightreport/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Booking status and carrier the report is built for.
const (
	StatusConfirmed  = "CONFIRMED"
	OperatingAirline = "KL"
)

// BookingEvent is one source document as it arrives from the booking feed.
// Flights and passengers are siblings under the same travel record.
type BookingEvent struct {
	Event struct {
		DataElement struct {
			TravelRecord TravelRecord `json:"travelrecord" bson:"travelrecord"`
		} `json:"DataElement" bson:"DataElement"`
	} `json:"event" bson:"event"`
}

// TravelRecord holds the two lists that get exploded into bookings.
type TravelRecord struct {
	ProductsList   []Product   `json:"productsList" bson:"productsList"`
	PassengersList []Passenger `json:"passengersList" bson:"passengersList"`
}

// Product is a single flight leg of a travel record.
type Product struct {
	BookingStatus string `json:"bookingStatus" bson:"bookingStatus"`
	Flight        Flight `json:"flight" bson:"flight"`
}

// Flight carries the leg details used by the report.
type Flight struct {
	OperatingAirline   string        `json:"operatingAirline" bson:"operatingAirline"`
	MarketingAirline   string        `json:"marketingAirline" bson:"marketingAirline"`
	OriginAirport      string        `json:"originAirport" bson:"originAirport"`
	DestinationAirport string        `json:"destinationAirport" bson:"destinationAirport"`
	DepartureDate      DepartureTime `json:"departureDate" bson:"departureDate"`
}

// Passenger is one traveller of a travel record.
type Passenger struct {
	UCI           string `json:"uci" bson:"uci"`
	PassengerType string `json:"passengerType" bson:"passengerType"`
	Category      string `json:"category" bson:"category"`
	Age           Age    `json:"age" bson:"age"`
}

// Booking is the flat (flight, passenger) record produced by exploding an event.
type Booking struct {
	Airline       string
	DepartureDate *time.Time // nil when the source had no usable timestamp
	Origin        string
	Destination   string
	Status        string
	Age           *int
}

// HasDeparture reports whether the departure timestamp was parsed.
func (b Booking) HasDeparture() bool {
	return b.DepartureDate != nil
}

// DepartureTime is a leniently decoded timestamp. A value that cannot be parsed
// decodes without error and is left invalid, so one bad leg does not sink the event.
type DepartureTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (d *DepartureTime) UnmarshalJSON(data []byte) error {
	*d = DepartureTime{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if t, err := utils.ParseTimestamp(s); err == nil {
		d.Time, d.Valid = t, true
	}
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (d *DepartureTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*d = DepartureTime{}
	rv := bson.RawValue{Type: t, Value: data}
	if tm, ok := rv.TimeOK(); ok {
		d.Time, d.Valid = tm.UTC(), true
		return nil
	}
	if s, ok := rv.StringValueOK(); ok {
		if tm, err := utils.ParseTimestamp(s); err == nil {
			d.Time, d.Valid = tm, true
		}
	}
	return nil
}

// Age is a passenger age cast to an integer. Missing or non-numeric values are null.
type Age struct {
	Value int
	Valid bool
}

// Ptr returns nil for a null age.
func (a Age) Ptr() *int {
	if !a.Valid {
		return nil
	}
	v := a.Value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Age) UnmarshalJSON(data []byte) error {
	*a = Age{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	} else {
		s = string(data)
	}
	a.Value, a.Valid = utils.ParseIntLoose(s)
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (a *Age) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*a = Age{}
	rv := bson.RawValue{Type: t, Value: data}
	if f, ok := rv.DoubleOK(); ok {
		a.Value, a.Valid = utils.TruncateFloat(f)
		return nil
	}
	if n, ok := rv.AsInt64OK(); ok {
		a.Value, a.Valid = int(n), true
		return nil
	}
	if s, ok := rv.StringValueOK(); ok {
		a.Value, a.Valid = utils.ParseIntLoose(s)
	}
	return nil
}

// EventBatch is what a booking source yields: the decoded events plus a count of
// documents that could not be decoded and were dropped.
type EventBatch struct {
	Events    []BookingEvent
	Malformed int
}
