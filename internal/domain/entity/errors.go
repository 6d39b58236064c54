package entity

import "errors"

// ErrInvalidDateRange is returned when the start date falls after the end date.
// It is a usage error and is reported before any data is read.
var ErrInvalidDateRange = errors.New("start date must be before end date")

// ErrMalformedRecord marks a single source record that could not be parsed.
// Loaders drop such records instead of failing the run.
var ErrMalformedRecord = errors.New("malformed record")

// ErrUnsupportedFormat is returned when no exporter handles a requested output format.
var ErrUnsupportedFormat = errors.New("unsupported export format")
