package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"
	"flightreport/pkg/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names given to the headerless airports file
const (
	colID       = "id"
	colName     = "name"
	colCity     = "city"
	colCountry  = "country"
	colIATA     = "iata"
	colTZOffset = "timezone_offset"
)

// Positions of the kept columns in the raw file
var airportColumns = []int{0, 1, 2, 3, 4, 9}

// CSVAirportRepository reads airports from an OpenFlights style CSV dump
type CSVAirportRepository struct {
	path    string
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewCSVAirportRepository creates a new CSV airport repository
func NewCSVAirportRepository(path string, log logger.Logger, m *metrics.Metrics) repository.AirportRepository {
	return &CSVAirportRepository{
		path:    path,
		logger:  log.With("source", "airports_csv", "path", path),
		metrics: m,
	}
}

// AirportParseResult is the outcome of parsing an airports file
type AirportParseResult struct {
	Airports    []entity.Airport
	Malformed     int
	MissingIATA   int
	UnknownOffset int
}

// FindAll loads every airport with a usable IATA code
func (r *CSVAirportRepository) FindAll(ctx context.Context) ([]entity.Airport, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open airports file: %w", err)
	}
	defer f.Close()

	res, err := ParseAirports(ctx, f, r.logger)
	if err != nil {
		return nil, err
	}

	r.metrics.Loaded("airports_csv", len(res.Airports))
	r.metrics.Dropped(metrics.ReasonMalformed, res.Malformed)
	r.metrics.Dropped(metrics.ReasonMissingIATA, res.MissingIATA)

	r.logger.Info("Loaded airports",
		"count", len(res.Airports),
		"malformed", res.Malformed,
		"missing_iata", res.MissingIATA,
		"unknown_offset", res.UnknownOffset)

	return res.Airports, nil
}

// ParseAirports reads headerless airport rows. Rows without an IATA code are filtered
// out and rows whose id is not numeric are counted as malformed and skipped. Missing
// trailing columns read as null, and a null or non-numeric offset leaves the airport
// with an unknown offset.
func ParseAirports(ctx context.Context, rdr io.Reader, log logger.Logger) (*AirportParseResult, error) {
	reader := csv.NewReader(rdr)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	res := &AirportParseResult{}
	var rows [][]string
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				log.Debug("Skipping unreadable airport row", "line", line, "error", err)
				res.Malformed++
				continue
			}
			return nil, fmt.Errorf("read airports: %w", err)
		}
		row := make([]string, len(airportColumns))
		for i, c := range airportColumns {
			if c < len(record) {
				row[i] = strings.TrimSpace(record[c])
			}
		}
		rows = append(rows, row)

		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	if len(rows) == 0 {
		return res, nil
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(false),
		dataframe.Names(colID, colName, colCity, colCountry, colIATA, colTZOffset),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{utils.NullMarker, ""}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("build airports frame: %w", df.Err)
	}

	total := df.Nrow()
	df = df.Filter(dataframe.F{
		Colname:    colIATA,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return !el.IsNA()
		},
	})
	if df.Err != nil {
		return nil, fmt.Errorf("filter airports: %w", df.Err)
	}
	res.MissingIATA = total - df.Nrow()

	ids := df.Col(colID).Records()
	names := df.Col(colName).Records()
	cities := df.Col(colCity).Records()
	countries := df.Col(colCountry).Records()
	codes := df.Col(colIATA).Records()
	offsets := df.Col(colTZOffset).Records()

	res.Airports = make([]entity.Airport, 0, len(ids))
	for i := range ids {
		id, ok := utils.ParseIntLoose(ids[i])
		if !ok {
			log.Debug("Skipping airport with bad id", "iata", codes[i], "id", ids[i])
			res.Malformed++
			continue
		}
		var offset *float64
		if v, ok := utils.ParseFloatLoose(offsets[i]); ok {
			offset = &v
		} else {
			res.UnknownOffset++
		}

		res.Airports = append(res.Airports, entity.Airport{
			ID:             id,
			Name:           nullable(names[i]),
			City:           nullable(cities[i]),
			Country:        nullable(countries[i]),
			IATA:           codes[i],
			TimezoneOffset: offset,
		})
	}

	return res, nil
}

// NaN cells come back from the frame as the literal "NaN"
func nullable(s string) string {
	if s == "NaN" {
		return ""
	}
	return s
}
