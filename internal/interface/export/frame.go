package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"flightreport/internal/domain/entity"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names shared by every tabular output
var reportColumns = []string{
	"destination_country",
	"season",
	"day_of_week",
	"number_of_passengers",
	"average_age",
	"youngest_age",
	"oldest_age",
}

// reportRecords renders rows as text. Missing statistics become empty cells.
func reportRecords(rows []entity.AggregateRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.DestinationCountry,
			row.Season,
			row.DayOfWeek,
			strconv.Itoa(row.NumberOfPassengers),
			formatFloat(row.AverageAge),
			formatInt(row.YoungestAge),
			formatInt(row.OldestAge),
		})
	}
	return records
}

// reportFrame builds a string DataFrame with one row per aggregate line
func reportFrame(rows []entity.AggregateRow) dataframe.DataFrame {
	records := reportRecords(rows)
	if len(records) == 0 {
		cols := make([]series.Series, len(reportColumns))
		for i, name := range reportColumns {
			cols[i] = series.New([]string{}, series.String, name)
		}
		return dataframe.New(cols...)
	}
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(false),
		dataframe.Names(reportColumns...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// outputFile makes sure dir exists and returns the path of name inside it
func outputFile(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
