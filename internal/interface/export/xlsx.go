package export

import (
	"context"
	"fmt"

	"flightreport/internal/domain/entity"
	"flightreport/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"

	reportSheet = "report"
	runSheet    = "run"
)

// XLSXExporter writes the report to <dir>/output.xlsx
type XLSXExporter struct {
	dir    string
	logger logger.Logger
}

// NewXLSXExporter creates a new Excel exporter
func NewXLSXExporter(dir string, logger logger.Logger) *XLSXExporter {
	return &XLSXExporter{dir: dir, logger: logger}
}

// CanHandle implements usecase.Exporter
func (e *XLSXExporter) CanHandle(format string) bool {
	return format == FormatXLSX
}

// Export implements usecase.Exporter
func (e *XLSXExporter) Export(ctx context.Context, report *entity.Report) (string, error) {
	path, err := outputFile(e.dir, "output.xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return "", err
	}

	header := make([]interface{}, len(reportColumns))
	for i, name := range reportColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, row := range report.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.DestinationCountry,
			row.Season,
			row.DayOfWeek,
			row.NumberOfPassengers,
			cellFloat(row.AverageAge),
			cellInt(row.YoungestAge),
			cellInt(row.OldestAge),
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 28); err != nil {
		return "", err
	}

	if err := writeRunSheet(f, report); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	e.logger.Debug("Workbook written", "path", path, "rows", len(report.Rows))
	return path, nil
}

func writeRunSheet(f *excelize.File, report *entity.Report) error {
	if _, err := f.NewSheet(runSheet); err != nil {
		return err
	}

	start, end := "", ""
	if report.Range.Start != nil {
		start = report.Range.Start.Format("2006-01-02")
	}
	if report.Range.End != nil {
		end = report.Range.End.Format("2006-01-02")
	}

	lines := [][]interface{}{
		{"run_id", report.RunID},
		{"generated_at", report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")},
		{"home_country", report.HomeCountry},
		{"start_date", start},
		{"end_date", end},
		{"events", report.Stats.Events},
		{"bookings", report.Stats.Flattened},
		{"filtered", report.Stats.Filtered},
		{"from_home_country", report.Stats.FromHomeCountry},
		{"enriched", report.Stats.Enriched},
		{"passengers", report.TotalPassengers()},
	}
	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(runSheet, cell, &line); err != nil {
			return fmt.Errorf("write run sheet: %w", err)
		}
	}
	return nil
}

func cellFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func cellInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
