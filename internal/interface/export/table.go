package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"flightreport/internal/domain/entity"
)

const FormatTable = "table"

// TableExporter prints the report as an aligned table
type TableExporter struct {
	out io.Writer
}

// NewTableExporter creates a table exporter writing to out, or stdout when nil
func NewTableExporter(out io.Writer) *TableExporter {
	if out == nil {
		out = os.Stdout
	}
	return &TableExporter{out: out}
}

// CanHandle implements usecase.Exporter
func (e *TableExporter) CanHandle(format string) bool {
	return format == FormatTable
}

// Export implements usecase.Exporter
func (e *TableExporter) Export(ctx context.Context, report *entity.Report) (string, error) {
	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Popular destinations from %s (%s)\n", report.HomeCountry, describeRange(report.Range))
	fmt.Fprintln(tw, strings.Join(reportColumns, "\t"))
	for _, rec := range reportRecords(report.Rows) {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	fmt.Fprintf(tw, "\nrows: %d\tpassengers: %d\n", len(report.Rows), report.TotalPassengers())

	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("write table: %w", err)
	}
	return "stdout", nil
}

func describeRange(r entity.DateRange) string {
	start, end := "earliest", "latest"
	if r.Start != nil {
		start = r.Start.Format("2006-01-02")
	}
	if r.End != nil {
		end = r.End.Format("2006-01-02")
	}
	return start + " to " + end
}
