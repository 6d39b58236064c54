package export

import (
	"context"
	"fmt"
	"os"

	"flightreport/internal/domain/entity"
	"flightreport/pkg/logger"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

const FormatParquet = "parquet"

var reportSchema = arrow.NewSchema([]arrow.Field{
	{Name: "destination_country", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "season", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "day_of_week", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "number_of_passengers", Type: arrow.PrimitiveTypes.Int64},
	{Name: "average_age", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "youngest_age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: "oldest_age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
}, nil)

// ParquetExporter writes the report to <dir>/output.parquet
type ParquetExporter struct {
	dir    string
	mem    memory.Allocator
	logger logger.Logger
}

// NewParquetExporter creates a new Parquet exporter
func NewParquetExporter(dir string, logger logger.Logger) *ParquetExporter {
	return &ParquetExporter{dir: dir, mem: memory.NewGoAllocator(), logger: logger}
}

// CanHandle implements usecase.Exporter
func (e *ParquetExporter) CanHandle(format string) bool {
	return format == FormatParquet
}

// Export implements usecase.Exporter
func (e *ParquetExporter) Export(ctx context.Context, report *entity.Report) (string, error) {
	path, err := outputFile(e.dir, "output.parquet")
	if err != nil {
		return "", err
	}

	rec := e.buildRecord(report.Rows)
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create parquet: %w", err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	fw, err := pqarrow.NewFileWriter(reportSchema, f, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return "", fmt.Errorf("open parquet writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return "", fmt.Errorf("write parquet: %w", err)
	}
	if err := fw.AppendKeyValueMetadata("run_id", report.RunID); err != nil {
		fw.Close()
		return "", err
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("close parquet: %w", err)
	}

	e.logger.Debug("Parquet written", "path", path, "rows", rec.NumRows())
	return path, nil
}

func (e *ParquetExporter) buildRecord(rows []entity.AggregateRow) arrow.Record {
	b := array.NewRecordBuilder(e.mem, reportSchema)
	defer b.Release()

	country := b.Field(0).(*array.StringBuilder)
	season := b.Field(1).(*array.StringBuilder)
	day := b.Field(2).(*array.StringBuilder)
	count := b.Field(3).(*array.Int64Builder)
	avg := b.Field(4).(*array.Float64Builder)
	youngest := b.Field(5).(*array.Int64Builder)
	oldest := b.Field(6).(*array.Int64Builder)

	for _, row := range rows {
		appendOptionalString(country, row.DestinationCountry)
		appendOptionalString(season, row.Season)
		appendOptionalString(day, row.DayOfWeek)
		count.Append(int64(row.NumberOfPassengers))
		if row.AverageAge != nil {
			avg.Append(*row.AverageAge)
		} else {
			avg.AppendNull()
		}
		appendOptionalInt(youngest, row.YoungestAge)
		appendOptionalInt(oldest, row.OldestAge)
	}
	return b.NewRecord()
}

func appendOptionalInt(b *array.Int64Builder, v *int) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.Append(int64(*v))
}

// Empty group keys come from airports or bookings with unknown values
func appendOptionalString(b *array.StringBuilder, v string) {
	if v == "" {
		b.AppendNull()
		return
	}
	b.Append(v)
}
