package config

import (
	"flag"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME_COUNTRY", "")
	t.Setenv("BOOKING_SOURCE", "")
	t.Setenv("EXPORT_CSV", "")
	t.Setenv("MONGO_BATCH_SIZE", "")
	t.Setenv("AIRPORT_SOURCE", "")
	t.Setenv("NO_PRINT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HomeCountry != "Netherlands" {
		t.Errorf("HomeCountry = %q", cfg.HomeCountry)
	}
	if cfg.BookingSource != SourceFile || cfg.AirportSource != SourceCSV {
		t.Errorf("sources = %s/%s", cfg.BookingSource, cfg.AirportSource)
	}
	if cfg.CSV || cfg.NoPrint {
		t.Errorf("csv/no-print should default off")
	}
	if cfg.MongoBatchSize != 1000 {
		t.Errorf("MongoBatchSize = %d", cfg.MongoBatchSize)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOME_COUNTRY", "Belgium")
	t.Setenv("BOOKING_SOURCE", SourceMongo)
	t.Setenv("EXPORT_CSV", "true")
	t.Setenv("NO_PRINT", "1")
	t.Setenv("MONGO_BATCH_SIZE", "250")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HomeCountry != "Belgium" || cfg.BookingSource != SourceMongo {
		t.Errorf("got %s/%s", cfg.HomeCountry, cfg.BookingSource)
	}
	if !cfg.CSV || !cfg.NoPrint || cfg.MongoBatchSize != 250 {
		t.Errorf("got csv=%v noPrint=%v batch=%d", cfg.CSV, cfg.NoPrint, cfg.MongoBatchSize)
	}
}

func TestBindFlags(t *testing.T) {
	t.Setenv("START_DATE", "2024-01-01")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	args := []string{
		"--booking-path", "/data/bookings",
		"--end-date", "2024-03-31",
		"--parquet",
		"--no-print",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.BookingPath != "/data/bookings" || cfg.EndDate != "2024-03-31" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.StartDate != "2024-01-01" {
		t.Errorf("env value lost: StartDate = %q", cfg.StartDate)
	}
	if !cfg.Parquet || !cfg.NoPrint {
		t.Errorf("bool flags not applied")
	}
}

func TestExportFormats(t *testing.T) {
	tests := []struct {
		cfg  Config
		want []string
	}{
		{Config{}, []string{"table"}},
		{Config{NoPrint: true}, nil},
		{Config{CSV: true, XLSX: true}, []string{"table", "csv", "xlsx"}},
		{Config{NoPrint: true, CSV: true, Parquet: true, XLSX: true, Postgres: true}, []string{"csv", "parquet", "xlsx", "postgres"}},
	}
	for i, test := range tests {
		if got := test.cfg.ExportFormats(); !reflect.DeepEqual(got, test.want) {
			t.Errorf("case %d: got %v, want %v", i, got, test.want)
		}
	}
}
