// internal/infrastructure/config/config.go
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Booking and reference source kinds
const (
	SourceFile     = "file"
	SourceMongo    = "mongo"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Inputs
	BookingSource string
	BookingPath   string
	AirportSource string
	AirportPath   string
	StartDate     string
	EndDate       string
	HomeCountry   string

	// Outputs
	OutputPath string
	NoPrint    bool
	CSV        bool
	Parquet    bool
	XLSX       bool
	Postgres   bool

	// MongoDB
	MongoURI               string
	MongoDB                string
	MongoUser              string
	MongoPassword          string
	MongoBookingCollection string
	MongoBatchSize         int

	// PostgreSQL
	PostgresURI string

	// Metrics
	MetricsNamespace string
	PushgatewayURL   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		BookingSource: getEnv("BOOKING_SOURCE", SourceFile),
		BookingPath:   getEnv("BOOKING_PATH", "data/bookings/booking.json"),
		AirportSource: getEnv("AIRPORT_SOURCE", SourceCSV),
		AirportPath:   getEnv("AIRPORT_PATH", "data/airports/airports.dat"),
		StartDate:     getEnv("START_DATE", ""),
		EndDate:       getEnv("END_DATE", ""),
		HomeCountry:   getEnv("HOME_COUNTRY", "Netherlands"),

		OutputPath: getEnv("OUTPUT_PATH", "data/output"),
		NoPrint:    getEnvAsBool("NO_PRINT", false),
		CSV:        getEnvAsBool("EXPORT_CSV", false),
		Parquet:    getEnvAsBool("EXPORT_PARQUET", false),
		XLSX:       getEnvAsBool("EXPORT_XLSX", false),
		Postgres:   getEnvAsBool("EXPORT_POSTGRES", false),

		MongoURI:               getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:                getEnv("MONGO_DB", "bookings"),
		MongoUser:              getEnv("MONGO_USER", ""),
		MongoPassword:          getEnv("MONGO_PASSWORD", ""),
		MongoBookingCollection: getEnv("MONGO_BOOKING_COLLECTION", "booking_events"),
		MongoBatchSize:         getEnvAsInt("MONGO_BATCH_SIZE", 1000),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightreport"),
		PushgatewayURL:   getEnv("PUSHGATEWAY_URL", ""),
	}

	return config, nil
}

// BindFlags registers command line flags that override the environment values
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.BookingPath, "booking-path", c.BookingPath, "Path to booking data JSON file or directory")
	fs.StringVar(&c.AirportPath, "airport-path", c.AirportPath, "Path to airport data CSV file")
	fs.StringVar(&c.BookingSource, "booking-source", c.BookingSource, "Where bookings come from: file or mongo")
	fs.StringVar(&c.AirportSource, "airport-source", c.AirportSource, "Where airports come from: csv or postgres")
	fs.StringVar(&c.StartDate, "start-date", c.StartDate, "Start date (YYYY-MM-DD) - optional, defaults to earliest date in data")
	fs.StringVar(&c.EndDate, "end-date", c.EndDate, "End date (YYYY-MM-DD) - optional, defaults to latest date in data")
	fs.StringVar(&c.HomeCountry, "home-country", c.HomeCountry, "Country whose airports count as departures")
	fs.StringVar(&c.OutputPath, "output-path", c.OutputPath, "Directory for exported files")
	fs.BoolVar(&c.NoPrint, "no-print", c.NoPrint, "Do not print results in terminal")
	fs.BoolVar(&c.CSV, "csv", c.CSV, "Save results as CSV")
	fs.BoolVar(&c.Parquet, "parquet", c.Parquet, "Save results as Parquet")
	fs.BoolVar(&c.XLSX, "xlsx", c.XLSX, "Save results as an Excel workbook")
	fs.BoolVar(&c.Postgres, "postgres", c.Postgres, "Save results to PostgreSQL")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
}

// ExportFormats lists the output formats switched on, in a fixed order
func (c *Config) ExportFormats() []string {
	var formats []string
	if !c.NoPrint {
		formats = append(formats, "table")
	}
	if c.CSV {
		formats = append(formats, "csv")
	}
	if c.Parquet {
		formats = append(formats, "parquet")
	}
	if c.XLSX {
		formats = append(formats, "xlsx")
	}
	if c.Postgres {
		formats = append(formats, "postgres")
	}
	return formats
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
