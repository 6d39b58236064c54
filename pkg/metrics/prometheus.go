package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Drop reasons used on RecordsDropped
const (
	ReasonMalformed        = "malformed"
	ReasonMissingIATA      = "missing_iata"
	ReasonNotConfirmed     = "not_confirmed"
	ReasonOutOfRange       = "out_of_range"
	ReasonOtherAirline     = "other_airline"
	ReasonForeignOrigin    = "foreign_origin"
	ReasonNoDestinationApt = "no_destination_airport"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RecordsLoaded  *prometheus.CounterVec
	RecordsDropped *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	ReportRows     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates new prometheus metrics on the given registry
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "The total number of records read, by source",
		}, []string{"source"}),
		RecordsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "The total number of records dropped, by reason",
		}, []string{"reason"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time taken by each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		ReportRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Number of rows in the last produced report",
		}),
		gatherer: reg,
	}
}

// Loaded adds n records read from source
func (m *Metrics) Loaded(source string, n int) {
	m.RecordsLoaded.WithLabelValues(source).Add(float64(n))
}

// Dropped adds n records dropped for reason
func (m *Metrics) Dropped(reason string, n int) {
	if n <= 0 {
		return
	}
	m.RecordsDropped.WithLabelValues(reason).Add(float64(n))
}

// ObserveStage records how long a stage took since start
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Push sends the collected metrics to a Pushgateway under the given job name
func (m *Metrics) Push(url, job string) error {
	return push.New(url, job).Gatherer(m.gatherer).Push()
}
