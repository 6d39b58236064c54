package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("flightreport", reg)

	m.Loaded("airports_csv", 7)
	m.Loaded("airports_csv", 3)
	m.Dropped(ReasonMalformed, 2)
	m.Dropped(ReasonMissingIATA, 0)
	m.Dropped(ReasonOutOfRange, -1)
	m.ObserveStage("aggregate", time.Now())

	if got := testutil.ToFloat64(m.RecordsLoaded.WithLabelValues("airports_csv")); got != 10 {
		t.Errorf("loaded = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.RecordsDropped.WithLabelValues(ReasonMalformed)); got != 2 {
		t.Errorf("dropped = %v, want 2", got)
	}
	// zero and negative counts create no series
	if got := testutil.CollectAndCount(m.RecordsDropped); got != 1 {
		t.Errorf("dropped series = %d, want 1", got)
	}
	if got := testutil.CollectAndCount(m.StageDuration); got != 1 {
		t.Errorf("stage series = %d, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"flightreport_records_loaded_total", "flightreport_records_dropped_total", "flightreport_stage_duration_seconds"} {
		if !names[want] {
			t.Errorf("missing metric family %s", want)
		}
	}
}
