package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"propshare/internal/db"
)

var (
	shareLookupDesc = prometheus.NewDesc(
		"propshare_share_lookups_total",
		"Total share token resolution count by outcome",
		[]string{"outcome"},
		nil,
	)
)

// ShareLookupCollector is a custom Prometheus collector that reads share
// resolution counts from the database on each scrape.
type ShareLookupCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ShareLookupCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- shareLookupDesc
}

// Collect queries the database for all share lookups and emits them as counters.
func (c *ShareLookupCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.db.GetAllShareLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect share lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			shareLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Outcome,
		)
	}
}

// Recorder provides async share lookup recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&ShareLookupCollector{db: database})
	})
}

// RecordShareLookup asynchronously records a share resolution outcome.
func RecordShareLookup(outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementShareLookup(context.Background(), outcome); err != nil {
			slog.Error("failed to record share lookup", "outcome", outcome, "error", err)
		}
	}()
}
