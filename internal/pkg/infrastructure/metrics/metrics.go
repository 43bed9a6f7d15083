package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SessionsInUse prometheus.Gauge
	SessionErrors prometheus.Counter

	CacheUpdates        *prometheus.CounterVec
	CacheUpdateDuration prometheus.Histogram
	CacheOfferings      prometheus.Gauge

	StreamedValues prometheus.Counter
}

// New registers the service metrics with reg. Pass prometheus.NewRegistry()
// in tests to avoid collisions with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sos_requests_total",
				Help: "Total number of SOS requests by operation and outcome",
			},
			[]string{"operation", "code"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sos_request_duration_seconds",
				Help:    "Duration of SOS operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		SessionsInUse: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "sos_db_sessions_in_use",
				Help: "Current number of acquired database sessions",
			},
		),
		SessionErrors: f.NewCounter(
			prometheus.CounterOpts{
				Name: "sos_db_session_errors_total",
				Help: "Total number of failed session acquisitions",
			},
		),
		CacheUpdates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sos_cache_updates_total",
				Help: "Total number of capabilities cache updates by kind and result",
			},
			[]string{"kind", "result"},
		),
		CacheUpdateDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sos_cache_update_duration_seconds",
				Help:    "Duration of capabilities cache updates in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		CacheOfferings: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "sos_cache_offerings",
				Help: "Number of offerings in the installed capabilities cache",
			},
		),
		StreamedValues: f.NewCounter(
			prometheus.CounterOpts{
				Name: "sos_streamed_values_total",
				Help: "Total number of observation values read from streaming cursors",
			},
		),
	}
}

func (m *Metrics) ObserveRequest(operation, code string, started time.Time) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, code).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCacheUpdate(kind string, err error, started time.Time, offerings int) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}

	m.CacheUpdates.WithLabelValues(kind, result).Inc()
	m.CacheUpdateDuration.Observe(time.Since(started).Seconds())
	m.CacheOfferings.Set(float64(offerings))
}

func (m *Metrics) SessionAcquired() {
	if m == nil {
		return
	}
	m.SessionsInUse.Inc()
}

func (m *Metrics) SessionReleased() {
	if m == nil {
		return
	}
	m.SessionsInUse.Dec()
}

func (m *Metrics) SessionFailed() {
	if m == nil {
		return
	}
	m.SessionErrors.Inc()
}

func (m *Metrics) ValueStreamed() {
	if m == nil {
		return
	}
	m.StreamedValues.Inc()
}
