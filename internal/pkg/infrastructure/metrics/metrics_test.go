package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestsAreCountedPerOperationAndCode(t *testing.T) {
	is := is.New(t)
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GetObservation", "200", time.Now())
	m.ObserveRequest("GetObservation", "200", time.Now())
	m.ObserveRequest("GetObservation", "InvalidParameterValue", time.Now())

	is.Equal(testutil.ToFloat64(m.Requests.WithLabelValues("GetObservation", "200")), 2.0)
	is.Equal(testutil.ToFloat64(m.Requests.WithLabelValues("GetObservation", "InvalidParameterValue")), 1.0)
}

func TestCacheUpdatesRecordResultAndSize(t *testing.T) {
	is := is.New(t)
	m := New(prometheus.NewRegistry())

	m.ObserveCacheUpdate("full", nil, time.Now(), 3)
	m.ObserveCacheUpdate("partial", errors.New("failed"), time.Now(), 2)

	is.Equal(testutil.ToFloat64(m.CacheUpdates.WithLabelValues("full", "success")), 1.0)
	is.Equal(testutil.ToFloat64(m.CacheUpdates.WithLabelValues("partial", "failure")), 1.0)
	is.Equal(testutil.ToFloat64(m.CacheOfferings), 2.0) // gauge should hold the latest size
}

func TestSessionGauge(t *testing.T) {
	is := is.New(t)
	m := New(prometheus.NewRegistry())

	m.SessionAcquired()
	m.SessionAcquired()
	m.SessionReleased()

	is.Equal(testutil.ToFloat64(m.SessionsInUse), 1.0)
}

func TestNilMetricsAreSafeToUse(t *testing.T) {
	var m *Metrics
	m.SessionAcquired()
	m.ValueStreamed()
	m.ObserveRequest("GetCapabilities", "200", time.Now())
}
