package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database/dbtest"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestUpdateCache(t *testing.T) {
	is, ctx, feeder, f := testSetup(t)
	seed(f)

	is.NoErr(feeder.UpdateCache(ctx))
	snapshot := feeder.cache.Get()

	is.Equal(snapshot.Procedures, []string{"p1", "p2"})
	is.Equal(snapshot.ObservableProperties, []string{"rain", "temp"})
	is.Equal(snapshot.Features, []string{"f1", "f2"})
	is.Equal(snapshot.CompositePhenomena["weather"], []string{"rain", "temp"})

	o1, ok := snapshot.Offering("o1")
	is.True(ok)
	is.Equal(o1.Children, []string{"o2"})
	is.Equal(o1.Procedures, []string{"p1"})
	is.Equal(o1.Envelope.MinX, 17.0)
	is.True(o1.PhenomenonTime.Equal(domain.NewPeriod(t0, t0.Add(2*time.Hour))))
	is.True(o1.ResultTime.Equal(o1.PhenomenonTime))
	is.Equal(o1.LocalizedName("sv"), "Väder")
	is.Equal(o1.LocalizedName("de"), "o1")

	o2, _ := snapshot.Offering("o2")
	is.Equal(o2.Parents, []string{"o1"})

	is.True(snapshot.Envelope.Contains(*o1.Envelope))
	is.True(snapshot.Envelope.Contains(*o2.Envelope))
}

func TestThatAFullUpdateIsIdempotent(t *testing.T) {
	is, ctx, feeder, f := testSetup(t)
	seed(f)

	is.NoErr(feeder.UpdateCache(ctx))
	first := feeder.cache.Get()

	is.NoErr(feeder.UpdateCache(ctx))
	second := feeder.cache.Get()

	is.True(first != second) // a new snapshot is installed on every update
	is.Equal(first.Offerings(), second.Offerings())
	is.Equal(first.Envelope, second.Envelope)
	is.Equal(first.ObservableProperties, second.ObservableProperties)
}

func TestUpdateCacheOfferings(t *testing.T) {
	is, ctx, feeder, f := testSetup(t)
	seed(f)
	is.NoErr(feeder.UpdateCache(ctx))

	f.Series(dbtest.Series{Procedure: "p3", Phenomenon: "rain", Feature: "f2", Offering: "o2"}, t0, 1)
	f.Series(dbtest.Series{Procedure: "p4", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1)
	f.Series(dbtest.Series{Procedure: "p5", Phenomenon: "temp", Feature: "f1", Offering: "o3"}, t0, 1)

	is.NoErr(feeder.UpdateCacheOfferings(ctx, []string{"o2", "o3"}))
	snapshot := feeder.cache.Get()

	o1, _ := snapshot.Offering("o1")
	is.Equal(o1.Procedures, []string{"p1"}) // not part of the update

	o2, _ := snapshot.Offering("o2")
	is.Equal(o2.Procedures, []string{"p2", "p3"})

	_, ok := snapshot.Offering("o3")
	is.True(ok)
	is.Equal(snapshot.Procedures, []string{"p1", "p2", "p3", "p5"})
}

func TestThatFailedOfferingsAreReportedTogether(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider, f := dbtest.NewProvider(t)
	seed(f)
	f.Series(dbtest.Series{Procedure: "p3", Phenomenon: "temp", Feature: "f1", Offering: "o3"}, t0, 1)

	failing := atomic.Bool{}
	repo := delegatingRepository(func(o string) error {
		if failing.Load() && o != "o1" {
			return errors.New("connection reset")
		}
		return nil
	})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	feeder := NewFeeder(New(), provider, repo, 2, m)

	is.NoErr(feeder.UpdateCache(ctx))
	before, _ := feeder.cache.Get().Offering("o2")

	f.Series(dbtest.Series{Procedure: "p4", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1)
	failing.Store(true)

	err := feeder.UpdateCache(ctx)
	is.True(err != nil)

	var composite *ows.Composite
	is.True(errors.As(err, &composite))
	is.Equal(len(composite.Exceptions), 2) // o2 and o3
	is.Equal(composite.Status(), 500)

	snapshot := feeder.cache.Get()
	o1, _ := snapshot.Offering("o1")
	is.Equal(o1.Procedures, []string{"p1", "p4"}) // successful offerings are installed

	o2, _ := snapshot.Offering("o2")
	is.Equal(o2, before) // failed offerings keep their previous content

	is.Equal(testutil.ToFloat64(m.CacheUpdates.WithLabelValues("full", "success")), 1.0)
	is.Equal(testutil.ToFloat64(m.CacheUpdates.WithLabelValues("full", "failure")), 1.0)
	is.Equal(testutil.ToFloat64(m.CacheOfferings), 3.0)
}

func TestThatTheWorkerPoolIsBounded(t *testing.T) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	for _, o := range []string{"a", "b", "c", "d", "e", "f"} {
		f.Offering(o)
	}

	var inFlight, peak atomic.Int32
	repo := delegatingRepository(func(string) error {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		return nil
	})

	feeder := NewFeeder(New(), provider, repo, 2, nil)
	is.NoErr(feeder.UpdateCache(context.Background()))

	is.True(peak.Load() <= 2)
	is.Equal(len(repo.DatasetsCalls()), 6)
	is.Equal(len(feeder.cache.Get().Offerings()), 6)
}

func TestThatTheSessionIsReleasedWhenTheUpdateFails(t *testing.T) {
	is := is.New(t)

	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil },
		ReleaseFunc: func(session *gorm.DB) {},
	}
	repo := &RepositoryMock{
		OfferingsFunc: func(ctx context.Context, tx *gorm.DB, identifiers []string) ([]domain.Offering, error) {
			return nil, errors.New("relation offerings does not exist")
		},
	}

	c := New()
	err := NewFeeder(c, sessions, repo, 0, nil).UpdateCache(context.Background())

	is.True(ows.IsCode(err, ows.NoApplicableCode))
	is.Equal(len(sessions.AcquireCalls()), 1)
	is.Equal(len(sessions.ReleaseCalls()), 1)
	is.True(c.Get().IsEmpty()) // nothing installed
}

func seed(f *dbtest.Fixture) {
	f.Offering("o2", "o1")
	f.Phenomenon("temp", "weather")
	f.Phenomenon("rain", "weather")
	f.Feature("f1", 17, 62)
	f.Feature("f2", 18, 63)
	f.Translate("offering_i18n", f.Offering("o1"), "sv", "Väder")

	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1, 2, 3)
	f.Series(dbtest.Series{Procedure: "p2", Phenomenon: "rain", Feature: "f2", Offering: "o2"}, t0.Add(time.Hour), 4)
	f.Dataset(dbtest.Series{Procedure: "p2", Phenomenon: "rain", Feature: "f2", Offering: "o2", Hidden: true, ValueType: "count"})
}

// delegatingRepository passes every call to the sqlite repository after
// asking before whether the dataset query of an offering should fail
func delegatingRepository(before func(offering string) error) *RepositoryMock {
	r := dao.NewRepository()
	return &RepositoryMock{
		OfferingsFunc:           r.Offerings,
		OfferingNamesFunc:       r.OfferingNames,
		OfferingHierarchyFunc:   r.OfferingHierarchy,
		PhenomenonHierarchyFunc: r.PhenomenonHierarchy,
		FeaturesFunc:            r.Features,
		ResultTimeExtentFunc:    r.ResultTimeExtent,
		DatasetsFunc: func(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error) {
			if err := before(p.Offerings[0]); err != nil {
				return nil, err
			}
			return r.Datasets(ctx, tx, p, opts)
		},
	}
}

func testSetup(t *testing.T) (*is.I, context.Context, *Feeder, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	return is, context.Background(), NewFeeder(New(), provider, dao.NewRepository(), 3, nil), f
}
