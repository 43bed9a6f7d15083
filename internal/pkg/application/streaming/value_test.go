package streaming

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database/dbtest"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/matryer/is"
	"gorm.io/gorm"
)

var start = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func TestChunkedStreamingReturnsAllValuesInOrder(t *testing.T) {
	is, ctx, provider, f := testSetup(t)
	ds := seed(f, 7)

	v := NewValue(provider, nil, ds, dao.ObservationSelection{}, Config{Mode: Chunked, ChunkSize: 3}, nil, nil)

	values, err := Collect(ctx, v)
	is.NoErr(err)
	is.Equal(len(values), 7) // every value should be streamed across three chunks
	for i, o := range values {
		is.Equal(*o.Value.Quantity, float64(i))
	}
	is.Equal(provider.InUse(), int64(0)) // the session should be released when exhausted
}

func TestScrollableStreamingReturnsAllValuesInOrder(t *testing.T) {
	is, ctx, provider, f := testSetup(t)
	ds := seed(f, 5)

	v := NewValue(provider, nil, ds, dao.ObservationSelection{}, Config{Mode: Scrollable}, nil, nil)

	values, err := Collect(ctx, v)
	is.NoErr(err)
	is.Equal(len(values), 5)
	is.Equal(*values[4].Value.Quantity, 4.0)
	is.Equal(provider.InUse(), int64(0))
}

func TestThatEarlyCloseReleasesTheSession(t *testing.T) {
	for _, mode := range []Mode{Chunked, Scrollable} {
		t.Run(string(mode), func(t *testing.T) {
			is, ctx, provider, f := testSetup(t)
			ds := seed(f, 10)

			v := NewValue(provider, nil, ds, dao.ObservationSelection{}, Config{Mode: mode, ChunkSize: 4}, nil, nil)

			is.True(v.Next(ctx))
			is.True(v.Next(ctx))
			is.Equal(provider.InUse(), int64(1)) // a session is held while streaming

			is.NoErr(v.Close())
			is.Equal(provider.InUse(), int64(0)) // closing early must release the session
			is.True(!v.Next(ctx))                // a closed value yields nothing
			is.NoErr(v.Close())                  // closing twice is harmless
		})
	}
}

func TestThatTheBudgetStopsStreamingMidway(t *testing.T) {
	is, ctx, provider, f := testSetup(t)
	first := seed(f, 3)
	second := f.Series(dbtest.Series{Procedure: "p", Phenomenon: "wind", Feature: "f", Offering: "o"}, start, 10, 11, 12)

	budget := NewBudget(4)
	cfg := Config{Mode: Chunked, ChunkSize: 2}

	values, err := Collect(ctx, NewValue(provider, nil, first, dao.ObservationSelection{}, cfg, budget, nil))
	is.NoErr(err)
	is.Equal(len(values), 3)

	values, err = Collect(ctx, NewValue(provider, nil, toDomain(second), dao.ObservationSelection{}, cfg, budget, nil))
	is.True(ows.IsCode(err, ows.ResponseExceedsSizeLimit)) // the fifth value exceeds the budget
	is.Equal(len(values), 1)
	is.Equal(provider.InUse(), int64(0)) // the session is released on error
}

func TestThatABudgetOfExactlyNPasses(t *testing.T) {
	is, ctx, provider, f := testSetup(t)
	ds := seed(f, 4)

	values, err := Collect(ctx, NewValue(provider, nil, ds, dao.ObservationSelection{}, Config{}, NewBudget(4), nil))
	is.NoErr(err)
	is.Equal(len(values), 4)
}

func TestThatTemporalSelectionIsApplied(t *testing.T) {
	is, ctx, provider, f := testSetup(t)
	ds := seed(f, 6)

	temporal, _, err := query.TemporalClause([]domain.TemporalFilter{
		{Operator: domain.TimeAfter, Time: domain.NewInstant(start.Add(3 * time.Hour))},
	})
	is.NoErr(err)

	values, err := Collect(ctx, NewValue(provider, nil, ds, dao.ObservationSelection{Temporal: temporal}, Config{ChunkSize: 2}, nil, nil))
	is.NoErr(err)
	is.Equal(len(values), 2) // values at 4h and 5h
}

func TestProfileChildrenAreLoaded(t *testing.T) {
	is, ctx, provider, f := testSetup(t)

	row := f.Dataset(dbtest.Series{Procedure: "p", Phenomenon: "profile", Feature: "f", Offering: "o", ValueType: "profile"})
	parents := f.Observations(row, dbtest.Value{Time: start, Quantity: 0})
	f.Observations(row,
		dbtest.Value{Time: start, Quantity: 4.2, ParentID: &parents[0].ID},
		dbtest.Value{Time: start, Quantity: 3.9, ParentID: &parents[0].ID},
	)

	ds := toDomain(row)
	ds.ValueType = domain.ProfileValue

	values, err := Collect(ctx, NewValue(provider, dao.NewRepository(), ds, dao.ObservationSelection{}, Config{}, nil, nil))
	is.NoErr(err)
	is.Equal(len(values), 1)             // children are not top level values
	is.Equal(len(values[0].Children), 2) // but are attached to their parent
}

func TestThatAcquireFailuresAreReported(t *testing.T) {
	is := is.New(t)

	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) {
			return nil, database.ErrUnavailable
		},
	}

	v := NewValue(sessions, nil, domain.Dataset{ID: 1}, dao.ObservationSelection{}, Config{}, nil, nil)

	is.True(!v.Next(context.Background()))
	is.True(errors.Is(v.Err(), database.ErrUnavailable))
	is.True(ows.IsCode(v.Err(), ows.NoApplicableCode))
	is.Equal(len(sessions.ReleaseCalls()), 0) // nothing to release
}

func TestStaticValues(t *testing.T) {
	is := is.New(t)

	values, err := Collect(context.Background(), NewStatic(domain.Observation{ID: 1}, domain.Observation{ID: 2}))
	is.NoErr(err)
	is.Equal(len(values), 2)
}

func seed(f *dbtest.Fixture, n int) domain.Dataset {
	quantities := make([]float64, n)
	for i := range quantities {
		quantities[i] = float64(i)
	}
	return toDomain(f.Series(dbtest.Series{Procedure: "p", Phenomenon: "temp", Feature: "f", Offering: "o"}, start, quantities...))
}

func toDomain(ds *persistence.Dataset) domain.Dataset {
	return domain.Dataset{ID: ds.ID, ValueType: domain.ValueType(ds.ValueType), Unit: ds.Unit}
}

func testSetup(t *testing.T) (*is.I, context.Context, *database.Provider, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	return is, context.Background(), provider, f
}
