package observations

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/profile"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/application/streaming"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database/dbtest"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var start = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func TestThatAnEmptyFeatureSetStopsFurtherQueries(t *testing.T) {
	is := is.New(t)

	repo := &RepositoryMock{
		ResolveFeaturesFunc: func(ctx context.Context, tx *gorm.DB, p query.Params) ([]string, error) {
			return []string{}, nil
		},
	}
	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil },
		ReleaseFunc: func(session *gorm.DB) {},
	}

	svc := NewService(sessions, repo, query.NewBuilder(geometry.NewHandler(geometry.WGS84)), profile.NewRegistry(), Settings{}, nil)

	resp, err := svc.GetObservation(context.Background(), request(func(r *domain.GetObservationRequest) {
		r.FeatureIdentifiers = []string{"nowhere"}
	}))
	is.NoErr(err)
	is.Equal(len(resp.Series), 0)
	is.Equal(len(repo.ResolveFeaturesCalls()), 1)
	is.Equal(len(repo.DatasetsCalls()), 0)          // no datasets are queried
	is.Equal(len(repo.CountObservationsCalls()), 0) // and no observations either
	is.Equal(len(sessions.ReleaseCalls()), 1)       // the session is released on the early exit
}

func TestThatASpatialFilterWithoutMatchesYieldsAnEmptyResponse(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{})
	f.Series(series("o1", "temp"), start, 1, 2)

	resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.SpatialFilters = []domain.SpatialFilter{{
			Operator:       domain.SpatialBBOX,
			ValueReference: "om:featureOfInterest/*/sams:shape",
			Geometry:       domain.NewEnvelope(0, 0, 1, 1, geometry.WGS84),
		}}
	}))
	is.NoErr(err)
	is.Equal(len(resp.Series), 0)
}

func TestGetObservationStreamsEverySeries(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{Streaming: streaming.Config{ChunkSize: 2}})
	f.Series(series("o1", "temp"), start, 1, 2, 3)
	f.Series(series("o1", "wind"), start, 4, 5)

	resp, err := svc.GetObservation(ctx, request())
	is.NoErr(err)
	defer resp.Close()

	is.Equal(len(resp.Series), 2)
	is.Equal(resp.Series[0].Template.Dataset.Phenomenon.Identifier, "temp")
	is.Equal(resp.Series[0].Template.ObservationType, domain.QuantityValue.ObservationType())

	values, err := streaming.Collect(ctx, resp.Series[0].Values)
	is.NoErr(err)
	is.Equal(len(values), 3)

	values, err = streaming.Collect(ctx, resp.Series[1].Values)
	is.NoErr(err)
	is.Equal(*values[1].Value.Quantity, 5.0)
}

func TestThatTheResolvedQueryIsLogged(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{})
	f.Series(series("o1", "temp"), start, 1)

	buf := &bytes.Buffer{}
	ctx = logging.NewContextWithLogger(ctx, zerolog.New(buf).Level(zerolog.DebugLevel))

	resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.Offerings = []string{"o1"}
	}))
	is.NoErr(err)
	resp.Close()

	is.True(bytes.Contains(buf.Bytes(), []byte(`"query":{`)))          // the resolved query should be logged
	is.True(bytes.Contains(buf.Bytes(), []byte(`"offering":["o1"]`))) // with the requested offering
}

func TestThatTheTimeSeriesLimitIsEnforced(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{MaxTimeSeries: 2})
	f.Series(series("o1", "temp"), start, 1)
	f.Series(series("o1", "wind"), start, 1)

	resp, err := svc.GetObservation(ctx, request())
	is.NoErr(err) // exactly the limit is accepted
	resp.Close()

	f.Series(series("o1", "rain"), start, 1)

	_, err = svc.GetObservation(ctx, request())
	is.True(ows.IsCode(err, ows.ResponseExceedsSizeLimit))
	is.Equal(ows.AsException(err).Locator, MaxTimeSeriesLimit)
}

func TestThatTheValueLimitIsEnforcedBeforeStreaming(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{MaxValues: 5})
	f.Series(series("o1", "temp"), start, 1, 2, 3)
	f.Series(series("o1", "wind"), start, 1, 2)

	resp, err := svc.GetObservation(ctx, request())
	is.NoErr(err)
	resp.Close()

	f.Series(series("o1", "rain"), start, 1)

	_, err = svc.GetObservation(ctx, request())
	is.True(ows.IsCode(err, ows.ResponseExceedsSizeLimit))
	is.Equal(ows.AsException(err).Locator, streaming.MaxValuesLimit)
}

func TestOverallExtremaReturnsEveryDatasetThatSharesTheExtreme(t *testing.T) {
	prof := profile.Default()
	prof.OverallExtrema = true

	is, ctx, svc, f := testSetup(t, prof, Settings{})
	f.Series(series("o1", "temp"), start, 1, 2, 3)
	f.Series(series("o1", "wind"), start, 4, 5)
	f.Series(series("o1", "rain"), start.Add(time.Hour), 6, 7, 8)

	resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.TemporalFilters = []domain.TemporalFilter{{Operator: domain.TimeEquals, Indeterminate: domain.First}}
	}))
	is.NoErr(err)
	is.Equal(len(resp.Series), 2) // temp and wind share the earliest timestamp

	resp, err = svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.TemporalFilters = []domain.TemporalFilter{{Operator: domain.TimeEquals, Indeterminate: domain.Latest}}
	}))
	is.NoErr(err)
	is.Equal(len(resp.Series), 1) // rain ends last
	is.Equal(resp.Series[0].Template.Dataset.Phenomenon.Identifier, "rain")

	values, err := streaming.Collect(ctx, resp.Series[0].Values)
	is.NoErr(err)
	is.Equal(len(values), 1)
	is.Equal(*values[0].Value.Quantity, 8.0)
}

func TestFirstObservationPerDataset(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{})
	f.Series(series("o1", "temp"), start, 1, 2, 3)
	f.Series(series("o1", "rain"), start.Add(time.Hour), 6, 7)

	resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.TemporalFilters = []domain.TemporalFilter{{Operator: domain.TimeEquals, Indeterminate: domain.First}}
	}))
	is.NoErr(err)
	is.Equal(len(resp.Series), 2) // every dataset contributes its own first value

	values, err := streaming.Collect(ctx, resp.Series[1].Values)
	is.NoErr(err)
	is.Equal(*values[0].Value.Quantity, 6.0)
}

func TestThatTheLatestValueIsReturnedWithoutTemporalFilter(t *testing.T) {
	prof := profile.Default()
	prof.ReturnLatestValueIfTemporalFilterIsMissing = true

	is, ctx, svc, f := testSetup(t, prof, Settings{})
	f.Series(series("o1", "temp"), start, 1, 2, 3)

	resp, err := svc.GetObservation(ctx, request())
	is.NoErr(err)

	values, err := streaming.Collect(ctx, resp.Series[0].Values)
	is.NoErr(err)
	is.Equal(len(values), 1)
	is.Equal(*values[0].Value.Quantity, 3.0)
}

func TestDuplicityCheckAcrossOfferings(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{})

	first := f.Dataset(series("o1", "temp"))
	f.Observations(first,
		dbtest.Value{Time: start, Quantity: 1, Identifier: "shared"},
		dbtest.Value{Time: start.Add(time.Hour), Quantity: 2, Identifier: "only-in-o1"},
	)

	second := f.Dataset(series("o2", "temp"))
	f.Observations(second,
		dbtest.Value{Time: start, Quantity: 1, Identifier: "shared"},
		dbtest.Value{Time: start.Add(2 * time.Hour), Quantity: 3, Identifier: "only-in-o2"},
		dbtest.Value{Time: start.Add(3 * time.Hour), Quantity: 4},
	)

	check := func(duplicity bool) []int {
		resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
			r.Offerings = []string{"o1", "o2"}
			r.CheckForDuplicity = duplicity
		}))
		is.NoErr(err)
		is.Equal(len(resp.Series), 2)

		sizes := []int{}
		for _, s := range resp.Series {
			values, err := streaming.Collect(ctx, s.Values)
			is.NoErr(err)
			sizes = append(sizes, len(values))
		}
		return sizes
	}

	is.Equal(check(false), []int{2, 3}) // without the check the shared observation is returned twice
	is.Equal(check(true), []int{2, 2})  // the second offering no longer repeats the shared observation
}

func TestThatTheValueLimitCountsSurvivingValuesWhenDuplicityIsChecked(t *testing.T) {
	limited := func(maxValues int64) error {
		is, ctx, svc, f := testSetup(t, profile.Default(), Settings{MaxValues: maxValues})

		first := f.Dataset(series("o1", "temp"))
		f.Observations(first,
			dbtest.Value{Time: start, Quantity: 1, Identifier: "shared"},
			dbtest.Value{Time: start.Add(time.Hour), Quantity: 2, Identifier: "only-in-o1"},
		)

		second := f.Dataset(series("o2", "temp"))
		f.Observations(second,
			dbtest.Value{Time: start, Quantity: 1, Identifier: "shared"},
			dbtest.Value{Time: start.Add(2 * time.Hour), Quantity: 3, Identifier: "only-in-o2"},
			dbtest.Value{Time: start.Add(3 * time.Hour), Quantity: 4},
		)

		resp, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
			r.Offerings = []string{"o1", "o2"}
			r.CheckForDuplicity = true
		}))
		if err != nil {
			return err
		}
		defer resp.Close()

		total := 0
		for _, s := range resp.Series {
			values, err := streaming.Collect(ctx, s.Values)
			is.NoErr(err) // accepted responses must stream without hitting the limit
			total += len(values)
		}
		is.Equal(total, 4)
		return nil
	}

	is := is.New(t)

	is.NoErr(limited(4)) // four values remain once the shared one is excluded

	err := limited(3)
	is.True(ows.IsCode(err, ows.ResponseExceedsSizeLimit)) // rejected before anything is streamed
	is.Equal(ows.AsException(err).Locator, streaming.MaxValuesLimit)
	is.Equal(ows.AsException(err).Message, "the response would contain 4 elements, which exceeds the configured maxNumberOfReturnedValues of 3")
}

func TestSharedWithOnlyConsidersOtherOfferings(t *testing.T) {
	is := is.New(t)

	ds := func(id int64, offering, feature string) domain.Dataset {
		return domain.Dataset{
			ID:         id,
			Procedure:  domain.Reference{Identifier: "p"},
			Phenomenon: domain.Reference{Identifier: "temp"},
			Feature:    domain.Reference{Identifier: feature},
			Offering:   domain.Reference{Identifier: offering},
		}
	}

	earlier := []domain.Dataset{ds(1, "o1", "f"), ds(2, "o2", "f"), ds(3, "o1", "other")}

	is.Equal(SharedWith(earlier, ds(4, "o3", "f")), []int64{1, 2})
	is.Equal(SharedWith(earlier, ds(5, "o1", "f")), []int64{2}) // the same offering is never a duplicate
	is.Equal(SharedWith(nil, ds(6, "o1", "f")), []int64{})
}

func TestMetadataOfEmptySeries(t *testing.T) {
	count := func(show bool) int {
		prof := profile.Default()
		prof.ShowMetadataOfEmptyObservations = show

		is, ctx, svc, f := testSetup(t, prof, Settings{})
		f.Series(series("o1", "temp"), start, 1)
		f.Dataset(series("o1", "wind"))

		resp, err := svc.GetObservation(ctx, request())
		is.NoErr(err)
		defer resp.Close()

		for _, s := range resp.Series {
			if s.Template.Dataset.Phenomenon.Identifier == "wind" {
				is.Equal(s.Values, nil) // an empty series only carries its metadata
			}
		}
		return len(resp.Series)
	}

	is := is.New(t)
	is.Equal(count(true), 2)
	is.Equal(count(false), 1)
}

func TestThatVersion100RequiresOfferingAndProperty(t *testing.T) {
	is, ctx, svc, _ := testSetup(t, profile.Default(), Settings{})

	_, err := svc.GetObservation(ctx, request(func(r *domain.GetObservationRequest) {
		r.Version = domain.Version100
		r.Offerings = []string{"o1"}
	}))
	is.True(ows.IsCode(err, ows.MissingParameterValue))
	is.Equal(ows.AsException(err).Locator, "observedProperty")
}

func TestGetObservationByID(t *testing.T) {
	is, ctx, svc, f := testSetup(t, profile.Default(), Settings{})

	temp := f.Dataset(series("o1", "temp"))
	f.Observations(temp,
		dbtest.Value{Time: start, Quantity: 1, Identifier: "a"},
		dbtest.Value{Time: start.Add(time.Hour), Quantity: 2, Identifier: "b"},
	)
	wind := f.Dataset(series("o1", "wind"))
	f.Observations(wind, dbtest.Value{Time: start, Quantity: 3, Identifier: "c"})

	resp, err := svc.GetObservationByID(ctx, domain.GetObservationByIDRequest{
		ServiceRequest:         header(),
		ObservationIdentifiers: []string{"a", "c", "b"},
	})
	is.NoErr(err)
	is.Equal(len(resp.Series), 2) // grouped by dataset

	values, err := streaming.Collect(ctx, resp.Series[0].Values)
	is.NoErr(err)
	is.Equal(len(values), 2)
	is.Equal(values[0].Identifier, "a")

	_, err = svc.GetObservationByID(ctx, domain.GetObservationByIDRequest{
		ServiceRequest:         header(),
		ObservationIdentifiers: []string{"a", "missing"},
	})
	is.True(ows.IsCode(err, ows.InvalidParameterValue))
	is.Equal(ows.AsException(err).Locator, "observation")
}

func TestExtremaWithoutValues(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Extrema([]domain.Dataset{{ID: 1}, {ID: 2}}, domain.First)), 0)
}

func series(offering, phenomenon string) dbtest.Series {
	return dbtest.Series{Procedure: "p", Phenomenon: phenomenon, Feature: "f", Offering: offering}
}

func header() domain.ServiceRequest {
	return domain.ServiceRequest{Service: domain.ServiceType, Version: domain.Version200}
}

func request(modifiers ...func(*domain.GetObservationRequest)) domain.GetObservationRequest {
	r := domain.GetObservationRequest{ServiceRequest: header()}
	for _, m := range modifiers {
		m(&r)
	}
	return r
}

func testSetup(t *testing.T, prof profile.Profile, settings Settings) (*is.I, context.Context, *Service, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)

	profiles := &profile.HandlerMock{
		ActiveFunc: func() profile.Profile { return prof },
	}

	svc := NewService(provider, dao.NewRepository(), query.NewBuilder(geometry.NewHandler(geometry.WGS84)), profiles, settings, nil)
	return is, context.Background(), svc, f
}
