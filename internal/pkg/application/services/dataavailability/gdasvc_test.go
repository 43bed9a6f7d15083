package dataavailability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database/dbtest"
	"github.com/matryer/is"
	"gorm.io/gorm"
)

var t0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestThatV1MergesRecordsOfTheSameConstellation(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1, 2)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1", ValueType: "count"}, t0.Add(5*time.Hour), 3, 4)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f2", Offering: "o1"}, t0, 5)

	resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion10Namespace))
	is.NoErr(err)

	is.Equal(resp.Namespace, domain.GDAVersion10Namespace)
	is.Equal(len(resp.DataAvailabilities), 2) // one record per constellation

	merged := find(resp.DataAvailabilities, "f1", "o1")
	is.True(merged.PhenomenonTime.Equal(domain.NewPeriod(t0, t0.Add(6*time.Hour))))
	is.True(merged.FormatDescriptor == nil)
}

func TestThatReferencesAreInterned(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f2", Offering: "o1"}, t0, 2)

	resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion10Namespace))
	is.NoErr(err)

	is.Equal(len(resp.DataAvailabilities), 2)
	is.True(resp.DataAvailabilities[0].Procedure == resp.DataAvailabilities[1].Procedure)
	is.True(resp.DataAvailabilities[0].FeatureOfInterest != resp.DataAvailabilities[1].FeatureOfInterest)
}

func TestParentOfferingAggregationInAThreeLevelTree(t *testing.T) {
	for _, offerings := range [][]string{{"root", "mid"}, {"mid", "root"}} {
		is, ctx, svc, f := testSetup(t)
		f.Offering("mid", "root")
		f.Offering("leaf", "mid")
		f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "mid"}, t0, 1, 2)
		f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "leaf"}, t0.Add(10*time.Hour), 3, 4, 5)

		resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion20Namespace, func(r *domain.GetDataAvailabilityRequest) {
			r.Offerings = offerings
			r.ShowCount = true
		}))
		is.NoErr(err)

		is.Equal(resp.Namespace, domain.GDAVersion20Namespace)
		is.Equal(len(resp.DataAvailabilities), 3) // mid, leaf and a synthesized root

		extent := domain.NewPeriod(t0, t0.Add(12*time.Hour))

		root := find(resp.DataAvailabilities, "f1", "root")
		is.True(root.PhenomenonTime.Equal(extent))
		is.Equal(*root.Count, int64(5)) // each child counted once

		mid := find(resp.DataAvailabilities, "f1", "mid")
		is.True(mid.PhenomenonTime.Equal(extent))
		is.Equal(*mid.Count, int64(5))

		leaf := find(resp.DataAvailabilities, "f1", "leaf")
		is.Equal(*leaf.Count, int64(3))
		is.True(leaf.PhenomenonTime.Equal(domain.NewPeriod(t0.Add(10*time.Hour), t0.Add(12*time.Hour))))
	}
}

func TestThatParentsWithoutContributingChildrenAreLeftOut(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Offering("empty", "parent")
	f.Dataset(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "empty"})
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "other"}, t0, 1)

	resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion20Namespace, func(r *domain.GetDataAvailabilityRequest) {
		r.Offerings = []string{"parent"}
	}))
	is.NoErr(err)
	is.Equal(len(resp.DataAvailabilities), 0)
}

func TestThatAParentWithOwnDatasetsAbsorbsItsChildren(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Offering("child", "parent")
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "parent"}, t0, 1)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "child"}, t0.Add(time.Hour), 2)

	resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion20Namespace, func(r *domain.GetDataAvailabilityRequest) {
		r.Offerings = []string{"parent"}
	}))
	is.NoErr(err)

	is.Equal(len(resp.DataAvailabilities), 2)
	parent := find(resp.DataAvailabilities, "f1", "parent")
	is.True(parent.PhenomenonTime.Equal(domain.NewPeriod(t0, t0.Add(time.Hour))))

	fd := parent.FormatDescriptor
	is.True(fd != nil)
	is.Equal(fd.ProcedureDescriptionFormat, "http://www.opengis.net/sensorml/2.0")
	is.Equal(fd.ObservationFormats[0].ResponseFormat, domain.ResponseFormatOM20)
}

func TestCountAndResultTimes(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1, 2, 3)

	resp, err := svc.GetDataAvailability(ctx, request(domain.GDAVersion20Namespace, func(r *domain.GetDataAvailabilityRequest) {
		r.ShowCount = true
		r.IncludeResultTimes = true
	}))
	is.NoErr(err)

	da := resp.DataAvailabilities[0]
	is.Equal(*da.Count, int64(3))
	is.Equal(len(da.ResultTimes), 3)
	is.True(da.ResultTimes[2].Equal(t0.Add(2 * time.Hour)))
}

func TestThatUnsupportedStatsFallBackToTheDatasetCount(t *testing.T) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	f.Series(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"}, t0, 1, 2)

	stats := &ObservationStatsMock{
		IsSupportedFunc: func() bool { return false },
	}
	svc := NewService(provider, dao.NewRepository(), stats, query.NewBuilder(geometry.NewHandler(geometry.WGS84)), "en")

	resp, err := svc.GetDataAvailability(context.Background(), request(domain.GDAVersion10Namespace, func(r *domain.GetDataAvailabilityRequest) {
		r.ShowCount = true
		r.IncludeResultTimes = true
	}))
	is.NoErr(err)

	da := resp.DataAvailabilities[0]
	is.Equal(*da.Count, int64(2))
	is.Equal(len(da.ResultTimes), 0)
	is.Equal(len(stats.CountCalls()), 0)
	is.Equal(len(stats.ResultTimesCalls()), 0)
}

func TestThatDatabaseErrorsAreWrapped(t *testing.T) {
	is := is.New(t)

	repo := &RepositoryMock{
		DatasetsFunc: func(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error) {
			return nil, errors.New("no such table")
		},
	}
	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil },
		ReleaseFunc: func(session *gorm.DB) {},
	}

	svc := NewService(sessions, repo, nil, query.NewBuilder(geometry.NewHandler(geometry.WGS84)), "en")
	_, err := svc.GetDataAvailability(context.Background(), request(domain.GDAVersion10Namespace))

	is.True(ows.IsCode(err, ows.NoApplicableCode))
	is.Equal(ows.AsException(err).Status(), 500)
	is.Equal(len(repo.OfferingHierarchyCalls()), 0) // no offerings were requested
	is.Equal(len(sessions.ReleaseCalls()), 1)
}

func TestExpand(t *testing.T) {
	is := is.New(t)

	h := dao.NewHierarchy()
	h.Add("a", "b")
	h.Add("b", "c")

	offerings, parents, err := expand(h, []string{"a", "b", "a", "x"})
	is.NoErr(err)
	is.Equal(offerings, []string{"a", "b", "x", "c"})
	is.Equal(parents["a"], []string{"b", "c"})
	is.Equal(parents["b"], []string{"c"})
	_, ok := parents["x"]
	is.True(!ok)

	h.Add("c", "a")
	_, _, err = expand(h, []string{"a"})
	is.True(errors.Is(err, dao.ErrCycle))
}

func find(records []*domain.DataAvailability, feature, offering string) *domain.DataAvailability {
	for _, da := range records {
		if da.FeatureOfInterest.Href == feature && da.Offering.Href == offering {
			return da
		}
	}
	return nil
}

func request(format string, modifiers ...func(*domain.GetDataAvailabilityRequest)) domain.GetDataAvailabilityRequest {
	req := domain.GetDataAvailabilityRequest{
		ServiceRequest: domain.ServiceRequest{Service: domain.ServiceType, Version: domain.Version200},
		ResponseFormat: format,
	}
	for _, m := range modifiers {
		m(&req)
	}
	return req
}

func testSetup(t *testing.T) (*is.I, context.Context, *Service, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	repo := dao.NewRepository()
	svc := NewService(provider, repo, dao.NewObservationStats(repo, true), query.NewBuilder(geometry.NewHandler(geometry.WGS84)), "en")
	return is, context.Background(), svc, f
}
