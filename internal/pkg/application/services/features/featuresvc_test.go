package features

import (
	"context"
	"net/http"
	"testing"

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

func TestStrictSpatialFiltering(t *testing.T) {
	count := func(strict bool) int {
		is, ctx, svc, f := testSetup(t, Settings{StrictSpatialFiltering: strict})
		seed(f)

		resp, err := svc.GetFeatureOfInterest(ctx, domain.GetFeatureOfInterestRequest{
			ServiceRequest: header(domain.Version200),
			SpatialFilters: []domain.SpatialFilter{bbox(49, 9, 64, 19)},
		})
		is.NoErr(err)
		return len(resp.Features)
	}

	is := is.New(t)
	is.Equal(count(false), 3) // every feature within the box
	is.Equal(count(true), 2)  // only features that have datasets
}

func TestFeaturesAreRestrictedByProcedure(t *testing.T) {
	is, ctx, svc, f := testSetup(t, Settings{})
	seed(f)

	resp, err := svc.GetFeatureOfInterest(ctx, domain.GetFeatureOfInterestRequest{
		ServiceRequest: header(domain.Version200),
		Procedures:     []string{"p2"},
	})
	is.NoErr(err)
	is.Equal(len(resp.Features), 1)
	is.Equal(resp.Features[0].Identifier, "f2")
	is.True(resp.Features[0].Geometry.IsPoint())
}

func TestFeatureNamesAreTranslated(t *testing.T) {
	is, ctx, svc, f := testSetup(t, Settings{DefaultLocale: "sv"})
	seed(f)
	f.Translate("feature_i18n", f.Feature("f1", 0, 0), "sv", "Mätpunkt 1")

	resp, err := svc.GetFeatureOfInterest(ctx, domain.GetFeatureOfInterestRequest{
		ServiceRequest:     header(domain.Version200),
		FeatureIdentifiers: []string{"f1"},
	})
	is.NoErr(err)
	is.Equal(resp.Features[0].Name, "Mätpunkt 1") // the default locale applies when no language is requested
}

func TestThatVersion100RejectsMixedFilters(t *testing.T) {
	is := is.New(t)

	repo := &RepositoryMock{}
	svc := NewService(&database.SessionProviderMock{}, repo, query.NewBuilder(geometry.NewHandler(geometry.WGS84)), Settings{})

	_, err := svc.GetFeatureOfInterest(context.Background(), domain.GetFeatureOfInterestRequest{
		ServiceRequest:     header(domain.Version100),
		FeatureIdentifiers: []string{"f1"},
		SpatialFilters:     []domain.SpatialFilter{bbox(49, 9, 64, 19)},
	})
	is.True(ows.IsCode(err, ows.NoApplicableCode))
	is.Equal(ows.AsException(err).Status(), http.StatusBadRequest)
	is.Equal(len(repo.FeaturesCalls()), 0)
}

func TestThatVersion200AcceptsMixedFilters(t *testing.T) {
	is := is.New(t)

	repo := &RepositoryMock{
		FeaturesFunc: func(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.FeatureOptions) ([]domain.Feature, error) {
			return []domain.Feature{{Identifier: "f1"}}, nil
		},
	}
	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil },
		ReleaseFunc: func(session *gorm.DB) {},
	}
	svc := NewService(sessions, repo, query.NewBuilder(geometry.NewHandler(geometry.WGS84)), Settings{})

	resp, err := svc.GetFeatureOfInterest(context.Background(), domain.GetFeatureOfInterestRequest{
		ServiceRequest:     header(domain.Version200),
		FeatureIdentifiers: []string{"f1"},
		SpatialFilters:     []domain.SpatialFilter{bbox(49, 9, 64, 19)},
	})
	is.NoErr(err)
	is.Equal(len(resp.Features), 1)

	p := repo.FeaturesCalls()[0].P
	is.True(p.Envelope != nil)
	is.Equal(p.Envelope.MinX, 9.0) // the filter is normalised to longitude first
	is.Equal(len(sessions.ReleaseCalls()), 1)
}

func seed(f *dbtest.Fixture) {
	f.Feature("f1", 17, 62)
	f.Feature("f2", 18, 63)
	f.Feature("f3", 10, 50)
	f.Dataset(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"})
	f.Dataset(dbtest.Series{Procedure: "p2", Phenomenon: "temp", Feature: "f2", Offering: "o1"})
}

func bbox(lat1, lon1, lat2, lon2 float64) domain.SpatialFilter {
	return domain.SpatialFilter{
		Operator:       domain.SpatialBBOX,
		ValueReference: "om:featureOfInterest/*/sams:shape",
		Geometry:       domain.NewEnvelope(lat1, lon1, lat2, lon2, geometry.WGS84),
	}
}

func header(version string) domain.ServiceRequest {
	return domain.ServiceRequest{Service: domain.ServiceType, Version: version}
}

func testSetup(t *testing.T, settings Settings) (*is.I, context.Context, *Service, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	svc := NewService(provider, dao.NewRepository(), query.NewBuilder(geometry.NewHandler(geometry.WGS84)), settings)
	return is, context.Background(), svc, f
}
