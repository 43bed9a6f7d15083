package sensors

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database/dbtest"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/matryer/is"
	"gorm.io/gorm"
)

func TestDescribeSensor(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Dataset(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o2"})
	f.Dataset(dbtest.Series{Procedure: "p1", Phenomenon: "temp", Feature: "f1", Offering: "o1"})

	resp, err := svc.DescribeSensor(ctx, request("p1", SensorML20))
	is.NoErr(err)

	is.Equal(resp.Procedure.Identifier, "p1")
	is.Equal(resp.DescriptionFormat, SensorML20)
	is.True(resp.Procedure.DescriptionDocument != "")
	is.Equal(resp.Offerings, []string{"o1", "o2"})
}

func TestThatUnknownAndDeletedProceduresAreInvalid(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	id := f.Procedure("gone")
	is.NoErr(f.DB().Model(&persistence.Procedure{}).Where("id = ?", id).Update("deleted", true).Error)

	for _, procedure := range []string{"unknown", "gone"} {
		_, err := svc.DescribeSensor(ctx, request(procedure, SensorML20))
		is.True(ows.IsCode(err, ows.InvalidParameterValue))
		is.Equal(ows.AsException(err).Locator, "procedure")
	}
}

func TestThatTheDescriptionFormatMustMatch(t *testing.T) {
	is, ctx, svc, f := testSetup(t)
	f.Procedure("p1")

	_, err := svc.DescribeSensor(ctx, request("p1", SensorML101))
	is.True(ows.IsCode(err, ows.InvalidParameterValue))
	is.Equal(ows.AsException(err).Locator, "procedureDescriptionFormat")

	_, err = svc.DescribeSensor(ctx, request("p1", ""))
	is.True(ows.IsCode(err, ows.MissingParameterValue))
}

func TestSameFormat(t *testing.T) {
	is := is.New(t)

	is.True(SameFormat(`text/xml; subtype="sensorML/1.0.1"`, SensorML101))
	is.True(SameFormat("http://www.opengis.net/sensorML/2.0", SensorML20))
	is.True(!SameFormat(SensorML101, SensorML20))
}

func TestThatRepositoryErrorsAreWrapped(t *testing.T) {
	is := is.New(t)

	repo := &RepositoryMock{
		ProcedureFunc: func(ctx context.Context, tx *gorm.DB, identifier, locale string) (*domain.Procedure, error) {
			return nil, errors.New("connection reset")
		},
	}
	sessions := &database.SessionProviderMock{
		AcquireFunc: func(ctx context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil },
		ReleaseFunc: func(session *gorm.DB) {},
	}

	_, err := NewService(sessions, repo, "en").DescribeSensor(context.Background(), request("p1", SensorML20))
	is.True(ows.IsCode(err, ows.NoApplicableCode))
	is.Equal(repo.ProcedureCalls()[0].Locale, "en")
	is.Equal(len(sessions.ReleaseCalls()), 1) // released on the error path as well
}

func request(procedure, format string) domain.DescribeSensorRequest {
	return domain.DescribeSensorRequest{
		ServiceRequest:             domain.ServiceRequest{Service: domain.ServiceType, Version: domain.Version200},
		Procedure:                  procedure,
		ProcedureDescriptionFormat: format,
	}
}

func testSetup(t *testing.T) (*is.I, context.Context, *Service, *dbtest.Fixture) {
	is := is.New(t)
	provider, f := dbtest.NewProvider(t)
	return is, context.Background(), NewService(provider, dao.NewRepository(), "en"), f
}
