package sensors

import (
	"context"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("api-sos/svcs/sensors")

const (
	SensorML101 string = "http://www.opengis.net/sensorML/1.0.1"
	SensorML20  string = "http://www.opengis.net/sensorml/2.0"
)

// the mime types SOS 1.0.0 clients use as outputFormat
var formatAliases = map[string]string{
	`text/xml;subtype="sensorml/1.0.1"`: SensorML101,
	`text/xml;subtype="sensorml/2.0"`:   SensorML20,
}

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	Procedure(ctx context.Context, tx *gorm.DB, identifier, locale string) (*domain.Procedure, error)
	ProcedureOfferings(ctx context.Context, tx *gorm.DB, identifier string) ([]string, error)
}

type Service struct {
	sessions      database.SessionProvider
	repo          Repository
	defaultLocale string
}

func NewService(sessions database.SessionProvider, repo Repository, defaultLocale string) *Service {
	return &Service{
		sessions:      sessions,
		repo:          repo,
		defaultLocale: defaultLocale,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.DescribeSensor),
	}
}

func (s *Service) DescribeSensor(ctx context.Context, req domain.DescribeSensorRequest) (resp *domain.DescribeSensorResponse, err error) {
	ctx, span := tracer.Start(ctx, "describe-sensor")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	if req.Procedure == "" {
		return nil, ows.MissingParameter("procedure")
	}
	if req.ProcedureDescriptionFormat == "" {
		return nil, ows.MissingParameter("procedureDescriptionFormat")
	}

	locale := req.Language
	if locale == "" {
		locale = s.defaultLocale
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query procedures")
	}
	defer s.sessions.Release(session)

	procedure, err := s.repo.Procedure(ctx, session, req.Procedure, locale)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query procedure %s", req.Procedure)
	}
	if procedure == nil {
		return nil, ows.InvalidParameter("procedure", "the procedure %s is unknown", req.Procedure)
	}

	if !SameFormat(req.ProcedureDescriptionFormat, procedure.DescriptionFormat) {
		return nil, ows.InvalidParameter("procedureDescriptionFormat",
			"the procedure %s can not be described as %s", req.Procedure, req.ProcedureDescriptionFormat)
	}

	offerings, err := s.repo.ProcedureOfferings(ctx, session, req.Procedure)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query offerings of procedure %s", req.Procedure)
	}

	return &domain.DescribeSensorResponse{
		Version:           req.Version,
		Procedure:         *procedure,
		DescriptionFormat: procedure.DescriptionFormat,
		Offerings:         offerings,
	}, nil
}

// SameFormat compares two procedure description formats, treating the SOS
// 1.0.0 mime types as their SensorML namespaces
func SameFormat(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(format string) string {
	f := strings.ToLower(strings.ReplaceAll(format, " ", ""))
	if alias, ok := formatAliases[f]; ok {
		return strings.ToLower(alias)
	}
	return f
}
