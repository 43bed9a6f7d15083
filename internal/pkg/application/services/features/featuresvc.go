package features

import (
	"context"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("api-sos/svcs/features")

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	Features(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.FeatureOptions) ([]domain.Feature, error)
}

type Settings struct {
	DefaultLocale string
	// StrictSpatialFiltering only lets a spatial filter match features that
	// have at least one dataset
	StrictSpatialFiltering bool
}

type Service struct {
	sessions database.SessionProvider
	repo     Repository
	builder  *query.Builder
	settings Settings
}

func NewService(sessions database.SessionProvider, repo Repository, builder *query.Builder, settings Settings) *Service {
	return &Service{
		sessions: sessions,
		repo:     repo,
		builder:  builder,
		settings: settings,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.GetFeatureOfInterest),
	}
}

func (s *Service) GetFeatureOfInterest(ctx context.Context, req domain.GetFeatureOfInterestRequest) (resp *domain.GetFeatureOfInterestResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-feature-of-interest")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	if req.IsVersion100() && len(req.FeatureIdentifiers) > 0 && len(req.SpatialFilters) > 0 {
		return nil, &ows.Exception{
			Code:    ows.NoApplicableCode,
			Locator: "featureOfInterest",
			Message: "feature identifiers and a spatial filter can not be combined in a 1.0.0 request",
		}
	}

	locale := req.Language
	if locale == "" {
		locale = s.settings.DefaultLocale
	}

	p, err := s.builder.Build(query.Input{
		Features:       req.FeatureIdentifiers,
		Procedures:     req.Procedures,
		Phenomena:      req.ObservedProperties,
		SpatialFilters: req.SpatialFilters,
		MatchDomainIDs: true,
		Locale:         locale,
	})
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query features of interest")
	}
	defer s.sessions.Release(session)

	opts := dao.FeatureOptions{
		OnlyWithDatasets: s.settings.StrictSpatialFiltering && p.HasSpatialFilter(),
	}

	features, err := s.repo.Features(ctx, session, p, opts)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query features of interest")
	}

	log.Debug().Int("features", len(features)).Interface("query", p.Map()).Msg("features of interest resolved")

	return &domain.GetFeatureOfInterestResponse{
		Version:  req.Version,
		Features: features,
	}, nil
}
