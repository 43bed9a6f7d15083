package results

import (
	"context"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/application/streaming"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("api-sos/svcs/results")

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	ResultTemplate(ctx context.Context, tx *gorm.DB, offering, phenomenon string) (*persistence.ResultTemplate, error)
	ResolveFeatures(ctx context.Context, tx *gorm.DB, p query.Params) ([]string, error)
	Datasets(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error)
	CountObservations(ctx context.Context, tx *gorm.DB, datasetIDs []int64, temporal *query.Clause) (map[int64]int64, error)
	Children(ctx context.Context, tx *gorm.DB, parentIDs []int64) (map[int64][]persistence.Observation, error)
}

type Settings struct {
	MaxValues     int64
	DefaultLocale string
	Streaming     streaming.Config
}

type Service struct {
	sessions database.SessionProvider
	repo     Repository
	builder  *query.Builder
	settings Settings
	metrics  *metrics.Metrics
}

func NewService(sessions database.SessionProvider, repo Repository, builder *query.Builder, settings Settings, m *metrics.Metrics) *Service {
	return &Service{
		sessions: sessions,
		repo:     repo,
		builder:  builder,
		settings: settings,
		metrics:  m,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.GetResultTemplate),
		operations.For(s.GetResult),
	}
}

func (s *Service) GetResultTemplate(ctx context.Context, req domain.GetResultTemplateRequest) (rt *domain.ResultTemplate, err error) {
	ctx, span := tracer.Start(ctx, "get-result-template")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query result templates")
	}
	defer s.sessions.Release(session)

	return s.template(ctx, session, req.Offering, req.ObservedProperty)
}

// GetResult streams the values of the datasets of the offering and
// observed property in the encoding of the registered result template
func (s *Service) GetResult(ctx context.Context, req domain.GetResultRequest) (resp *domain.GetResultResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-result")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query results")
	}
	defer s.sessions.Release(session)

	template, err := s.template(ctx, session, req.Offering, req.ObservedProperty)
	if err != nil {
		return nil, err
	}

	p, err := s.builder.Build(query.Input{
		Features:        req.FeatureIdentifiers,
		Phenomena:       []string{req.ObservedProperty},
		Offerings:       []string{req.Offering},
		SpatialFilters:  req.SpatialFilters,
		TemporalFilters: req.TemporalFilters,
		MatchDomainIDs:  true,
		Locale:          s.locale(req.Language),
	})
	if err != nil {
		return nil, err
	}

	if p.Indeterminate != domain.Determinate {
		return nil, ows.OptionNotSupportedFor(query.TemporalFilterParameter, "first/latest is not supported by GetResult")
	}

	resp = &domain.GetResultResponse{Template: *template, Series: []domain.ObservationSeries{}}

	if p.HasFeatureFilter() {
		var features []string
		features, err = s.repo.ResolveFeatures(ctx, session, p)
		if err != nil {
			return nil, ows.Wrap(err, "unable to resolve features of interest")
		}
		if len(features) == 0 {
			log.Debug().Msg("no features match the request, returning an empty result")
			return resp, nil
		}
		p = p.WithResolvedFeatures(features)
	}

	datasets, err := s.repo.Datasets(ctx, session, p, dao.DatasetOptions{})
	if err != nil {
		return nil, ows.Wrap(err, "unable to query datasets")
	}

	ids := make([]int64, 0, len(datasets))
	for _, ds := range datasets {
		ids = append(ids, ds.ID)
	}

	counts, err := s.repo.CountObservations(ctx, session, ids, p.Temporal)
	if err != nil {
		return nil, ows.Wrap(err, "unable to count observations")
	}

	for _, c := range counts {
		resp.Count += c
	}

	if s.settings.MaxValues > 0 && resp.Count > s.settings.MaxValues {
		return nil, ows.SizeLimitExceeded(streaming.MaxValuesLimit, s.settings.MaxValues, resp.Count)
	}

	budget := streaming.NewBudget(s.settings.MaxValues)

	for _, ds := range datasets {
		if counts[ds.ID] == 0 {
			continue
		}
		resp.Series = append(resp.Series, domain.ObservationSeries{
			Template: domain.NewObservationTemplate(ds),
			Values:   streaming.NewValue(s.sessions, s.repo, ds, dao.ObservationSelection{Temporal: p.Temporal}, s.settings.Streaming, budget, s.metrics),
		})
	}

	return resp, nil
}

func (s *Service) template(ctx context.Context, tx *gorm.DB, offering, property string) (*domain.ResultTemplate, error) {
	if offering == "" {
		return nil, ows.MissingParameter("offering")
	}
	if property == "" {
		return nil, ows.MissingParameter("observedProperty")
	}

	row, err := s.repo.ResultTemplate(ctx, tx, offering, property)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query result templates")
	}

	if row == nil {
		return nil, ows.InvalidParameter("observedProperty", "there is no result template for the offering %s and observed property %s", offering, property)
	}

	return toDomain(*row)
}

func toDomain(row persistence.ResultTemplate) (*domain.ResultTemplate, error) {
	rt := &domain.ResultTemplate{
		Identifier: row.Identifier,
		Offering:   row.Offering.Identifier,
		Phenomenon: row.Phenomenon.Identifier,
		Procedure:  row.Procedure.Identifier,
		Structure:  []domain.ResultField{},
		Encoding:   domain.DefaultResultEncoding(),
	}

	if row.Feature != nil {
		rt.Feature = row.Feature.Identifier
	}

	if row.Structure != "" {
		if err := json.Unmarshal([]byte(row.Structure), &rt.Structure); err != nil {
			return nil, ows.NoApplicable(err, "the structure of result template %s is malformed", row.Identifier)
		}
	}

	if row.Encoding != "" {
		if err := json.Unmarshal([]byte(row.Encoding), &rt.Encoding); err != nil {
			return nil, ows.NoApplicable(err, "the encoding of result template %s is malformed", row.Identifier)
		}
	}

	return rt, nil
}

func (s *Service) locale(requested string) string {
	if requested != "" {
		return requested
	}
	return s.settings.DefaultLocale
}
