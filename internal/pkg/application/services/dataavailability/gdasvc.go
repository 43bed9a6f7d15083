package dataavailability

import (
	"context"
	"time"

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

var tracer = otel.Tracer("api-sos/svcs/dataavailability")

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	Datasets(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error)
	OfferingHierarchy(ctx context.Context, tx *gorm.DB) (dao.Hierarchy, error)
}

// ObservationStats is optional. Counts fall back to the cached count of the
// dataset and result times are left out when it is not supported.
//
//go:generate moq -rm -out observationstats_mock.go . ObservationStats
type ObservationStats interface {
	IsSupported() bool
	Count(ctx context.Context, tx *gorm.DB, datasetID int64) (int64, error)
	ResultTimes(ctx context.Context, tx *gorm.DB, datasetID int64) ([]time.Time, error)
}

type Service struct {
	sessions      database.SessionProvider
	repo          Repository
	stats         ObservationStats
	builder       *query.Builder
	defaultLocale string
}

func NewService(sessions database.SessionProvider, repo Repository, stats ObservationStats, builder *query.Builder, defaultLocale string) *Service {
	return &Service{
		sessions:      sessions,
		repo:          repo,
		stats:         stats,
		builder:       builder,
		defaultLocale: defaultLocale,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.GetDataAvailability),
	}
}

func (s *Service) GetDataAvailability(ctx context.Context, req domain.GetDataAvailabilityRequest) (resp *domain.GetDataAvailabilityResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-data-availability")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	v20 := req.IsV20()

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query data availability")
	}
	defer s.sessions.Release(session)

	offerings := req.Offerings
	parents := map[string][]string{}

	if v20 && len(req.Offerings) > 0 {
		var hierarchy dao.Hierarchy
		hierarchy, err = s.repo.OfferingHierarchy(ctx, session)
		if err != nil {
			return nil, ows.Wrap(err, "unable to query offering hierarchy")
		}

		offerings, parents, err = expand(hierarchy, req.Offerings)
		if err != nil {
			return nil, ows.InvalidParameter("offering", "%s", err.Error())
		}
	}

	p, err := s.builder.Build(query.Input{
		Features:       req.FeatureIdentifiers,
		Procedures:     req.Procedures,
		Phenomena:      req.ObservedProperties,
		Offerings:      offerings,
		MatchDomainIDs: true,
		Locale:         s.locale(req.Language),
	})
	if err != nil {
		return nil, err
	}

	datasets, err := s.repo.Datasets(ctx, session, p, dao.DatasetOptions{ExcludeHidden: true, OnlyWithObservations: true})
	if err != nil {
		return nil, ows.Wrap(err, "unable to query datasets")
	}

	rc := newRequestContext()

	for _, ds := range datasets {
		var da *domain.DataAvailability
		da, err = s.record(ctx, session, rc, ds, req)
		if err != nil {
			return nil, err
		}
		rc.add(da, !v20)
	}

	if v20 {
		rc.freeze()
		for _, parent := range dedupe(req.Offerings) {
			if descendants, ok := parents[parent]; ok {
				rc.aggregate(domain.Reference{Identifier: parent}, descendants)
			}
		}
	}

	log.Debug().Int("datasets", len(datasets)).Int("records", len(rc.records)).Interface("query", p.Map()).Msg("data availability resolved")

	namespace := domain.GDAVersion10Namespace
	if v20 {
		namespace = domain.GDAVersion20Namespace
	}

	return &domain.GetDataAvailabilityResponse{
		Namespace:          namespace,
		DataAvailabilities: rc.records,
	}, nil
}

func (s *Service) record(ctx context.Context, tx *gorm.DB, rc *requestContext, ds domain.Dataset, req domain.GetDataAvailabilityRequest) (*domain.DataAvailability, error) {
	da := rc.newRecord(ds)
	supported := s.stats != nil && s.stats.IsSupported()

	if req.ShowCount {
		count := ds.ObservationCount
		if supported {
			var err error
			count, err = s.stats.Count(ctx, tx, ds.ID)
			if err != nil {
				return nil, ows.Wrap(err, "unable to count observations of dataset %d", ds.ID)
			}
		}
		da.Count = &count
	}

	if req.IncludeResultTimes && supported {
		times, err := s.stats.ResultTimes(ctx, tx, ds.ID)
		if err != nil {
			return nil, ows.Wrap(err, "unable to query result times of dataset %d", ds.ID)
		}
		da.ResultTimes = times
	}

	if req.IsV20() {
		da.FormatDescriptor = &domain.FormatDescriptor{
			ProcedureDescriptionFormat: ds.ProcedureDescriptionFormat,
			ObservationFormats: []domain.ObservationFormatDescriptor{
				{ResponseFormat: domain.ResponseFormatOM20, ObservationTypes: []string{ds.ValueType.ObservationType()}},
			},
		}
	}

	return da, nil
}

// expand adds the descendants of every requested offering to the query and
// returns, for the requested offerings that have children, their descendants
func expand(h dao.Hierarchy, requested []string) ([]string, map[string][]string, error) {
	offerings := dedupe(requested)
	seen := map[string]bool{}
	for _, o := range offerings {
		seen[o] = true
	}

	parents := map[string][]string{}

	for _, o := range dedupe(requested) {
		if !h.HasChildren(o) {
			continue
		}

		descendants, err := h.Descendants(o)
		if err != nil {
			return nil, nil, err
		}
		parents[o] = descendants

		for _, d := range descendants {
			if !seen[d] {
				seen[d] = true
				offerings = append(offerings, d)
			}
		}
	}

	return offerings, parents, nil
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func (s *Service) locale(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultLocale
}
