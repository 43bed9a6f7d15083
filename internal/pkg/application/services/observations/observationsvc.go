package observations

import (
	"context"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/profile"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/application/streaming"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("api-sos/svcs/observations")

const MaxTimeSeriesLimit string = "maxNumberOfReturnedTimeSeries"

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	ResolveFeatures(ctx context.Context, tx *gorm.DB, p query.Params) ([]string, error)
	Datasets(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error)
	DatasetsByID(ctx context.Context, tx *gorm.DB, ids []int64, locale string) ([]domain.Dataset, error)
	CountObservations(ctx context.Context, tx *gorm.DB, datasetIDs []int64, temporal *query.Clause) (map[int64]int64, error)
	CountSelection(ctx context.Context, tx *gorm.DB, selection dao.ObservationSelection) (int64, error)
	FirstObservation(ctx context.Context, tx *gorm.DB, datasetID int64, temporal *query.Clause) (*persistence.Observation, error)
	LatestObservation(ctx context.Context, tx *gorm.DB, datasetID int64, temporal *query.Clause) (*persistence.Observation, error)
	ObservationsByIdentifier(ctx context.Context, tx *gorm.DB, identifiers []string) ([]persistence.Observation, error)
	Children(ctx context.Context, tx *gorm.DB, parentIDs []int64) (map[int64][]persistence.Observation, error)
}

type Settings struct {
	MaxTimeSeries int64
	MaxValues     int64
	DefaultLocale string
	Streaming     streaming.Config
}

type Service struct {
	sessions database.SessionProvider
	repo     Repository
	builder  *query.Builder
	profiles profile.Handler
	settings Settings
	metrics  *metrics.Metrics
}

func NewService(sessions database.SessionProvider, repo Repository, builder *query.Builder, profiles profile.Handler, settings Settings, m *metrics.Metrics) *Service {
	return &Service{
		sessions: sessions,
		repo:     repo,
		builder:  builder,
		profiles: profiles,
		settings: settings,
		metrics:  m,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.GetObservation),
		operations.For(s.GetObservationByID),
	}
}

// GetObservation resolves the datasets that match the request and returns
// one series per dataset. The values of each series are streamed from the
// database when the response is encoded, so the caller must Close the
// response.
func (s *Service) GetObservation(ctx context.Context, req domain.GetObservationRequest) (resp *domain.GetObservationResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-observation")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	if err = validate(req); err != nil {
		return nil, err
	}

	prof := s.profiles.Active()

	temporal := req.TemporalFilters
	if len(temporal) == 0 && prof.ReturnLatestValueIfTemporalFilterIsMissing {
		temporal = []domain.TemporalFilter{{Operator: domain.TimeEquals, Indeterminate: domain.Latest}}
	}

	p, err := s.builder.Build(query.Input{
		Features:        req.FeatureIdentifiers,
		Procedures:      req.Procedures,
		Phenomena:       req.ObservedProperties,
		Offerings:       req.Offerings,
		SpatialFilters:  req.SpatialFilters,
		TemporalFilters: temporal,
		ResultFilter:    req.ResultFilter,
		MatchDomainIDs:  true,
		Locale:          s.locale(req.Language),
	})
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query observations")
	}
	defer s.sessions.Release(session)

	resp = &domain.GetObservationResponse{
		Version:        req.Version,
		ResponseFormat: req.ResponseFormat,
		Series:         []domain.ObservationSeries{},
	}

	if p.HasFeatureFilter() {
		var features []string
		features, err = s.repo.ResolveFeatures(ctx, session, p)
		if err != nil {
			return nil, ows.Wrap(err, "unable to resolve features of interest")
		}

		if len(features) == 0 {
			log.Debug().Msg("no features match the request, returning an empty response")
			return resp, nil
		}

		p = p.WithResolvedFeatures(features)
	}

	datasets, err := s.repo.Datasets(ctx, session, p, dao.DatasetOptions{})
	if err != nil {
		return nil, ows.Wrap(err, "unable to query datasets")
	}

	if len(datasets) == 0 {
		return resp, nil
	}

	if s.settings.MaxTimeSeries > 0 && int64(len(datasets)) > s.settings.MaxTimeSeries {
		return nil, ows.SizeLimitExceeded(MaxTimeSeriesLimit, s.settings.MaxTimeSeries, int64(len(datasets)))
	}

	log.Debug().Int("datasets", len(datasets)).Interface("query", p.Map()).Msg("datasets resolved")

	if p.Indeterminate != domain.Determinate {
		resp.Series, err = s.indeterminateSeries(ctx, session, datasets, p, prof)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	counts, err := s.repo.CountObservations(ctx, session, datasetIDs(datasets), p.Temporal)
	if err != nil {
		return nil, ows.Wrap(err, "unable to count observations")
	}

	selections := make([]dao.ObservationSelection, len(datasets))
	for i, ds := range datasets {
		selections[i] = dao.ObservationSelection{DatasetID: ds.ID, Temporal: p.Temporal}
		if req.CheckForDuplicity && counts[ds.ID] > 0 {
			selections[i].ExcludeSharedWith = SharedWith(datasets[:i], ds)
		}

		if len(selections[i].ExcludeSharedWith) > 0 {
			counts[ds.ID], err = s.repo.CountSelection(ctx, session, selections[i])
			if err != nil {
				return nil, ows.Wrap(err, "unable to count observations")
			}
		}
	}

	if s.settings.MaxValues > 0 {
		total := int64(0)
		for _, c := range counts {
			total += c
		}
		if total > s.settings.MaxValues {
			return nil, ows.SizeLimitExceeded(streaming.MaxValuesLimit, s.settings.MaxValues, total)
		}
	}

	budget := streaming.NewBudget(s.settings.MaxValues)

	for i, ds := range datasets {
		template := domain.NewObservationTemplate(ds)

		if counts[ds.ID] == 0 {
			if prof.ShowMetadataOfEmptyObservations {
				resp.Series = append(resp.Series, domain.ObservationSeries{Template: template})
			}
			continue
		}

		resp.Series = append(resp.Series, domain.ObservationSeries{
			Template: template,
			Values:   streaming.NewValue(s.sessions, s.repo, ds, selections[i], s.settings.Streaming, budget, s.metrics),
		})
	}

	return resp, nil
}

// SharedWith returns the ids of the datasets in earlier that describe the
// same procedure, property and feature as ds but belong to another offering
func SharedWith(earlier []domain.Dataset, ds domain.Dataset) []int64 {
	ids := []int64{}
	for _, e := range earlier {
		if e.Constellation() == ds.Constellation() && e.Offering.Identifier != ds.Offering.Identifier {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (s *Service) indeterminateSeries(ctx context.Context, tx *gorm.DB, datasets []domain.Dataset, p query.Params, prof profile.Profile) ([]domain.ObservationSeries, error) {
	candidates := datasets
	if prof.OverallExtrema {
		candidates = Extrema(datasets, p.Indeterminate)
	}

	series := []domain.ObservationSeries{}

	for _, ds := range candidates {
		var row *persistence.Observation
		var err error

		if p.Indeterminate == domain.First {
			row, err = s.repo.FirstObservation(ctx, tx, ds.ID, p.Temporal)
		} else {
			row, err = s.repo.LatestObservation(ctx, tx, ds.ID, p.Temporal)
		}
		if err != nil {
			return nil, ows.Wrap(err, "unable to resolve the %s observation", p.Indeterminate)
		}

		template := domain.NewObservationTemplate(ds)

		if row == nil {
			if prof.ShowMetadataOfEmptyObservations {
				series = append(series, domain.ObservationSeries{Template: template})
			}
			continue
		}

		observations, err := s.withChildren(ctx, tx, ds, []persistence.Observation{*row})
		if err != nil {
			return nil, err
		}

		series = append(series, domain.ObservationSeries{
			Template: template,
			Values:   streaming.NewStatic(observations...),
		})
	}

	return series, nil
}

// Extrema returns the datasets whose first (or last) value is the earliest
// (or latest) of all datasets. Every dataset that shares the extreme
// timestamp is returned.
func Extrema(datasets []domain.Dataset, which domain.Indeterminate) []domain.Dataset {
	edge := func(ds domain.Dataset) *time.Time {
		if which == domain.First {
			return ds.FirstValueAt
		}
		return ds.LastValueAt
	}

	var extreme *time.Time
	for _, ds := range datasets {
		t := edge(ds)
		if t == nil {
			continue
		}
		if extreme == nil ||
			(which == domain.First && t.Before(*extreme)) ||
			(which != domain.First && t.After(*extreme)) {
			extreme = t
		}
	}

	result := []domain.Dataset{}
	if extreme == nil {
		return result
	}

	for _, ds := range datasets {
		if t := edge(ds); t != nil && t.Equal(*extreme) {
			result = append(result, ds)
		}
	}

	return result
}

// GetObservationByID returns the observations with the requested
// identifiers grouped into one series per dataset
func (s *Service) GetObservationByID(ctx context.Context, req domain.GetObservationByIDRequest) (resp *domain.GetObservationResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-observation-by-id")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	if len(req.ObservationIdentifiers) == 0 {
		return nil, ows.MissingParameter("observation")
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query observations")
	}
	defer s.sessions.Release(session)

	rows, err := s.repo.ObservationsByIdentifier(ctx, session, req.ObservationIdentifiers)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query observations")
	}

	found := map[string]bool{}
	byDataset := map[int64][]persistence.Observation{}
	order := []int64{}

	for _, row := range rows {
		if row.Identifier != nil {
			found[*row.Identifier] = true
		}
		if _, ok := byDataset[row.DatasetID]; !ok {
			order = append(order, row.DatasetID)
		}
		byDataset[row.DatasetID] = append(byDataset[row.DatasetID], row)
	}

	for _, id := range req.ObservationIdentifiers {
		if !found[id] {
			return nil, ows.InvalidParameter("observation", "the observation %s does not exist", id)
		}
	}

	datasets, err := s.repo.DatasetsByID(ctx, session, order, s.locale(req.Language))
	if err != nil {
		return nil, ows.Wrap(err, "unable to query datasets")
	}

	resp = &domain.GetObservationResponse{
		Version:        req.Version,
		ResponseFormat: req.ResponseFormat,
		Series:         make([]domain.ObservationSeries, 0, len(datasets)),
	}

	for _, ds := range datasets {
		observations, err := s.withChildren(ctx, session, ds, byDataset[ds.ID])
		if err != nil {
			return nil, err
		}

		resp.Series = append(resp.Series, domain.ObservationSeries{
			Template: domain.NewObservationTemplate(ds),
			Values:   streaming.NewStatic(observations...),
		})
	}

	return resp, nil
}

func (s *Service) withChildren(ctx context.Context, tx *gorm.DB, ds domain.Dataset, rows []persistence.Observation) ([]domain.Observation, error) {
	result := make([]domain.Observation, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.ToDomain(ds.ValueType, ds.Unit))
	}

	if ds.ValueType != domain.ProfileValue {
		return result, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	children, err := s.repo.Children(ctx, tx, ids)
	if err != nil {
		return nil, ows.Wrap(err, "unable to query profile levels of dataset %d", ds.ID)
	}

	for i := range result {
		for _, child := range children[result[i].ID] {
			result[i].Children = append(result[i].Children, child.ToDomain(child.InferValueType(), ds.Unit))
		}
	}

	return result, nil
}

func (s *Service) locale(requested string) string {
	if requested != "" {
		return requested
	}
	return s.settings.DefaultLocale
}

func validate(req domain.GetObservationRequest) error {
	if req.IsVersion100() {
		if len(req.Offerings) == 0 {
			return ows.MissingParameter("offering")
		}
		if len(req.ObservedProperties) == 0 {
			return ows.MissingParameter("observedProperty")
		}
	}

	values := map[string][]string{
		"offering":          req.Offerings,
		"observedProperty":  req.ObservedProperties,
		"procedure":         req.Procedures,
		"featureOfInterest": req.FeatureIdentifiers,
	}

	for name, v := range values {
		if err := noEmptyValues(name, v); err != nil {
			return err
		}
	}

	return nil
}

func noEmptyValues(name string, values []string) error {
	for i, v := range values {
		if v == "" {
			return ows.InvalidParameter(name, "value %d of %s is empty", i+1, name)
		}
	}
	return nil
}

func datasetIDs(datasets []domain.Dataset) []int64 {
	ids := make([]int64, 0, len(datasets))
	for _, ds := range datasets {
		ids = append(ids, ds.ID)
	}
	return ids
}
