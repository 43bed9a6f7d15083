package cache

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("api-sos/cache")

const DefaultThreads int = 5

//go:generate moq -rm -out repository_mock.go . Repository
type Repository interface {
	Offerings(ctx context.Context, tx *gorm.DB, identifiers []string) ([]domain.Offering, error)
	OfferingNames(ctx context.Context, tx *gorm.DB) (map[string]map[string]string, error)
	OfferingHierarchy(ctx context.Context, tx *gorm.DB) (dao.Hierarchy, error)
	PhenomenonHierarchy(ctx context.Context, tx *gorm.DB) (dao.Hierarchy, error)
	Datasets(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.DatasetOptions) ([]domain.Dataset, error)
	Features(ctx context.Context, tx *gorm.DB, p query.Params, opts dao.FeatureOptions) ([]domain.Feature, error)
	ResultTimeExtent(ctx context.Context, tx *gorm.DB, datasetIDs []int64) (domain.TimePeriod, error)
}

// Feeder rebuilds the content cache. Updates are serialized so that a
// partial update never overwrites the result of a concurrent full one.
type Feeder struct {
	mu       sync.Mutex
	cache    *Cache
	sessions database.SessionProvider
	repo     Repository
	threads  int
	metrics  *metrics.Metrics
}

func NewFeeder(c *Cache, sessions database.SessionProvider, repo Repository, threads int, m *metrics.Metrics) *Feeder {
	if threads < 1 {
		threads = DefaultThreads
	}

	return &Feeder{
		cache:    c,
		sessions: sessions,
		repo:     repo,
		threads:  threads,
		metrics:  m,
	}
}

// UpdateCache rebuilds the content of every offering. Offerings that fail
// keep their previous content and the failures are returned together once
// all offerings have been processed.
func (f *Feeder) UpdateCache(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "update-cache")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return f.update(ctx, "full", nil)
}

// UpdateCacheOfferings rebuilds the content of the given offerings only.
// Offerings that no longer exist are removed from the cache.
func (f *Feeder) UpdateCacheOfferings(ctx context.Context, identifiers []string) (err error) {
	ctx, span := tracer.Start(ctx, "update-cache-offerings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if len(identifiers) == 0 {
		return nil
	}

	return f.update(ctx, "partial", identifiers)
}

type outcome struct {
	offering Offering
	err      error
}

func (f *Feeder) update(ctx context.Context, kind string, identifiers []string) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	started := time.Now()
	log := logging.GetFromContext(ctx)

	var installed *Snapshot
	defer func() {
		count := len(f.cache.Get().offerings)
		if installed != nil {
			count = len(installed.offerings)
		}
		f.metrics.ObserveCacheUpdate(kind, err, started, count)
	}()

	session, err := f.sessions.Acquire(ctx)
	if err != nil {
		return ows.Wrap(err, "unable to update the capabilities cache")
	}
	defer f.sessions.Release(session)

	offerings, err := f.repo.Offerings(ctx, session, identifiers)
	if err != nil {
		return ows.Wrap(err, "unable to update the capabilities cache")
	}

	hierarchy, err := f.repo.OfferingHierarchy(ctx, session)
	if err != nil {
		return ows.Wrap(err, "unable to update the capabilities cache")
	}

	phenomena, err := f.repo.PhenomenonHierarchy(ctx, session)
	if err != nil {
		return ows.Wrap(err, "unable to update the capabilities cache")
	}

	names, err := f.repo.OfferingNames(ctx, session)
	if err != nil {
		return ows.Wrap(err, "unable to update the capabilities cache")
	}

	outcomes := make([]outcome, len(offerings))

	g := errgroup.Group{}
	g.SetLimit(f.threads)

	for i, o := range offerings {
		g.Go(func() error {
			content, err := f.offering(ctx, session, o)
			if err != nil {
				outcomes[i].err = ows.Wrap(err, "unable to update the cache of offering %s", o.Identifier)
				return nil
			}
			outcomes[i].offering = content
			return nil
		})
	}

	_ = g.Wait()

	previous := f.cache.Get()
	next := map[string]Offering{}

	if identifiers != nil {
		for id, o := range previous.offerings {
			next[id] = o
		}
		for _, id := range identifiers {
			delete(next, id)
		}
	}

	errs := &ows.Composite{}

	for i, result := range outcomes {
		id := offerings[i].Identifier

		if result.err != nil {
			errs.Add(result.err)
			if old, ok := previous.offerings[id]; ok {
				next[id] = old
			}
			continue
		}

		next[id] = result.offering
	}

	for id, o := range next {
		o.Parents = hierarchy.Parents(id)
		o.Children = hierarchy.Children(id)
		o.Names = names[id]
		next[id] = o
	}

	installed = newSnapshot(next, phenomenonRelations(phenomena, next), time.Now().UTC())
	f.cache.install(installed)

	log.Info().Str("kind", kind).Int("offerings", len(next)).Int("failed", len(errs.Exceptions)).Msg("capabilities cache updated")

	return errs.ErrOrNil()
}

func (f *Feeder) offering(ctx context.Context, tx *gorm.DB, o domain.Offering) (Offering, error) {
	p := query.Params{Offerings: []string{o.Identifier}, MatchDomainIDs: true}

	datasets, err := f.repo.Datasets(ctx, tx, p, dao.DatasetOptions{ExcludeHidden: true})
	if err != nil {
		return Offering{}, err
	}

	content := Offering{
		Identifier:  o.Identifier,
		Name:        o.Name,
		Description: o.Description,
	}

	procedures := set{}
	properties := set{}
	features := set{}
	types := set{}
	ids := make([]int64, 0, len(datasets))

	for _, ds := range datasets {
		procedures.add(ds.Procedure.Identifier)
		properties.add(ds.Phenomenon.Identifier)
		features.add(ds.Feature.Identifier)
		types.add(ds.ValueType.ObservationType())
		content.PhenomenonTime.ExtendToContain(ds.Extent())
		if ds.ObservationCount > 0 {
			ids = append(ids, ds.ID)
		}
	}

	content.Procedures = procedures.sorted()
	content.ObservableProperties = properties.sorted()
	content.Features = features.sorted()
	content.ObservationTypes = types.sorted()

	if len(datasets) == 0 {
		return content, nil
	}

	located, err := f.repo.Features(ctx, tx, query.Params{Features: content.Features, MatchDomainIDs: true}, dao.FeatureOptions{})
	if err != nil {
		return Offering{}, err
	}

	for _, feature := range located {
		content.Envelope = domain.ExpandEnvelope(content.Envelope, feature.Geometry)
	}

	content.ResultTime, err = f.repo.ResultTimeExtent(ctx, tx, ids)
	if err != nil {
		return Offering{}, err
	}

	return content, nil
}

func phenomenonRelations(h dao.Hierarchy, offerings map[string]Offering) map[string][]string {
	relations := map[string][]string{}
	for _, o := range offerings {
		for _, property := range o.ObservableProperties {
			for _, parent := range h.Parents(property) {
				relations[parent] = h.Children(parent)
			}
		}
	}
	return relations
}
