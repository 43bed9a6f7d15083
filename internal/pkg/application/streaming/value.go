// Package streaming wraps observation queries as lazily evaluated values
// that are pulled by the response encoder.
package streaming

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"gorm.io/gorm"
)

type Mode string

const (
	Chunked    Mode = "chunk"
	Scrollable Mode = "scroll"
)

const DefaultChunkSize int = 1000

type Config struct {
	Mode      Mode
	ChunkSize int
}

const MaxValuesLimit string = "maxNumberOfReturnedValues"

// Budget is the number of values all series of one response may stream
type Budget struct {
	limit int64
	used  atomic.Int64
}

// NewBudget returns a budget of limit values, zero or less means unlimited
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Take() error {
	if b == nil || b.limit <= 0 {
		return nil
	}
	used := b.used.Add(1)
	if used > b.limit {
		return ows.SizeLimitExceeded(MaxValuesLimit, b.limit, used)
	}
	return nil
}

func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

type ChildLoader interface {
	Children(ctx context.Context, tx *gorm.DB, parentIDs []int64) (map[int64][]persistence.Observation, error)
}

// Value streams the observations of one dataset. A session is acquired on
// the first call to Next and released when the observations are exhausted,
// when an error occurs or when Close is called.
type Value struct {
	sessions  database.SessionProvider
	children  ChildLoader
	dataset   domain.Dataset
	selection dao.ObservationSelection
	cfg       Config
	budget    *Budget
	metrics   *metrics.Metrics

	session *gorm.DB
	current domain.Observation
	err     error
	closed  bool

	buffer    []domain.Observation
	pos       int
	lastStart time.Time
	lastID    int64
	started   bool
	exhausted bool

	rows *sql.Rows
}

func NewValue(sessions database.SessionProvider, children ChildLoader, ds domain.Dataset, selection dao.ObservationSelection, cfg Config, budget *Budget, m *metrics.Metrics) *Value {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Mode == "" {
		cfg.Mode = Chunked
	}

	selection.DatasetID = ds.ID

	return &Value{
		sessions:  sessions,
		children:  children,
		dataset:   ds,
		selection: selection,
		cfg:       cfg,
		budget:    budget,
		metrics:   m,
	}
}

func (v *Value) Next(ctx context.Context) bool {
	if v.closed || v.err != nil {
		return false
	}

	if v.session == nil {
		if v.exhausted {
			return false
		}

		session, err := v.sessions.Acquire(ctx)
		if err != nil {
			v.err = ows.Wrap(err, "unable to acquire a session for dataset %d", v.dataset.ID)
			return false
		}
		v.session = session
	}

	var ok bool
	if v.cfg.Mode == Scrollable {
		ok = v.nextScrolled(ctx)
	} else {
		ok = v.nextChunked(ctx)
	}

	if !ok {
		v.exhausted = true
		v.release()
		return false
	}

	if err := v.budget.Take(); err != nil {
		v.err = err
		v.release()
		return false
	}

	v.metrics.ValueStreamed()
	return true
}

func (v *Value) Observation() domain.Observation {
	return v.current
}

func (v *Value) Err() error {
	return v.err
}

// Close releases the cursor and the session. It is safe to call Close more
// than once and after the values have been exhausted.
func (v *Value) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.release()
}

func (v *Value) release() error {
	var err error
	if v.rows != nil {
		err = v.rows.Close()
		v.rows = nil
	}
	if v.session != nil {
		v.sessions.Release(v.session)
		v.session = nil
	}
	v.buffer = nil
	return err
}

func (v *Value) nextChunked(ctx context.Context) bool {
	if v.pos < len(v.buffer) {
		v.current = v.buffer[v.pos]
		v.pos++
		return true
	}

	if v.started && v.exhausted {
		return false
	}

	q := dao.ObservationQuery(v.session.WithContext(ctx), v.selection)
	if v.started {
		q = q.Where("(observations.phenomenon_time_start > ? OR (observations.phenomenon_time_start = ? AND observations.id > ?))",
			v.lastStart, v.lastStart, v.lastID)
	}

	rows := []persistence.Observation{}
	err := q.Order("observations.phenomenon_time_start, observations.id").Limit(v.cfg.ChunkSize).Find(&rows).Error
	if err != nil {
		v.err = ows.Wrap(err, "failed to fetch observations of dataset %d", v.dataset.ID)
		return false
	}

	v.started = true
	if len(rows) < v.cfg.ChunkSize {
		v.exhausted = true
	}
	if len(rows) == 0 {
		return false
	}

	last := rows[len(rows)-1]
	v.lastStart, v.lastID = last.PhenomenonTimeStart, last.ID

	v.buffer, err = v.toDomain(ctx, rows)
	if err != nil {
		v.err = err
		return false
	}

	v.current = v.buffer[0]
	v.pos = 1
	return true
}

func (v *Value) nextScrolled(ctx context.Context) bool {
	if v.rows == nil {
		rows, err := dao.ObservationQuery(v.session.WithContext(ctx), v.selection).
			Order("observations.phenomenon_time_start, observations.id").
			Rows()
		if err != nil {
			v.err = ows.Wrap(err, "failed to open a cursor for dataset %d", v.dataset.ID)
			return false
		}
		v.rows = rows
	}

	if !v.rows.Next() {
		if err := v.rows.Err(); err != nil {
			v.err = ows.Wrap(err, "failed to read observations of dataset %d", v.dataset.ID)
		}
		return false
	}

	row := persistence.Observation{}
	if err := v.session.ScanRows(v.rows, &row); err != nil {
		v.err = ows.Wrap(err, "failed to scan observation of dataset %d", v.dataset.ID)
		return false
	}

	obs, err := v.toDomain(ctx, []persistence.Observation{row})
	if err != nil {
		v.err = err
		return false
	}

	v.current = obs[0]
	return true
}

func (v *Value) toDomain(ctx context.Context, rows []persistence.Observation) ([]domain.Observation, error) {
	result := make([]domain.Observation, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.ToDomain(v.dataset.ValueType, v.dataset.Unit))
	}

	if v.dataset.ValueType != domain.ProfileValue || v.children == nil {
		return result, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	children, err := v.children.Children(ctx, v.session, ids)
	if err != nil {
		return nil, ows.Wrap(err, "failed to fetch profile levels of dataset %d", v.dataset.ID)
	}

	for i := range result {
		for _, child := range children[result[i].ID] {
			result[i].Children = append(result[i].Children, child.ToDomain(child.InferValueType(), v.dataset.Unit))
		}
	}

	return result, nil
}

// Static is a value over observations that have already been loaded
type Static struct {
	observations []domain.Observation
	pos          int
	current      domain.Observation
}

func NewStatic(observations ...domain.Observation) *Static {
	return &Static{observations: observations}
}

func (s *Static) Next(ctx context.Context) bool {
	if s.pos >= len(s.observations) {
		return false
	}
	s.current = s.observations[s.pos]
	s.pos++
	return true
}

func (s *Static) Observation() domain.Observation {
	return s.current
}

func (s *Static) Err() error {
	return nil
}

func (s *Static) Close() error {
	s.pos = len(s.observations)
	return nil
}

// Collect drains it into a slice and closes it
func Collect(ctx context.Context, it domain.ValueIterator) ([]domain.Observation, error) {
	defer it.Close()

	result := []domain.Observation{}
	for it.Next(ctx) {
		result = append(result, it.Observation())
	}

	if err := it.Err(); err != nil {
		return result, fmt.Errorf("streaming stopped after %d values: %w", len(result), err)
	}

	return result, nil
}
