// Package dao executes the queries of the observation handlers and the cache
// feeder. Every function runs on a session acquired by the caller.
package dao

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"gorm.io/gorm"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type DatasetOptions struct {
	ExcludeHidden        bool
	OnlyWithObservations bool
}

type datasetRow struct {
	ID               int64
	ValueType        string
	Unit             string
	Description      string
	FirstValueAt     *time.Time
	LastValueAt      *time.Time
	ObservationCount int64
	Deleted          bool
	Published        bool
	Hidden           bool

	ProcedureIdentifier        string
	ProcedureName              string
	ProcedureDescriptionFormat string
	PhenomenonIdentifier       string
	PhenomenonName             string
	FeatureIdentifier          string
	FeatureName                string
	OfferingIdentifier         string
	OfferingName               string
}

func (r datasetRow) toDomain() domain.Dataset {
	ds := domain.Dataset{
		ID:                         r.ID,
		Procedure:                  domain.Reference{Identifier: r.ProcedureIdentifier, Name: r.ProcedureName},
		Phenomenon:                 domain.Reference{Identifier: r.PhenomenonIdentifier, Name: r.PhenomenonName},
		Feature:                    domain.Reference{Identifier: r.FeatureIdentifier, Name: r.FeatureName},
		Offering:                   domain.Reference{Identifier: r.OfferingIdentifier, Name: r.OfferingName},
		ValueType:                  domain.ValueType(r.ValueType),
		Unit:                       r.Unit,
		Description:                r.Description,
		ObservationCount:           r.ObservationCount,
		Deleted:                    r.Deleted,
		Published:                  r.Published,
		Hidden:                     r.Hidden,
		ProcedureDescriptionFormat: r.ProcedureDescriptionFormat,
	}

	if r.FirstValueAt != nil {
		t := r.FirstValueAt.UTC()
		ds.FirstValueAt = &t
	}
	if r.LastValueAt != nil {
		t := r.LastValueAt.UTC()
		ds.LastValueAt = &t
	}

	return ds
}

const datasetColumns string = `datasets.id, datasets.value_type, datasets.unit, datasets.description,
	datasets.first_value_at, datasets.last_value_at, datasets.observation_count,
	datasets.deleted, datasets.published, datasets.hidden,
	procedures.identifier AS procedure_identifier,
	COALESCE(pri.name, procedures.name) AS procedure_name,
	procedures.description_format AS procedure_description_format,
	phenomena.identifier AS phenomenon_identifier,
	COALESCE(phi.name, phenomena.name) AS phenomenon_name,
	features.identifier AS feature_identifier,
	COALESCE(fi.name, features.name) AS feature_name,
	offerings.identifier AS offering_identifier,
	COALESCE(oi.name, offerings.name) AS offering_name`

func datasetQuery(tx *gorm.DB, locale string) *gorm.DB {
	return tx.Table("datasets").
		Select(datasetColumns).
		Joins("JOIN procedures ON procedures.id = datasets.procedure_id").
		Joins("JOIN phenomena ON phenomena.id = datasets.phenomenon_id").
		Joins("JOIN features ON features.id = datasets.feature_id").
		Joins("JOIN offerings ON offerings.id = datasets.offering_id").
		Joins("LEFT JOIN procedure_i18n pri ON pri.entity_id = procedures.id AND pri.locale = ?", locale).
		Joins("LEFT JOIN phenomenon_i18n phi ON phi.entity_id = phenomena.id AND phi.locale = ?", locale).
		Joins("LEFT JOIN feature_i18n fi ON fi.entity_id = features.id AND fi.locale = ?", locale).
		Joins("LEFT JOIN offering_i18n oi ON oi.entity_id = offerings.id AND oi.locale = ?", locale).
		Where("datasets.deleted = ? AND datasets.published = ? AND procedures.deleted = ?", false, true, false)
}

// Datasets returns the visible datasets that match the references, the
// spatial restriction and the result filter of p, ordered by id
func (r *Repository) Datasets(ctx context.Context, tx *gorm.DB, p query.Params, opts DatasetOptions) ([]domain.Dataset, error) {
	q := datasetQuery(tx.WithContext(ctx), p.Locale)

	if opts.ExcludeHidden {
		q = q.Where("datasets.hidden = ?", false)
	}
	if opts.OnlyWithObservations {
		q = q.Where("datasets.observation_count > ?", 0)
	}

	q, err := whereReferences(q, p)
	if err != nil {
		return nil, err
	}

	q = whereGeometry(q, p)
	q = where(q, p.ResultFilter)

	rows := []datasetRow{}
	err = q.Order("datasets.id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}

	datasets := make([]domain.Dataset, 0, len(rows))
	for _, row := range rows {
		datasets = append(datasets, row.toDomain())
	}

	return datasets, nil
}

// DatasetsByID returns the visible datasets among ids
func (r *Repository) DatasetsByID(ctx context.Context, tx *gorm.DB, ids []int64, locale string) ([]domain.Dataset, error) {
	if len(ids) == 0 {
		return []domain.Dataset{}, nil
	}

	rows := []datasetRow{}
	err := datasetQuery(tx.WithContext(ctx), locale).
		Where("datasets.id IN ?", ids).
		Order("datasets.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets by id: %w", err)
	}

	datasets := make([]domain.Dataset, 0, len(rows))
	for _, row := range rows {
		datasets = append(datasets, row.toDomain())
	}

	return datasets, nil
}

type reference struct {
	identifierColumn string
	idColumn         string
	values           []string
}

func references(p query.Params) []reference {
	return []reference{
		{"procedures.identifier", "datasets.procedure_id", p.Procedures},
		{"phenomena.identifier", "datasets.phenomenon_id", p.Phenomena},
		{"features.identifier", "datasets.feature_id", p.Features},
		{"offerings.identifier", "datasets.offering_id", p.Offerings},
	}
}

func whereReferences(q *gorm.DB, p query.Params) (*gorm.DB, error) {
	for _, ref := range references(p) {
		if len(ref.values) == 0 {
			continue
		}

		if p.MatchDomainIDs {
			q = q.Where(ref.identifierColumn+" IN ?", ref.values)
			continue
		}

		ids, err := toIDs(ref.values)
		if err != nil {
			return nil, err
		}
		q = q.Where(ref.idColumn+" IN ?", ids)
	}

	return q, nil
}

// whereGeometry restricts features to those intersecting the envelope or
// located exactly at the location of p
func whereGeometry(q *gorm.DB, p query.Params) *gorm.DB {
	if e := p.Envelope; e != nil {
		q = q.Where("features.max_x >= ? AND features.min_x <= ? AND features.max_y >= ? AND features.min_y <= ?",
			e.MinX, e.MaxX, e.MinY, e.MaxY)
	}
	if l := p.Location; l != nil {
		q = q.Where("features.min_x = ? AND features.max_x = ? AND features.min_y = ? AND features.max_y = ?",
			l.MinX, l.MinX, l.MinY, l.MinY)
	}
	return q
}

func where(q *gorm.DB, c *query.Clause) *gorm.DB {
	if c == nil || c.SQL == "" {
		return q
	}
	return q.Where("("+c.SQL+")", c.Args...)
}

func toIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid database id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
