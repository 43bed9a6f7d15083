package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"gorm.io/gorm"
)

// ObservationSelection describes the observations of one dataset that a
// query should return
type ObservationSelection struct {
	DatasetID int64
	Temporal  *query.Clause
	// ExcludeSharedWith drops observations whose identifier also occurs in
	// one of these datasets. Observations without identifier are kept.
	ExcludeSharedWith []int64
}

// ObservationQuery returns an unordered query for the top level observations
// of the selection
func ObservationQuery(tx *gorm.DB, s ObservationSelection) *gorm.DB {
	q := tx.Model(&persistence.Observation{}).
		Where("observations.dataset_id = ? AND observations.parent_id IS NULL AND observations.deleted = ?", s.DatasetID, false)

	q = where(q, s.Temporal)

	if len(s.ExcludeSharedWith) > 0 {
		shared := tx.Model(&persistence.Observation{}).
			Select("identifier").
			Where("dataset_id IN ? AND identifier IS NOT NULL AND deleted = ?", s.ExcludeSharedWith, false)
		q = q.Where("(observations.identifier IS NULL OR observations.identifier NOT IN (?))", shared)
	}

	return q
}

// Children returns the profile children of the given observations grouped
// by parent id and ordered by vertical position
func (r *Repository) Children(ctx context.Context, tx *gorm.DB, parentIDs []int64) (map[int64][]persistence.Observation, error) {
	result := map[int64][]persistence.Observation{}
	if len(parentIDs) == 0 {
		return result, nil
	}

	rows := []persistence.Observation{}
	err := tx.WithContext(ctx).
		Where("parent_id IN ? AND deleted = ?", parentIDs, false).
		Order("parent_id, vertical_from, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query profile children: %w", err)
	}

	for _, row := range rows {
		result[*row.ParentID] = append(result[*row.ParentID], row)
	}

	return result, nil
}

// CountObservations returns the number of matching top level observations
// per dataset. Datasets without matches are absent from the map.
func (r *Repository) CountObservations(ctx context.Context, tx *gorm.DB, datasetIDs []int64, temporal *query.Clause) (map[int64]int64, error) {
	counts := map[int64]int64{}
	if len(datasetIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		DatasetID int64
		Total     int64
	}

	q := tx.WithContext(ctx).
		Model(&persistence.Observation{}).
		Select("dataset_id, COUNT(*) AS total").
		Where("dataset_id IN ? AND parent_id IS NULL AND deleted = ?", datasetIDs, false)

	rows := []countRow{}
	err := where(q, temporal).Group("dataset_id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count observations: %w", err)
	}

	for _, row := range rows {
		counts[row.DatasetID] = row.Total
	}

	return counts, nil
}

// CountSelection returns the number of top level observations of a single
// selection, honouring its shared identifier exclusion
func (r *Repository) CountSelection(ctx context.Context, tx *gorm.DB, selection ObservationSelection) (int64, error) {
	var total int64
	err := ObservationQuery(tx.WithContext(ctx), selection).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count observations of dataset %d: %w", selection.DatasetID, err)
	}
	return total, nil
}

// FirstObservation returns the earliest matching observation of the
// dataset, or nil if there is none
func (r *Repository) FirstObservation(ctx context.Context, tx *gorm.DB, datasetID int64, temporal *query.Clause) (*persistence.Observation, error) {
	return r.edgeObservation(ctx, tx, datasetID, temporal, "phenomenon_time_start ASC, id ASC")
}

// LatestObservation returns the latest matching observation of the
// dataset, or nil if there is none
func (r *Repository) LatestObservation(ctx context.Context, tx *gorm.DB, datasetID int64, temporal *query.Clause) (*persistence.Observation, error) {
	return r.edgeObservation(ctx, tx, datasetID, temporal, "phenomenon_time_end DESC, id DESC")
}

func (r *Repository) edgeObservation(ctx context.Context, tx *gorm.DB, datasetID int64, temporal *query.Clause, order string) (*persistence.Observation, error) {
	rows := []persistence.Observation{}
	err := ObservationQuery(tx.WithContext(ctx), ObservationSelection{DatasetID: datasetID, Temporal: temporal}).
		Order(order).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query observation of dataset %d: %w", datasetID, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// ObservationsByIdentifier returns the observations with the given
// identifiers that belong to visible datasets
func (r *Repository) ObservationsByIdentifier(ctx context.Context, tx *gorm.DB, identifiers []string) ([]persistence.Observation, error) {
	rows := []persistence.Observation{}
	if len(identifiers) == 0 {
		return rows, nil
	}

	err := tx.WithContext(ctx).
		Select("observations.*").
		Joins("JOIN datasets ON datasets.id = observations.dataset_id").
		Where("observations.identifier IN ? AND observations.deleted = ? AND observations.parent_id IS NULL", identifiers, false).
		Where("datasets.deleted = ? AND datasets.published = ?", false, true).
		Order("observations.dataset_id, observations.phenomenon_time_start, observations.id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query observations by identifier: %w", err)
	}

	return rows, nil
}

// ObservationStats answers the optional count and result time questions of
// GetDataAvailability. It is only consulted when IsSupported reports true.
type ObservationStats struct {
	repo    *Repository
	enabled bool
}

func NewObservationStats(repo *Repository, enabled bool) *ObservationStats {
	return &ObservationStats{repo: repo, enabled: enabled}
}

func (s *ObservationStats) IsSupported() bool {
	return s != nil && s.enabled
}

func (s *ObservationStats) Count(ctx context.Context, tx *gorm.DB, datasetID int64) (int64, error) {
	counts, err := s.repo.CountObservations(ctx, tx, []int64{datasetID}, nil)
	if err != nil {
		return 0, err
	}
	return counts[datasetID], nil
}

func (s *ObservationStats) ResultTimes(ctx context.Context, tx *gorm.DB, datasetID int64) ([]time.Time, error) {
	times := []time.Time{}
	err := tx.WithContext(ctx).
		Model(&persistence.Observation{}).
		Where("dataset_id = ? AND parent_id IS NULL AND deleted = ?", datasetID, false).
		Distinct().
		Order("result_time").
		Pluck("result_time", &times).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query result times of dataset %d: %w", datasetID, err)
	}

	for i := range times {
		times[i] = times[i].UTC()
	}

	return times, nil
}

// ResultTimeExtent returns the period spanned by the result times of the
// datasets, or an empty period if they have no observations
func (r *Repository) ResultTimeExtent(ctx context.Context, tx *gorm.DB, datasetIDs []int64) (domain.TimePeriod, error) {
	if len(datasetIDs) == 0 {
		return domain.TimePeriod{}, nil
	}

	edge := func(order string) (*persistence.Observation, error) {
		rows := []persistence.Observation{}
		err := tx.WithContext(ctx).
			Where("dataset_id IN ? AND parent_id IS NULL AND deleted = ?", datasetIDs, false).
			Order(order).
			Limit(1).
			Find(&rows).Error
		if err != nil || len(rows) == 0 {
			return nil, err
		}
		return &rows[0], nil
	}

	first, err := edge("result_time ASC")
	if err != nil {
		return domain.TimePeriod{}, fmt.Errorf("failed to query result time extent: %w", err)
	}
	if first == nil {
		return domain.TimePeriod{}, nil
	}

	last, err := edge("result_time DESC")
	if err != nil {
		return domain.TimePeriod{}, fmt.Errorf("failed to query result time extent: %w", err)
	}

	return domain.NewPeriod(first.ResultTime, last.ResultTime), nil
}
