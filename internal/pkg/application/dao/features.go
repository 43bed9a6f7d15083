package dao

import (
	"context"
	"fmt"

	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"gorm.io/gorm"
)

type FeatureOptions struct {
	// OnlyWithDatasets restricts the result to features that are the feature
	// of interest of at least one visible dataset
	OnlyWithDatasets bool
}

// ResolveFeatures returns the identifiers of the features matching the
// feature identifiers and the spatial restriction of p
func (r *Repository) ResolveFeatures(ctx context.Context, tx *gorm.DB, p query.Params) ([]string, error) {
	q := tx.WithContext(ctx).Model(&persistence.Feature{})

	q, err := whereFeatureIdentifiers(q, p)
	if err != nil {
		return nil, err
	}

	identifiers := []string{}
	err = whereGeometry(q, p).Order("features.identifier").Pluck("features.identifier", &identifiers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve features: %w", err)
	}

	return identifiers, nil
}

type featureRow struct {
	persistence.Feature
	TranslatedName string
}

// Features returns the features matching p. When p restricts procedures,
// phenomena or offerings, or opts demands it, only features observed by a
// matching visible dataset are returned.
func (r *Repository) Features(ctx context.Context, tx *gorm.DB, p query.Params, opts FeatureOptions) ([]domain.Feature, error) {
	q := tx.WithContext(ctx).
		Table("features").
		Select("features.*, COALESCE(fi.name, features.name) AS translated_name").
		Joins("LEFT JOIN feature_i18n fi ON fi.entity_id = features.id AND fi.locale = ?", p.Locale)

	q, err := whereFeatureIdentifiers(q, p)
	if err != nil {
		return nil, err
	}
	q = whereGeometry(q, p)

	if opts.OnlyWithDatasets || len(p.Procedures) > 0 || len(p.Phenomena) > 0 || len(p.Offerings) > 0 {
		sub := tx.Table("datasets").
			Select("datasets.feature_id").
			Joins("JOIN procedures ON procedures.id = datasets.procedure_id").
			Joins("JOIN phenomena ON phenomena.id = datasets.phenomenon_id").
			Joins("JOIN offerings ON offerings.id = datasets.offering_id").
			Where("datasets.deleted = ? AND datasets.published = ? AND procedures.deleted = ?", false, true, false)

		scope := p
		scope.Features = nil
		sub, err = whereReferences(sub, scope)
		if err != nil {
			return nil, err
		}

		q = q.Where("features.id IN (?)", sub)
	}

	rows := []featureRow{}
	err = q.Order("features.identifier").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}

	features := make([]domain.Feature, 0, len(rows))
	for _, row := range rows {
		f := row.Feature.ToDomain()
		f.Name = row.TranslatedName
		features = append(features, f)
	}

	return features, nil
}

func whereFeatureIdentifiers(q *gorm.DB, p query.Params) (*gorm.DB, error) {
	if len(p.Features) == 0 {
		return q, nil
	}

	if p.MatchDomainIDs {
		return q.Where("features.identifier IN ?", p.Features), nil
	}

	ids, err := toIDs(p.Features)
	if err != nil {
		return nil, err
	}
	return q.Where("features.id IN ?", ids), nil
}
