package dao

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"gorm.io/gorm"
)

var ErrCycle = errors.New("hierarchy contains a cycle")

// Hierarchy is a parent/child relation between identifiers, loaded from
// offering_hierarchy or phenomenon_hierarchy
type Hierarchy struct {
	children map[string][]string
	parents  map[string][]string
}

func NewHierarchy() Hierarchy {
	return Hierarchy{
		children: map[string][]string{},
		parents:  map[string][]string{},
	}
}

func (h Hierarchy) Add(parent, child string) {
	h.children[parent] = append(h.children[parent], child)
	h.parents[child] = append(h.parents[child], parent)
}

func (h Hierarchy) Children(id string) []string {
	return sorted(h.children[id])
}

func (h Hierarchy) Parents(id string) []string {
	return sorted(h.parents[id])
}

func (h Hierarchy) HasChildren(id string) bool {
	return len(h.children[id]) > 0
}

// Descendants walks the tree below id and returns every child, grandchild
// and so on exactly once. A cycle on the walked path yields ErrCycle.
func (h Hierarchy) Descendants(id string) ([]string, error) {
	seen := map[string]bool{}
	onPath := map[string]bool{id: true}
	result := []string{}

	var walk func(string) error
	walk = func(node string) error {
		for _, child := range h.children[node] {
			if onPath[child] {
				return fmt.Errorf("%w: %s is its own ancestor", ErrCycle, child)
			}
			if seen[child] {
				continue
			}
			seen[child] = true
			result = append(result, child)

			onPath[child] = true
			if err := walk(child); err != nil {
				return err
			}
			delete(onPath, child)
		}
		return nil
	}

	if err := walk(id); err != nil {
		return nil, err
	}

	return sorted(result), nil
}

func sorted(s []string) []string {
	out := append([]string{}, s...)
	sort.Strings(out)
	return out
}

type relationRow struct {
	Parent string
	Child  string
}

func (r *Repository) OfferingHierarchy(ctx context.Context, tx *gorm.DB) (Hierarchy, error) {
	return loadHierarchy(ctx, tx, "offering_hierarchy", "offerings")
}

func (r *Repository) PhenomenonHierarchy(ctx context.Context, tx *gorm.DB) (Hierarchy, error) {
	return loadHierarchy(ctx, tx, "phenomenon_hierarchy", "phenomena")
}

func loadHierarchy(ctx context.Context, tx *gorm.DB, relation, entity string) (Hierarchy, error) {
	rows := []relationRow{}
	err := tx.WithContext(ctx).
		Table(relation).
		Select("p.identifier AS parent, c.identifier AS child").
		Joins("JOIN " + entity + " p ON p.id = " + relation + ".parent_id").
		Joins("JOIN " + entity + " c ON c.id = " + relation + ".child_id").
		Order("p.identifier, c.identifier").
		Scan(&rows).Error
	if err != nil {
		return Hierarchy{}, fmt.Errorf("failed to load %s: %w", relation, err)
	}

	h := NewHierarchy()
	for _, row := range rows {
		h.Add(row.Parent, row.Child)
	}
	return h, nil
}

// Offerings returns the offerings with the given identifiers, or all
// offerings if none are given
func (r *Repository) Offerings(ctx context.Context, tx *gorm.DB, identifiers []string) ([]domain.Offering, error) {
	rows := []persistence.Offering{}

	q := tx.WithContext(ctx)
	if len(identifiers) > 0 {
		q = q.Where("identifier IN ?", identifiers)
	}

	err := q.Order("identifier").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query offerings: %w", err)
	}

	offerings := make([]domain.Offering, 0, len(rows))
	for _, row := range rows {
		offerings = append(offerings, domain.Offering{
			Identifier:  row.Identifier,
			Name:        row.Name,
			Description: row.Description,
		})
	}

	return offerings, nil
}

// OfferingNames returns the translated offering names keyed by offering
// identifier and locale
func (r *Repository) OfferingNames(ctx context.Context, tx *gorm.DB) (map[string]map[string]string, error) {
	type nameRow struct {
		Identifier string
		Locale     string
		Name       string
	}

	rows := []nameRow{}
	err := tx.WithContext(ctx).
		Table("offering_i18n").
		Select("offerings.identifier, offering_i18n.locale, offering_i18n.name").
		Joins("JOIN offerings ON offerings.id = offering_i18n.entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query offering translations: %w", err)
	}

	names := map[string]map[string]string{}
	for _, row := range rows {
		if names[row.Identifier] == nil {
			names[row.Identifier] = map[string]string{}
		}
		names[row.Identifier][row.Locale] = row.Name
	}

	return names, nil
}

// Procedure returns the procedure with the given identifier, or nil if it
// does not exist or has been deleted
func (r *Repository) Procedure(ctx context.Context, tx *gorm.DB, identifier, locale string) (*domain.Procedure, error) {
	type procedureRow struct {
		persistence.Procedure
		TranslatedName string
	}

	rows := []procedureRow{}
	err := tx.WithContext(ctx).
		Table("procedures").
		Select("procedures.*, COALESCE(pri.name, procedures.name) AS translated_name").
		Joins("LEFT JOIN procedure_i18n pri ON pri.entity_id = procedures.id AND pri.locale = ?", locale).
		Where("procedures.identifier = ? AND procedures.deleted = ?", identifier, false).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query procedure %s: %w", identifier, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	p := rows[0]
	return &domain.Procedure{
		Identifier:          p.Identifier,
		Name:                p.TranslatedName,
		Description:         p.Description,
		DescriptionFormat:   p.DescriptionFormat,
		DescriptionDocument: p.DescriptionDocument,
	}, nil
}

// ProcedureOfferings returns the identifiers of the offerings that have a
// visible dataset of the procedure
func (r *Repository) ProcedureOfferings(ctx context.Context, tx *gorm.DB, identifier string) ([]string, error) {
	offerings := []string{}
	err := tx.WithContext(ctx).
		Table("datasets").
		Joins("JOIN procedures ON procedures.id = datasets.procedure_id").
		Joins("JOIN offerings ON offerings.id = datasets.offering_id").
		Where("procedures.identifier = ? AND datasets.deleted = ? AND datasets.published = ?", identifier, false, true).
		Distinct().
		Order("offerings.identifier").
		Pluck("offerings.identifier", &offerings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query offerings of procedure %s: %w", identifier, err)
	}
	return offerings, nil
}

// ResultTemplate returns the template registered for the offering and
// observed property, or nil if there is none
func (r *Repository) ResultTemplate(ctx context.Context, tx *gorm.DB, offering, phenomenon string) (*persistence.ResultTemplate, error) {
	rows := []persistence.ResultTemplate{}
	err := tx.WithContext(ctx).
		Select("result_templates.*").
		Joins("JOIN offerings ON offerings.id = result_templates.offering_id").
		Joins("JOIN phenomena ON phenomena.id = result_templates.phenomenon_id").
		Where("offerings.identifier = ? AND phenomena.identifier = ?", offering, phenomenon).
		Preload("Offering").
		Preload("Phenomenon").
		Preload("Procedure").
		Preload("Feature").
		Order("result_templates.id").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query result template: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}
