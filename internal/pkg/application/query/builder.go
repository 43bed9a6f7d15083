package query

import (
	"strconv"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
)

const SpatialFilterParameter string = "spatialFilter"

// Input holds the raw request parameters the builder works from
type Input struct {
	Features        []string
	Procedures      []string
	Phenomena       []string
	Offerings       []string
	SpatialFilters  []domain.SpatialFilter
	TemporalFilters []domain.TemporalFilter
	ResultFilter    domain.Filter
	MatchDomainIDs  bool
	Locale          string
}

type Builder struct {
	geometry *geometry.Handler
}

func NewBuilder(g *geometry.Handler) *Builder {
	return &Builder{geometry: g}
}

// Build converts in to query parameters. It fails with a coded exception if a
// filter uses an unsupported operator or its geometry cannot be normalised.
func (b *Builder) Build(in Input) (Params, error) {
	p := Params{
		Features:       in.Features,
		Procedures:     in.Procedures,
		Phenomena:      in.Phenomena,
		Offerings:      in.Offerings,
		MatchDomainIDs: in.MatchDomainIDs,
		Locale:         in.Locale,
	}

	if !in.MatchDomainIDs {
		for name, ids := range map[string][]string{
			"featureOfInterest": in.Features,
			"procedure":         in.Procedures,
			"observedProperty":  in.Phenomena,
			"offering":          in.Offerings,
		} {
			for _, id := range ids {
				if _, err := strconv.ParseInt(id, 10, 64); err != nil {
					return Params{}, ows.InvalidParameter(name, "'%s' is not a valid database id", id)
				}
			}
		}
	}

	var err error
	p.Envelope, p.Location, err = b.SpatialEnvelope(in.SpatialFilters)
	if err != nil {
		return Params{}, err
	}

	p.Temporal, p.Indeterminate, err = TemporalClause(in.TemporalFilters)
	if err != nil {
		return Params{}, err
	}

	if in.ResultFilter != nil {
		p.ResultFilter, err = ResultFilterClause(in.ResultFilter)
		if err != nil {
			return Params{}, err
		}
	}

	return p, nil
}

// SpatialEnvelope unions all BBOX filters into one envelope. A single
// Equals filter with a point geometry is returned as a location match.
func (b *Builder) SpatialEnvelope(filters []domain.SpatialFilter) (*domain.Envelope, *domain.Envelope, error) {
	var envelope, location *domain.Envelope

	for _, f := range filters {
		if !isShapeReference(f.ValueReference) {
			return nil, nil, ows.InvalidParameter(SpatialFilterParameter, "the value reference '%s' is not supported", f.ValueReference)
		}

		normalized, err := b.geometry.Normalize(f.Geometry)
		if err != nil {
			return nil, nil, ows.NoApplicable(err, "unable to transform the spatial filter geometry")
		}

		switch f.Operator {
		case domain.SpatialBBOX:
			if envelope == nil {
				envelope = &normalized
				continue
			}
			u, err := envelope.Union(normalized)
			if err != nil {
				return nil, nil, ows.NoApplicable(err, "unable to union spatial filters")
			}
			envelope = &u
		case domain.SpatialEquals:
			if !normalized.IsPoint() {
				return nil, nil, ows.OptionNotSupportedFor(SpatialFilterParameter, "the spatial operator Equals is only supported for point geometries")
			}
			if location != nil {
				return nil, nil, ows.OptionNotSupportedFor(SpatialFilterParameter, "only one Equals spatial filter is supported")
			}
			location = &normalized
		default:
			return nil, nil, ows.OptionNotSupportedFor(SpatialFilterParameter, "the spatial operator '%s' is not supported", f.Operator)
		}
	}

	return envelope, location, nil
}

func isShapeReference(ref string) bool {
	if ref == "" {
		return true
	}
	return strings.HasSuffix(ref, "shape") || strings.Contains(ref, "featureOfInterest")
}
