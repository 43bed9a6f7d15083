// Package query translates request parameters into the query parameters and
// SQL clauses consumed by the DAO layer.
package query

import (
	"github.com/diwise/api-sos/internal/pkg/domain"
)

// Clause is a SQL condition with positional arguments
type Clause struct {
	SQL  string
	Args []any
}

func And(clauses ...*Clause) *Clause {
	return join(" AND ", clauses)
}

func Or(clauses ...*Clause) *Clause {
	return join(" OR ", clauses)
}

func join(op string, clauses []*Clause) *Clause {
	var result *Clause
	for _, c := range clauses {
		if c == nil || c.SQL == "" {
			continue
		}
		if result == nil {
			result = &Clause{SQL: "(" + c.SQL + ")", Args: append([]any(nil), c.Args...)}
			continue
		}
		result.SQL = result.SQL + op + "(" + c.SQL + ")"
		result.Args = append(result.Args, c.Args...)
	}
	return result
}

// Params is the resolved set of query parameters for one request
type Params struct {
	Features       []string
	Procedures     []string
	Phenomena      []string
	Offerings      []string
	Envelope       *domain.Envelope
	Location       *domain.Envelope
	MatchDomainIDs bool
	Temporal       *Clause
	Indeterminate  domain.Indeterminate
	ResultFilter   *Clause
	Locale         string
}

// HasFeatureFilter reports whether the request restricts features by
// identifier or geometry
func (p Params) HasFeatureFilter() bool {
	return len(p.Features) > 0 || p.Envelope != nil || p.Location != nil
}

func (p Params) HasSpatialFilter() bool {
	return p.Envelope != nil || p.Location != nil
}

// Map returns the parameters that are set, keyed by their parameter name
func (p Params) Map() map[string]any {
	m := map[string]any{
		"matchDomainIds": p.MatchDomainIDs,
	}
	if len(p.Features) > 0 {
		m["featureOfInterest"] = p.Features
	}
	if len(p.Procedures) > 0 {
		m["procedure"] = p.Procedures
	}
	if len(p.Phenomena) > 0 {
		m["observedProperty"] = p.Phenomena
	}
	if len(p.Offerings) > 0 {
		m["offering"] = p.Offerings
	}
	if p.Envelope != nil {
		m["envelope"] = []float64{p.Envelope.MinX, p.Envelope.MinY, p.Envelope.MaxX, p.Envelope.MaxY}
	}
	if p.Location != nil {
		m["location"] = []float64{p.Location.MinX, p.Location.MinY}
	}
	if p.Temporal != nil {
		m["temporalFilter"] = p.Temporal.SQL
	}
	if p.Indeterminate != domain.Determinate {
		m["indeterminate"] = string(p.Indeterminate)
	}
	if p.ResultFilter != nil {
		m["resultFilter"] = p.ResultFilter.SQL
	}
	if p.Locale != "" {
		m["language"] = p.Locale
	}
	return m
}

// WithResolvedFeatures returns a copy where the geometry restrictions have been
// replaced by an explicit list of already resolved features
func (p Params) WithResolvedFeatures(features []string) Params {
	p.Features = features
	p.Envelope = nil
	p.Location = nil
	return p
}
