package query

import (
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
)

const TemporalFilterParameter string = "temporalFilter"

const (
	PhenomenonTimeStartColumn string = "phenomenon_time_start"
	PhenomenonTimeEndColumn   string = "phenomenon_time_end"
	ResultTimeColumn          string = "result_time"
)

type timeColumns struct {
	start string
	end   string
}

func columnsFor(valueReference string) (string, timeColumns, bool) {
	ref := valueReference
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		ref = ref[idx+1:]
	}

	switch ref {
	case "", "phenomenonTime", "samplingTime":
		return "phenomenonTime", timeColumns{PhenomenonTimeStartColumn, PhenomenonTimeEndColumn}, true
	case "resultTime":
		return "resultTime", timeColumns{ResultTimeColumn, ResultTimeColumn}, true
	}

	return "", timeColumns{}, false
}

// TemporalClause translates the determinate temporal filters into a SQL
// condition on the observation table. Filters on the same value reference
// are combined with OR, filters on different references with AND. An
// indeterminate (first/latest) filter is returned separately.
func TemporalClause(filters []domain.TemporalFilter) (*Clause, domain.Indeterminate, error) {
	indeterminate := domain.Determinate
	order := []string{}
	byReference := map[string][]*Clause{}

	for _, f := range filters {
		ref, cols, ok := columnsFor(f.ValueReference)
		if !ok {
			return nil, domain.Determinate, ows.InvalidParameter(TemporalFilterParameter, "the value reference '%s' is not supported", f.ValueReference)
		}

		if f.IsIndeterminate() {
			if ref != "phenomenonTime" {
				return nil, domain.Determinate, ows.InvalidParameter(TemporalFilterParameter, "first/latest is only supported for the phenomenon time")
			}
			if indeterminate != domain.Determinate && indeterminate != f.Indeterminate {
				return nil, domain.Determinate, ows.InvalidParameter(TemporalFilterParameter, "conflicting first/latest filters")
			}
			indeterminate = f.Indeterminate
			continue
		}

		c, err := operatorClause(f.Operator, cols, f.Time)
		if err != nil {
			return nil, domain.Determinate, err
		}

		if _, ok := byReference[ref]; !ok {
			order = append(order, ref)
		}
		byReference[ref] = append(byReference[ref], c)
	}

	groups := make([]*Clause, 0, len(order))
	for _, ref := range order {
		groups = append(groups, Or(byReference[ref]...))
	}

	return And(groups...), indeterminate, nil
}

func operatorClause(op domain.TemporalOperator, cols timeColumns, t domain.TimePeriod) (*Clause, error) {
	if t.IsEmpty() {
		return nil, ows.InvalidParameter(TemporalFilterParameter, "the temporal filter has no time value")
	}

	s, e := cols.start, cols.end
	a, b := t.Start, t.End

	switch op {
	case domain.TimeAfter:
		return &Clause{SQL: s + " > ?", Args: []any{b}}, nil
	case domain.TimeBefore:
		return &Clause{SQL: e + " < ?", Args: []any{a}}, nil
	case domain.TimeDuring:
		if t.IsInstant() {
			return nil, ows.InvalidParameter(TemporalFilterParameter, "the operator During requires a time period")
		}
		return &Clause{SQL: s + " >= ? AND " + e + " <= ?", Args: []any{a, b}}, nil
	case domain.TimeEquals:
		return &Clause{SQL: s + " = ? AND " + e + " = ?", Args: []any{a, b}}, nil
	case domain.TimeBegins:
		return &Clause{SQL: s + " = ? AND " + e + " < ?", Args: []any{a, b}}, nil
	case domain.TimeBegunBy:
		return &Clause{SQL: s + " = ? AND " + e + " > ?", Args: []any{a, b}}, nil
	case domain.TimeEnds:
		return &Clause{SQL: s + " > ? AND " + e + " = ?", Args: []any{a, b}}, nil
	case domain.TimeEndedBy:
		return &Clause{SQL: s + " < ? AND " + e + " = ?", Args: []any{a, b}}, nil
	case domain.TimeContains:
		return &Clause{SQL: s + " < ? AND " + e + " > ?", Args: []any{a, b}}, nil
	case domain.TimeOverlaps:
		return &Clause{SQL: s + " < ? AND " + e + " > ? AND " + e + " < ?", Args: []any{a, a, b}}, nil
	}

	return nil, ows.OptionNotSupportedFor(TemporalFilterParameter, "the temporal operator '%s' is not supported", op)
}
