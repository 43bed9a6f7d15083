package query

import (
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
)

const (
	ResultFilterParameter string = "resultFilter"

	DatasetDescriptionColumn string = "datasets.description"
)

const (
	sqlWildCard   string = "%"
	sqlSingleChar string = "_"
	sqlEscape     string = "$"
)

// ResultFilterClause translates a result filter tree into a condition on the
// dataset description. Only PropertyIsLike combined with And/Or is supported.
func ResultFilterClause(f domain.Filter) (*Clause, error) {
	switch filter := f.(type) {
	case domain.ComparisonFilter:
		return comparisonClause(filter)
	case *domain.ComparisonFilter:
		return comparisonClause(*filter)
	case domain.BinaryLogicFilter:
		return logicClause(filter)
	case *domain.BinaryLogicFilter:
		return logicClause(*filter)
	}

	return nil, ows.OptionNotSupportedFor(ResultFilterParameter, "the result filter type %T is not supported", f)
}

func logicClause(f domain.BinaryLogicFilter) (*Clause, error) {
	if len(f.Filters) == 0 {
		return nil, ows.InvalidParameter(ResultFilterParameter, "the logic filter %s has no operands", f.Operator)
	}

	clauses := make([]*Clause, 0, len(f.Filters))
	for _, child := range f.Filters {
		c, err := ResultFilterClause(child)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}

	switch f.Operator {
	case domain.And:
		return And(clauses...), nil
	case domain.Or:
		return Or(clauses...), nil
	}

	return nil, ows.OptionNotSupportedFor(ResultFilterParameter, "the logic operator '%s' is not supported", f.Operator)
}

func comparisonClause(f domain.ComparisonFilter) (*Clause, error) {
	if f.Operator != domain.PropertyIsLike {
		return nil, ows.OptionNotSupportedFor(ResultFilterParameter, "the comparison operator '%s' is not supported", f.Operator)
	}

	if !isDescriptionReference(f.ValueReference) {
		return nil, ows.InvalidParameter(ResultFilterParameter, "the value reference '%s' is not supported", f.ValueReference)
	}

	pattern, err := LikePattern(f)
	if err != nil {
		return nil, err
	}

	if f.IgnoreCase {
		return &Clause{
			SQL:  "LOWER(" + DatasetDescriptionColumn + ") LIKE LOWER(?) ESCAPE '" + sqlEscape + "'",
			Args: []any{pattern},
		}, nil
	}

	return &Clause{
		SQL:  DatasetDescriptionColumn + " LIKE ? ESCAPE '" + sqlEscape + "'",
		Args: []any{pattern},
	}, nil
}

func isDescriptionReference(ref string) bool {
	switch ref {
	case "", "description", "gml:description", "om:description", "series/description":
		return true
	}
	return false
}

// LikePattern rewrites the filter value into a SQL LIKE pattern that uses
// '%', '_' and '$' as wild card, single character and escape. Unset filter
// characters default to the SQL ones.
func LikePattern(f domain.ComparisonFilter) (string, error) {
	wild := orDefault(f.WildCard, sqlWildCard)
	single := orDefault(f.SingleChar, sqlSingleChar)
	escape := orDefault(f.EscapeString, sqlEscape)

	for name, v := range map[string]string{"wildCard": wild, "singleChar": single, "escapeChar": escape} {
		if len([]rune(v)) != 1 {
			return "", ows.InvalidParameter(ResultFilterParameter, "the %s '%s' must be a single character", name, v)
		}
	}

	w, s, e := []rune(wild)[0], []rune(single)[0], []rune(escape)[0]
	if w == s || w == e || s == e {
		return "", ows.InvalidParameter(ResultFilterParameter, "wild card, single character and escape must differ")
	}

	var sb strings.Builder
	value := []rune(f.Value)

	for i := 0; i < len(value); i++ {
		r := value[i]
		switch r {
		case e:
			if i+1 < len(value) {
				i++
				writeLiteral(&sb, value[i])
			} else {
				writeLiteral(&sb, r)
			}
		case w:
			sb.WriteString(sqlWildCard)
		case s:
			sb.WriteString(sqlSingleChar)
		default:
			writeLiteral(&sb, r)
		}
	}

	return sb.String(), nil
}

func writeLiteral(sb *strings.Builder, r rune) {
	switch string(r) {
	case sqlWildCard, sqlSingleChar, sqlEscape:
		sb.WriteString(sqlEscape)
	}
	sb.WriteRune(r)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
