package presentation

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/goccy/go-json"
)

// stringList accepts either a single string or an array of strings
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "" {
			*l = []string{s}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

type jsonRequest struct {
	Request  string `json:"request"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Language string `json:"language"`

	AcceptVersions             stringList `json:"acceptVersions"`
	Sections                   stringList `json:"sections"`
	Offering                   stringList `json:"offering"`
	ObservedProperty           stringList `json:"observedProperty"`
	Procedure                  stringList `json:"procedure"`
	FeatureOfInterest          stringList `json:"featureOfInterest"`
	Observation                stringList `json:"observation"`
	ProcedureDescriptionFormat string     `json:"procedureDescriptionFormat"`
	ResponseFormat             string     `json:"responseFormat"`

	TemporalFilter json.RawMessage `json:"temporalFilter"`
	SpatialFilter  json.RawMessage `json:"spatialFilter"`
	ResultFilter   json.RawMessage `json:"resultFilter"`

	CheckForDuplicity  bool `json:"checkForDuplicity"`
	ShowCount          bool `json:"ShowCount"`
	IncludeResultTimes bool `json:"IncludeResultTimes"`
}

// operand is the body of a temporal or spatial filter, keyed by its operator
type operand struct {
	Ref   string          `json:"ref"`
	Value json.RawMessage `json:"value"`
}

type geoJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type likeFilter struct {
	Ref        string `json:"ref"`
	Value      string `json:"value"`
	WildCard   string `json:"wildCard"`
	SingleChar string `json:"singleChar"`
	EscapeChar string `json:"escapeChar"`
	MatchCase  *bool  `json:"matchCase"`
}

var temporalOperators = map[string]domain.TemporalOperator{
	"after":        domain.TimeAfter,
	"before":       domain.TimeBefore,
	"begins":       domain.TimeBegins,
	"begunby":      domain.TimeBegunBy,
	"contains":     domain.TimeContains,
	"during":       domain.TimeDuring,
	"endedby":      domain.TimeEndedBy,
	"ends":         domain.TimeEnds,
	"equals":       domain.TimeEquals,
	"meets":        domain.TimeMeets,
	"metby":        domain.TimeMetBy,
	"overlaps":     domain.TimeOverlaps,
	"overlappedby": domain.TimeOverlappedBy,
}

var spatialOperators = map[string]domain.SpatialOperator{
	"bbox":   domain.SpatialBBOX,
	"equals": domain.SpatialEquals,
}

// DecodeJSON reads a request from a json document such as
// {"request":"GetObservation","service":"SOS","version":"2.0.0","offering":["o1"]}
func DecodeJSON(r io.Reader) (domain.Request, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ows.Exception{Code: ows.InvalidRequest, Message: fmt.Sprintf("the request body exceeds %d bytes", tooLarge.Limit)}
		}
		return nil, ows.NoApplicable(err, "unable to read the request body")
	}

	body := jsonRequest{}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, &ows.Exception{Code: ows.InvalidRequest, Message: fmt.Sprintf("the request body is not valid json: %s", err.Error())}
	}

	raw := rawRequest{
		Request:                    body.Request,
		Service:                    body.Service,
		Version:                    body.Version,
		Language:                   body.Language,
		AcceptVersions:             body.AcceptVersions,
		Sections:                   body.Sections,
		Offerings:                  body.Offering,
		ObservedProperties:         body.ObservedProperty,
		Procedures:                 body.Procedure,
		Features:                   body.FeatureOfInterest,
		Observations:               body.Observation,
		ProcedureDescriptionFormat: body.ProcedureDescriptionFormat,
		ResponseFormat:             body.ResponseFormat,
		CheckForDuplicity:          body.CheckForDuplicity,
		ShowCount:                  body.ShowCount,
		IncludeResultTimes:         body.IncludeResultTimes,
	}

	if raw.TemporalFilters, err = decodeTemporalFilters(body.TemporalFilter); err != nil {
		return nil, err
	}

	if raw.SpatialFilters, err = decodeSpatialFilters(body.SpatialFilter); err != nil {
		return nil, err
	}

	if len(body.ResultFilter) > 0 {
		if raw.ResultFilter, err = decodeResultFilter(body.ResultFilter); err != nil {
			return nil, err
		}
	}

	return raw.toRequest()
}

// objects returns the elements of b, which is either a single object or an array
func objects(b json.RawMessage) ([]map[string]json.RawMessage, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}

	var list []map[string]json.RawMessage
	if err := json.Unmarshal(b, &list); err == nil {
		return list, nil
	}

	single := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &single); err != nil {
		return nil, err
	}
	return []map[string]json.RawMessage{single}, nil
}

func decodeTemporalFilters(b json.RawMessage) ([]domain.TemporalFilter, error) {
	name := query.TemporalFilterParameter

	objs, err := objects(b)
	if err != nil {
		return nil, ows.InvalidParameter(name, "%s", err.Error())
	}

	filters := []domain.TemporalFilter{}
	for _, obj := range objs {
		for key, body := range obj {
			op, ok := temporalOperators[strings.ToLower(key)]
			if !ok {
				return nil, ows.OptionNotSupportedFor(name, "the temporal operator '%s' is not supported", key)
			}

			o := operand{}
			if err = json.Unmarshal(body, &o); err != nil {
				return nil, ows.InvalidParameter(name, "%s", err.Error())
			}

			var value string
			var period []string
			if err = json.Unmarshal(o.Value, &period); err == nil {
				value = strings.Join(period, "/")
			} else if err = json.Unmarshal(o.Value, &value); err != nil {
				return nil, ows.InvalidParameter(name, "a time value is either a string or a pair of strings")
			}

			tf, err := temporalFilter(name, op, o.Ref, value)
			if err != nil {
				return nil, err
			}
			filters = append(filters, tf)
		}
	}

	return filters, nil
}

func decodeSpatialFilters(b json.RawMessage) ([]domain.SpatialFilter, error) {
	name := query.SpatialFilterParameter

	objs, err := objects(b)
	if err != nil {
		return nil, ows.InvalidParameter(name, "%s", err.Error())
	}

	filters := []domain.SpatialFilter{}
	for _, obj := range objs {
		for key, body := range obj {
			op, ok := spatialOperators[strings.ToLower(key)]
			if !ok {
				return nil, ows.OptionNotSupportedFor(name, "the spatial operator '%s' is not supported", key)
			}

			o := operand{}
			if err = json.Unmarshal(body, &o); err != nil {
				return nil, ows.InvalidParameter(name, "%s", err.Error())
			}

			g := geoJSON{}
			if err = json.Unmarshal(o.Value, &g); err != nil {
				return nil, ows.InvalidParameter(name, "the filter value must be a geojson geometry")
			}

			envelope, err := geoJSONEnvelope(g)
			if err != nil {
				return nil, ows.InvalidParameter(name, "%s", err.Error())
			}

			filters = append(filters, domain.SpatialFilter{Operator: op, ValueReference: o.Ref, Geometry: envelope})
		}
	}

	return filters, nil
}

// geoJSONEnvelope returns the bounding box of a geojson geometry in
// EPSG:4326 axis order. GeoJSON positions are always longitude first.
func geoJSONEnvelope(g geoJSON) (domain.Envelope, error) {
	var positions [][]float64

	switch g.Type {
	case "Point":
		var p []float64
		if err := json.Unmarshal(g.Coordinates, &p); err != nil {
			return domain.Envelope{}, err
		}
		positions = [][]float64{p}
	case "LineString", "MultiPoint":
		if err := json.Unmarshal(g.Coordinates, &positions); err != nil {
			return domain.Envelope{}, err
		}
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return domain.Envelope{}, err
		}
		for _, ring := range rings {
			positions = append(positions, ring...)
		}
	default:
		return domain.Envelope{}, fmt.Errorf("the geometry type '%s' is not supported", g.Type)
	}

	if len(positions) == 0 {
		return domain.Envelope{}, fmt.Errorf("the geometry has no coordinates")
	}

	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)

	for _, p := range positions {
		if len(p) < 2 {
			return domain.Envelope{}, fmt.Errorf("a position needs at least two coordinates")
		}
		minLon, maxLon = math.Min(minLon, p[0]), math.Max(maxLon, p[0])
		minLat, maxLat = math.Min(minLat, p[1]), math.Max(maxLat, p[1])
	}

	return geometry.EnvelopeFromCRS([]float64{minLon, minLat, maxLon, maxLat}, "urn:ogc:def:crs:OGC:1.3:CRS84")
}

func decodeResultFilter(b json.RawMessage) (domain.Filter, error) {
	name := query.ResultFilterParameter

	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, ows.InvalidParameter(name, "%s", err.Error())
	}

	if len(obj) != 1 {
		return nil, ows.InvalidParameter(name, "a result filter has exactly one operator")
	}

	for key, body := range obj {
		switch strings.ToLower(key) {
		case "like":
			lf := likeFilter{}
			if err := json.Unmarshal(body, &lf); err != nil {
				return nil, ows.InvalidParameter(name, "%s", err.Error())
			}
			return domain.ComparisonFilter{
				Operator:       domain.PropertyIsLike,
				ValueReference: lf.Ref,
				Value:          lf.Value,
				WildCard:       lf.WildCard,
				SingleChar:     lf.SingleChar,
				EscapeString:   lf.EscapeChar,
				IgnoreCase:     lf.MatchCase != nil && !*lf.MatchCase,
			}, nil

		case "and", "or":
			var operands []json.RawMessage
			if err := json.Unmarshal(body, &operands); err != nil {
				return nil, ows.InvalidParameter(name, "the operands of %s must be an array", key)
			}
			if len(operands) == 0 {
				return nil, ows.InvalidParameter(name, "%s needs at least one operand", key)
			}

			lf := domain.BinaryLogicFilter{Operator: domain.And}
			if strings.EqualFold(key, "or") {
				lf.Operator = domain.Or
			}

			for _, child := range operands {
				f, err := decodeResultFilter(child)
				if err != nil {
					return nil, err
				}
				lf.Filters = append(lf.Filters, f)
			}
			return lf, nil

		default:
			return nil, ows.OptionNotSupportedFor(name, "the result filter operator '%s' is not supported", key)
		}
	}

	return nil, ows.InvalidParameter(name, "a result filter has exactly one operator")
}
