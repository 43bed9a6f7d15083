package presentation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/domain"
)

// rawRequest is what both the KVP and the json binding decode into before
// the operation specific request is built
type rawRequest struct {
	Request  string
	Service  string
	Version  string
	Language string

	AcceptVersions             []string
	Sections                   []string
	Offerings                  []string
	ObservedProperties         []string
	Procedures                 []string
	Features                   []string
	Observations               []string
	ProcedureDescriptionFormat string
	ResponseFormat             string

	TemporalFilters []domain.TemporalFilter
	SpatialFilters  []domain.SpatialFilter
	ResultFilter    domain.Filter

	CheckForDuplicity  bool
	ShowCount          bool
	IncludeResultTimes bool
}

var operationNames = map[string]string{}

func init() {
	for _, op := range []string{
		domain.OperationGetCapabilities,
		domain.OperationDescribeSensor,
		domain.OperationGetObservation,
		domain.OperationGetObservationByID,
		domain.OperationGetResult,
		domain.OperationGetResultTemplate,
		domain.OperationGetFeatureOfInterest,
		domain.OperationGetDataAvailability,
	} {
		operationNames[strings.ToLower(op)] = op
	}
}

// DecodeKVP reads a request from query parameters. Parameter names are
// matched case insensitively and list values are comma separated.
func DecodeKVP(values url.Values) (domain.Request, error) {
	params := map[string][]string{}
	for k, v := range values {
		key := strings.ToLower(k)
		params[key] = append(params[key], v...)
	}

	single := func(name string) string {
		if v, ok := params[strings.ToLower(name)]; ok && len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	list := func(names ...string) []string {
		result := []string{}
		for _, name := range names {
			for _, v := range params[strings.ToLower(name)] {
				for _, item := range strings.Split(v, ",") {
					if item = strings.TrimSpace(item); item != "" {
						result = append(result, item)
					}
				}
			}
		}
		return result
	}

	flag := func(name string) (bool, error) {
		v := single(name)
		if v == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, ows.InvalidParameter(name, "'%s' is not a boolean", v)
		}
		return b, nil
	}

	raw := rawRequest{
		Request:            single("request"),
		Service:            single("service"),
		Version:            single("version"),
		Language:           single("language"),
		AcceptVersions:     list("acceptVersions"),
		Sections:           list("sections"),
		Offerings:          list("offering"),
		ObservedProperties: list("observedProperty"),
		Procedures:         list("procedure"),
		Features:           list("featureOfInterest"),
		Observations:       list("observation"),
		ResponseFormat:     single("responseFormat"),
	}

	raw.ProcedureDescriptionFormat = single("procedureDescriptionFormat")
	if raw.ProcedureDescriptionFormat == "" {
		raw.ProcedureDescriptionFormat = single("outputFormat")
	}

	var err error

	for _, p := range []struct {
		name   string
		target *bool
	}{
		{"checkForDuplicity", &raw.CheckForDuplicity},
		{"ShowCount", &raw.ShowCount},
		{"IncludeResultTimes", &raw.IncludeResultTimes},
	} {
		if *p.target, err = flag(p.name); err != nil {
			return nil, err
		}
	}

	for _, name := range []string{query.TemporalFilterParameter, "eventTime"} {
		for _, v := range params[strings.ToLower(name)] {
			tf, err := parseTemporalKVP(name, v)
			if err != nil {
				return nil, err
			}
			raw.TemporalFilters = append(raw.TemporalFilters, tf)
		}
	}

	for _, name := range []string{query.SpatialFilterParameter, "location"} {
		for _, v := range params[strings.ToLower(name)] {
			sf, err := parseSpatialKVP(name, v)
			if err != nil {
				return nil, err
			}
			raw.SpatialFilters = append(raw.SpatialFilters, sf)
		}
	}

	return raw.toRequest()
}

// parseTemporalKVP reads "valueReference,time" where time is an instant, a
// period separated by a slash or one of the keywords first and latest
func parseTemporalKVP(name, value string) (domain.TemporalFilter, error) {
	ref, t := "", strings.TrimSpace(value)
	if parts := strings.SplitN(value, ",", 2); len(parts) == 2 {
		ref, t = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	return temporalFilter(name, "", ref, t)
}

func temporalFilter(name string, op domain.TemporalOperator, ref, value string) (domain.TemporalFilter, error) {
	switch strings.ToLower(value) {
	case string(domain.First):
		return domain.TemporalFilter{Operator: domain.TimeEquals, ValueReference: ref, Indeterminate: domain.First}, nil
	case string(domain.Latest), "getlatest":
		return domain.TemporalFilter{Operator: domain.TimeEquals, ValueReference: ref, Indeterminate: domain.Latest}, nil
	}

	period, err := domain.ParseTimePeriod(value)
	if err != nil {
		return domain.TemporalFilter{}, ows.InvalidParameter(name, "%s", err.Error())
	}

	if op == "" {
		op = domain.TimeDuring
		if period.IsInstant() {
			op = domain.TimeEquals
		}
	}

	return domain.TemporalFilter{Operator: op, ValueReference: ref, Time: period}, nil
}

// parseSpatialKVP reads "valueReference,x1,y1,x2,y2[,crs]" with the corners
// in the axis order of the crs
func parseSpatialKVP(name, value string) (domain.SpatialFilter, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 5 && len(parts) != 6 {
		return domain.SpatialFilter{}, ows.InvalidParameter(name, "expected a value reference, four coordinates and an optional crs")
	}

	coords := make([]float64, 0, 4)
	for _, p := range parts[1:5] {
		c, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.SpatialFilter{}, ows.InvalidParameter(name, "'%s' is not a coordinate", p)
		}
		coords = append(coords, c)
	}

	crs := ""
	if len(parts) == 6 {
		crs = strings.TrimSpace(parts[5])
	}

	envelope, err := geometry.EnvelopeFromCRS(coords, crs)
	if err != nil {
		return domain.SpatialFilter{}, ows.InvalidParameter(name, "%s", err.Error())
	}

	return domain.SpatialFilter{
		Operator:       domain.SpatialBBOX,
		ValueReference: strings.TrimSpace(parts[0]),
		Geometry:       envelope,
	}, nil
}

func (raw rawRequest) header() domain.ServiceRequest {
	return domain.ServiceRequest{Service: raw.Service, Version: raw.Version, Language: raw.Language}
}

func (raw rawRequest) toRequest() (domain.Request, error) {
	if raw.Request == "" {
		return nil, ows.MissingParameter("request")
	}

	op, ok := operationNames[strings.ToLower(raw.Request)]
	if !ok {
		return nil, ows.OperationNotSupportedFor(raw.Request)
	}

	switch op {
	case domain.OperationGetCapabilities:
		header := raw.header()
		version, err := negotiateVersion(raw.AcceptVersions)
		if err != nil {
			return nil, err
		}
		if version != "" {
			header.Version = version
		}
		return domain.GetCapabilitiesRequest{ServiceRequest: header, Sections: raw.Sections}, nil

	case domain.OperationDescribeSensor:
		procedure, err := atMostOne("procedure", raw.Procedures)
		if err != nil {
			return nil, err
		}
		return domain.DescribeSensorRequest{
			ServiceRequest:             raw.header(),
			Procedure:                  procedure,
			ProcedureDescriptionFormat: raw.ProcedureDescriptionFormat,
		}, nil

	case domain.OperationGetObservation:
		return domain.GetObservationRequest{
			ServiceRequest:     raw.header(),
			Offerings:          raw.Offerings,
			ObservedProperties: raw.ObservedProperties,
			Procedures:         raw.Procedures,
			FeatureIdentifiers: raw.Features,
			TemporalFilters:    raw.TemporalFilters,
			SpatialFilters:     raw.SpatialFilters,
			ResultFilter:       raw.ResultFilter,
			ResponseFormat:     raw.ResponseFormat,
			CheckForDuplicity:  raw.CheckForDuplicity,
		}, nil

	case domain.OperationGetObservationByID:
		return domain.GetObservationByIDRequest{
			ServiceRequest:         raw.header(),
			ObservationIdentifiers: raw.Observations,
			ResponseFormat:         raw.ResponseFormat,
		}, nil

	case domain.OperationGetResultTemplate, domain.OperationGetResult:
		offering, err := atMostOne("offering", raw.Offerings)
		if err != nil {
			return nil, err
		}
		property, err := atMostOne("observedProperty", raw.ObservedProperties)
		if err != nil {
			return nil, err
		}

		if op == domain.OperationGetResultTemplate {
			return domain.GetResultTemplateRequest{ServiceRequest: raw.header(), Offering: offering, ObservedProperty: property}, nil
		}

		return domain.GetResultRequest{
			ServiceRequest:     raw.header(),
			Offering:           offering,
			ObservedProperty:   property,
			FeatureIdentifiers: raw.Features,
			TemporalFilters:    raw.TemporalFilters,
			SpatialFilters:     raw.SpatialFilters,
		}, nil

	case domain.OperationGetFeatureOfInterest:
		return domain.GetFeatureOfInterestRequest{
			ServiceRequest:     raw.header(),
			FeatureIdentifiers: raw.Features,
			ObservedProperties: raw.ObservedProperties,
			Procedures:         raw.Procedures,
			SpatialFilters:     raw.SpatialFilters,
		}, nil

	case domain.OperationGetDataAvailability:
		return domain.GetDataAvailabilityRequest{
			ServiceRequest:     raw.header(),
			Procedures:         raw.Procedures,
			ObservedProperties: raw.ObservedProperties,
			FeatureIdentifiers: raw.Features,
			Offerings:          raw.Offerings,
			ResponseFormat:     raw.ResponseFormat,
			ShowCount:          raw.ShowCount,
			IncludeResultTimes: raw.IncludeResultTimes,
		}, nil
	}

	return nil, ows.OperationNotSupportedFor(raw.Request)
}

// negotiateVersion picks the highest supported version a client accepts
func negotiateVersion(accepted []string) (string, error) {
	if len(accepted) == 0 {
		return "", nil
	}

	for _, v := range []string{domain.Version200, domain.Version100} {
		for _, a := range accepted {
			if a == v {
				return v, nil
			}
		}
	}

	return "", &ows.Exception{
		Code:    ows.VersionNegotiationFailed,
		Locator: "acceptVersions",
		Message: fmt.Sprintf("none of the versions %s is supported", strings.Join(accepted, ", ")),
	}
}

func atMostOne(name string, values []string) (string, error) {
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	}
	return "", ows.InvalidParameter(name, "only one %s may be requested", name)
}
