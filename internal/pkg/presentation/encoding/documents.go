package encoding

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/goccy/go-json"
)

func writeJSON(w io.Writer, doc any) error {
	return json.NewEncoder(w).Encode(doc)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timeValue renders an instant as a string and a period as a start/end pair
func timeValue(p domain.TimePeriod) any {
	if p.IsEmpty() {
		return nil
	}
	if p.IsInstant() {
		return formatTime(p.Start)
	}
	return []string{formatTime(p.Start), formatTime(p.End)}
}

type envelope struct {
	SRID        int        `json:"srid"`
	LowerCorner [2]float64 `json:"lowerCorner"`
	UpperCorner [2]float64 `json:"upperCorner"`
}

func envelopeOf(e *domain.Envelope) *envelope {
	if e == nil {
		return nil
	}
	return &envelope{
		SRID:        e.SRID,
		LowerCorner: [2]float64{e.MinX, e.MinY},
		UpperCorner: [2]float64{e.MaxX, e.MaxY},
	}
}

type observation struct {
	Identifier         string    `json:"identifier,omitempty"`
	Type               string    `json:"type"`
	Procedure          string    `json:"procedure"`
	ObservableProperty string    `json:"observableProperty"`
	Offering           string    `json:"offering"`
	FeatureOfInterest  reference `json:"featureOfInterest"`
	PhenomenonTime     any       `json:"phenomenonTime,omitempty"`
	ResultTime         string    `json:"resultTime,omitempty"`
	ValidTime          any       `json:"validTime,omitempty"`
	Result             any       `json:"result,omitempty"`
}

func observationOf(t domain.ObservationTemplate) observation {
	ds := t.Dataset
	return observation{
		Type:               t.ObservationType,
		Procedure:          ds.Procedure.Identifier,
		ObservableProperty: ds.Phenomenon.Identifier,
		Offering:           ds.Offering.Identifier,
		FeatureOfInterest:  reference{Href: ds.Feature.Identifier, Title: ds.Feature.Name},
	}
}

// writeObservations streams one json object per value. Series without an
// iterator are written as a single observation without result.
func (r *Repository) writeObservations(ctx context.Context, w io.Writer, resp *domain.GetObservationResponse) error {
	bw := bufio.NewWriter(w)
	first := true

	write := func(o observation) error {
		b, err := json.Marshal(o)
		if err != nil {
			return err
		}
		if !first {
			bw.WriteByte(',')
		}
		first = false
		_, err = bw.Write(b)
		return err
	}

	bw.WriteString(`{"observations":[`)

	for _, series := range resp.Series {
		if series.Values == nil {
			if err := write(observationOf(series.Template)); err != nil {
				return err
			}
			continue
		}

		enc, err := r.ValueEncoder(resp.ResponseFormat, series.Template.Dataset.ValueType)
		if err != nil {
			return err
		}

		for series.Values.Next(ctx) {
			v := series.Values.Observation()

			o := observationOf(series.Template)
			o.Identifier = v.Identifier
			o.PhenomenonTime = timeValue(v.PhenomenonTime)
			if v.ResultTime != nil {
				o.ResultTime = formatTime(*v.ResultTime)
			}
			if v.ValidTime != nil {
				o.ValidTime = timeValue(*v.ValidTime)
			}

			o.Result, err = enc(v)
			if err != nil {
				return err
			}

			if err = write(o); err != nil {
				return err
			}
		}

		if err = series.Values.Err(); err != nil {
			return err
		}
	}

	bw.WriteString("]}\n")
	return bw.Flush()
}

type capabilities struct {
	Version               string                `json:"version"`
	UpdateSequence        string                `json:"updateSequence,omitempty"`
	ServiceIdentification *serviceIdentification `json:"serviceIdentification,omitempty"`
	ServiceProvider       *serviceProvider       `json:"serviceProvider,omitempty"`
	OperationsMetadata    []operationMetadata    `json:"operationMetadata,omitempty"`
	FilterCapabilities    *filterCapabilities    `json:"filterCapabilities,omitempty"`
	Contents              []offering             `json:"contents,omitempty"`
}

type serviceIdentification struct {
	Title              string   `json:"title"`
	Abstract           string   `json:"abstract,omitempty"`
	ServiceType        string   `json:"serviceType"`
	ServiceTypeVersion []string `json:"serviceTypeVersion"`
	Profiles           []string `json:"profile,omitempty"`
}

type serviceProvider struct {
	Name string `json:"name"`
	Site string `json:"site,omitempty"`
}

type operationMetadata struct {
	Name       string              `json:"name"`
	URL        string              `json:"dcp,omitempty"`
	Parameters map[string][]string `json:"parameters,omitempty"`
}

type filterCapabilities struct {
	Spatial    []domain.SpatialOperator    `json:"spatial"`
	Temporal   []domain.TemporalOperator   `json:"temporal"`
	Comparison []domain.ComparisonOperator `json:"comparison"`
}

type offering struct {
	Identifier           string    `json:"identifier"`
	Name                 string    `json:"name,omitempty"`
	Description          string    `json:"description,omitempty"`
	Procedures           []string  `json:"procedure"`
	ObservableProperties []string  `json:"observableProperty"`
	FeaturesOfInterest   []string  `json:"featureOfInterest,omitempty"`
	ObservationTypes     []string  `json:"observationType,omitempty"`
	ResponseFormats      []string  `json:"responseFormat,omitempty"`
	Parents              []string  `json:"parentOffering,omitempty"`
	Children             []string  `json:"childOffering,omitempty"`
	ObservedArea         *envelope `json:"observedArea,omitempty"`
	PhenomenonTime       any       `json:"phenomenonTime,omitempty"`
	ResultTime           any       `json:"resultTime,omitempty"`
}

func capabilitiesDocument(c *domain.GetCapabilitiesResponse) capabilities {
	doc := capabilities{
		Version:        c.Version,
		UpdateSequence: c.UpdateSequence,
	}

	if si := c.ServiceIdentification; si != nil {
		doc.ServiceIdentification = &serviceIdentification{
			Title:              si.Title,
			Abstract:           si.Abstract,
			ServiceType:        si.ServiceType,
			ServiceTypeVersion: si.ServiceTypeVersion,
			Profiles:           si.Profiles,
		}
	}

	if sp := c.ServiceProvider; sp != nil {
		doc.ServiceProvider = &serviceProvider{Name: sp.Name, Site: sp.Site}
	}

	for _, op := range c.OperationsMetadata {
		om := operationMetadata{Name: op.Name, URL: op.URL, Parameters: map[string][]string{}}
		for _, p := range op.Parameters {
			om.Parameters[p.Name] = p.AllowedValues
		}
		doc.OperationsMetadata = append(doc.OperationsMetadata, om)
	}

	if fc := c.FilterCapabilities; fc != nil {
		doc.FilterCapabilities = &filterCapabilities{
			Spatial:    fc.SpatialOperators,
			Temporal:   fc.TemporalOperators,
			Comparison: fc.ComparisonOperators,
		}
	}

	for _, o := range c.Contents {
		doc.Contents = append(doc.Contents, offering{
			Identifier:           o.Identifier,
			Name:                 o.Name,
			Description:          o.Description,
			Procedures:           o.Procedures,
			ObservableProperties: o.ObservableProperties,
			FeaturesOfInterest:   o.FeaturesOfInterest,
			ObservationTypes:     o.ObservationTypes,
			ResponseFormats:      o.ResponseFormats,
			Parents:              o.Parents,
			Children:             o.Children,
			ObservedArea:         envelopeOf(o.ObservedArea),
			PhenomenonTime:       timeValue(o.PhenomenonTime),
			ResultTime:           timeValue(o.ResultTime),
		})
	}

	return doc
}

type sensor struct {
	Procedure                  string   `json:"procedure"`
	Name                       string   `json:"name,omitempty"`
	ProcedureDescriptionFormat string   `json:"procedureDescriptionFormat"`
	Description                string   `json:"procedureDescription"`
	Offerings                  []string `json:"offering,omitempty"`
}

func sensorDocument(d *domain.DescribeSensorResponse) sensor {
	return sensor{
		Procedure:                  d.Procedure.Identifier,
		Name:                       d.Procedure.Name,
		ProcedureDescriptionFormat: d.DescriptionFormat,
		Description:                d.Procedure.DescriptionDocument,
		Offerings:                  d.Offerings,
	}
}

type feature struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name,omitempty"`
	Type       string    `json:"sampledFeatureType,omitempty"`
	Geometry   *envelope `json:"geometry,omitempty"`
}

type features struct {
	FeatureOfInterest []feature `json:"featureOfInterest"`
}

func featuresDocument(r *domain.GetFeatureOfInterestResponse) features {
	doc := features{FeatureOfInterest: make([]feature, 0, len(r.Features))}
	for _, f := range r.Features {
		doc.FeatureOfInterest = append(doc.FeatureOfInterest, feature{
			Identifier: f.Identifier,
			Name:       f.Name,
			Type:       f.FeatureType,
			Geometry:   envelopeOf(f.Geometry),
		})
	}
	return doc
}

type observationFormat struct {
	ResponseFormat   string   `json:"responseFormat"`
	ObservationTypes []string `json:"observationType"`
}

type formatDescriptor struct {
	ProcedureDescriptionFormat string              `json:"procedureDescriptionFormat"`
	ObservationFormats         []observationFormat `json:"observationFormatDescriptors"`
}

type dataAvailability struct {
	Procedure         *reference        `json:"procedure"`
	ObservedProperty  *reference        `json:"observedProperty"`
	FeatureOfInterest *reference        `json:"featureOfInterest"`
	Offering          *reference        `json:"offering,omitempty"`
	PhenomenonTime    any               `json:"phenomenonTime"`
	Count             *int64            `json:"count,omitempty"`
	ResultTimes       []string          `json:"resultTime,omitempty"`
	FormatDescriptor  *formatDescriptor `json:"formatDescriptor,omitempty"`
}

func referenceOf(r *domain.ReferenceType) *reference {
	if r == nil {
		return nil
	}
	return &reference{Href: r.Href, Title: r.Title}
}

type dataAvailabilities struct {
	Namespace          string             `json:"namespace"`
	DataAvailabilities []dataAvailability `json:"dataAvailability"`
}

func dataAvailabilityDocument(r *domain.GetDataAvailabilityResponse) dataAvailabilities {
	doc := dataAvailabilities{
		Namespace:          r.Namespace,
		DataAvailabilities: make([]dataAvailability, 0, len(r.DataAvailabilities)),
	}

	v20 := r.Namespace == domain.GDAVersion20Namespace

	for _, da := range r.DataAvailabilities {
		d := dataAvailability{
			Procedure:         referenceOf(da.Procedure),
			ObservedProperty:  referenceOf(da.ObservedProperty),
			FeatureOfInterest: referenceOf(da.FeatureOfInterest),
			PhenomenonTime:    []string{formatTime(da.PhenomenonTime.Start), formatTime(da.PhenomenonTime.End)},
			Count:             da.Count,
		}

		// offerings are only part of the 2.0 encoding
		if v20 {
			d.Offering = referenceOf(da.Offering)
		}

		for _, t := range da.ResultTimes {
			d.ResultTimes = append(d.ResultTimes, formatTime(t))
		}

		if fd := da.FormatDescriptor; fd != nil {
			d.FormatDescriptor = &formatDescriptor{ProcedureDescriptionFormat: fd.ProcedureDescriptionFormat}
			for _, of := range fd.ObservationFormats {
				d.FormatDescriptor.ObservationFormats = append(d.FormatDescriptor.ObservationFormats,
					observationFormat{ResponseFormat: of.ResponseFormat, ObservationTypes: of.ObservationTypes})
			}
		}

		doc.DataAvailabilities = append(doc.DataAvailabilities, d)
	}

	return doc
}

type resultTemplate struct {
	Identifier        string                `json:"identifier"`
	Offering          string                `json:"offering"`
	ObservedProperty  string                `json:"observedProperty"`
	Procedure         string                `json:"procedure,omitempty"`
	FeatureOfInterest string                `json:"featureOfInterest,omitempty"`
	ResultStructure   []domain.ResultField  `json:"resultStructure"`
	ResultEncoding    domain.ResultEncoding `json:"resultEncoding"`
}

func resultTemplateDocument(rt *domain.ResultTemplate) resultTemplate {
	return resultTemplate{
		Identifier:        rt.Identifier,
		Offering:          rt.Offering,
		ObservedProperty:  rt.Phenomenon,
		Procedure:         rt.Procedure,
		FeatureOfInterest: rt.Feature,
		ResultStructure:   rt.Structure,
		ResultEncoding:    rt.Encoding,
	}
}
