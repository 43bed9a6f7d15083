package domain

import (
	"time"
)

type ValueType string

const (
	BooleanValue    ValueType = "bool"
	CategoryValue   ValueType = "category"
	CountValue      ValueType = "count"
	GeometryValue   ValueType = "geometry"
	QuantityValue   ValueType = "quantity"
	ReferencedValue ValueType = "referenced"
	TextValue       ValueType = "text"
	ProfileValue    ValueType = "profile"
)

const observationTypePrefix string = "http://www.opengis.net/def/observationType/OGC-OM/2.0/"

var observationTypes = map[ValueType]string{
	BooleanValue:    observationTypePrefix + "OM_TruthObservation",
	CategoryValue:   observationTypePrefix + "OM_CategoryObservation",
	CountValue:      observationTypePrefix + "OM_CountObservation",
	GeometryValue:   observationTypePrefix + "OM_GeometryObservation",
	QuantityValue:   observationTypePrefix + "OM_Measurement",
	ReferencedValue: observationTypePrefix + "OM_ReferenceObservation",
	TextValue:       observationTypePrefix + "OM_TextObservation",
	ProfileValue:    observationTypePrefix + "OM_ComplexObservation",
}

// ObservationType maps a value type to its O&M 2.0 observation type URI
func (vt ValueType) ObservationType() string {
	if ot, ok := observationTypes[vt]; ok {
		return ot
	}
	return observationTypePrefix + "OM_Observation"
}

func (vt ValueType) IsValid() bool {
	_, ok := observationTypes[vt]
	return ok
}

// Reference is the identity of one of the reference entities (procedure,
// phenomenon, feature or offering) as seen from a dataset.
type Reference struct {
	Identifier  string
	Name        string
	Description string
}

type Offering struct {
	Identifier  string
	Name        string
	Description string
	Parents     []string
	Children    []string
}

type Procedure struct {
	Identifier          string
	Name                string
	Description         string
	DescriptionFormat   string
	DescriptionDocument string
	Deleted             bool
}

type Phenomenon struct {
	Identifier  string
	Name        string
	Description string
	Children    []string
}

type Feature struct {
	Identifier  string
	Name        string
	Description string
	FeatureType string
	Geometry    *Envelope
}

// Constellation is the identifying tuple of a dataset without its offering
type Constellation struct {
	Procedure  string
	Phenomenon string
	Feature    string
}

type Dataset struct {
	ID               int64
	Procedure        Reference
	Phenomenon       Reference
	Feature          Reference
	Offering         Reference
	ValueType        ValueType
	Unit             string
	Description      string
	FirstValueAt     *time.Time
	LastValueAt      *time.Time
	ObservationCount int64
	Deleted          bool
	Published        bool
	Hidden           bool

	ProcedureDescriptionFormat string
}

func (d Dataset) Constellation() Constellation {
	return Constellation{
		Procedure:  d.Procedure.Identifier,
		Phenomenon: d.Phenomenon.Identifier,
		Feature:    d.Feature.Identifier,
	}
}

// Extent returns the phenomenon time covered by the dataset, or an empty
// period if the dataset has no observations
func (d Dataset) Extent() TimePeriod {
	if d.FirstValueAt == nil || d.LastValueAt == nil {
		return TimePeriod{}
	}
	return NewPeriod(*d.FirstValueAt, *d.LastValueAt)
}

type Value struct {
	Type      ValueType
	Unit      string
	Quantity  *float64
	Count     *int64
	Boolean   *bool
	Text      *string
	Codespace *string
	Href      *string
	Title     *string
	Geometry  *string
}

type Observation struct {
	ID             int64
	DatasetID      int64
	Identifier     string
	PhenomenonTime TimePeriod
	ResultTime     *time.Time
	ValidTime      *TimePeriod
	Value          Value
	ParentID       *int64
	VerticalFrom   *float64
	VerticalTo     *float64
	Children       []Observation
}

// ObservationTemplate carries the metadata of a dataset that is rendered
// around its (possibly empty) list of values
type ObservationTemplate struct {
	Dataset         Dataset
	ObservationType string
}

func NewObservationTemplate(ds Dataset) ObservationTemplate {
	return ObservationTemplate{
		Dataset:         ds,
		ObservationType: ds.ValueType.ObservationType(),
	}
}

type ResultField struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Unit       string `json:"uom,omitempty"`
}

type ResultEncoding struct {
	TokenSeparator   string `json:"tokenSeparator"`
	BlockSeparator   string `json:"blockSeparator"`
	DecimalSeparator string `json:"decimalSeparator"`
}

func DefaultResultEncoding() ResultEncoding {
	return ResultEncoding{
		TokenSeparator:   ",",
		BlockSeparator:   "@@",
		DecimalSeparator: ".",
	}
}

type ResultTemplate struct {
	Identifier string
	Offering   string
	Phenomenon string
	Procedure  string
	Feature    string
	Structure  []ResultField
	Encoding   ResultEncoding
}
