package domain

const (
	SectionServiceIdentification string = "ServiceIdentification"
	SectionServiceProvider       string = "ServiceProvider"
	SectionOperationsMetadata    string = "OperationsMetadata"
	SectionFilterCapabilities    string = "FilterCapabilities"
	SectionContents              string = "Contents"
	SectionAll                   string = "All"
)

type ServiceIdentification struct {
	Title              string
	Abstract           string
	ServiceType        string
	ServiceTypeVersion []string
	Profiles           []string
}

type ServiceProvider struct {
	Name string
	Site string
}

type Parameter struct {
	Name          string
	AllowedValues []string
}

type OperationMetadata struct {
	Name       string
	URL        string
	Parameters []Parameter
}

type FilterCapabilities struct {
	SpatialOperators    []SpatialOperator
	TemporalOperators   []TemporalOperator
	ComparisonOperators []ComparisonOperator
}

type ObservationOffering struct {
	Identifier           string
	Name                 string
	Description          string
	Procedures           []string
	ObservableProperties []string
	FeaturesOfInterest   []string
	ObservationTypes     []string
	ResponseFormats      []string
	Parents              []string
	Children             []string
	ObservedArea         *Envelope
	PhenomenonTime       TimePeriod
	ResultTime           TimePeriod
}

// GetCapabilitiesResponse holds the requested sections, the others are nil
type GetCapabilitiesResponse struct {
	Version               string
	UpdateSequence        string
	ServiceIdentification *ServiceIdentification
	ServiceProvider       *ServiceProvider
	OperationsMetadata    []OperationMetadata
	FilterCapabilities    *FilterCapabilities
	Contents              []ObservationOffering
}
