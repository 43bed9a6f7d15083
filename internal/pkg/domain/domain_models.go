package domain

const (
	ServiceType string = "SOS"
	Version100  string = "1.0.0"
	Version200  string = "2.0.0"
)

const (
	OperationGetCapabilities      string = "GetCapabilities"
	OperationDescribeSensor       string = "DescribeSensor"
	OperationGetObservation       string = "GetObservation"
	OperationGetObservationByID   string = "GetObservationById"
	OperationGetResult            string = "GetResult"
	OperationGetResultTemplate    string = "GetResultTemplate"
	OperationGetFeatureOfInterest string = "GetFeatureOfInterest"
	OperationGetDataAvailability  string = "GetDataAvailability"
)

const (
	ResponseFormatOM20 string = "http://www.opengis.net/om/2.0"
	ResponseFormatJSON string = "application/json"
)

const (
	GDAVersion10Namespace string = "http://www.opengis.net/sosgda/1.0"
	GDAVersion20Namespace string = "http://www.opengis.net/sosgda/2.0"
)

// Request is implemented by every operation request
type Request interface {
	Operation() string
	Header() ServiceRequest
}

type ServiceRequest struct {
	Service  string
	Version  string
	Language string
}

func (r ServiceRequest) Header() ServiceRequest {
	return r
}

func (r ServiceRequest) IsVersion100() bool {
	return r.Version == Version100
}

type GetCapabilitiesRequest struct {
	ServiceRequest
	Sections []string
}

func (GetCapabilitiesRequest) Operation() string { return OperationGetCapabilities }

type DescribeSensorRequest struct {
	ServiceRequest
	Procedure                  string
	ProcedureDescriptionFormat string
}

func (DescribeSensorRequest) Operation() string { return OperationDescribeSensor }

type GetObservationRequest struct {
	ServiceRequest
	Offerings          []string
	ObservedProperties []string
	Procedures         []string
	FeatureIdentifiers []string
	TemporalFilters    []TemporalFilter
	SpatialFilters     []SpatialFilter
	ResultFilter       Filter
	ResponseFormat     string
	CheckForDuplicity  bool
}

func (GetObservationRequest) Operation() string { return OperationGetObservation }

func (r GetObservationRequest) HasFeatureFilter() bool {
	return len(r.FeatureIdentifiers) > 0 || len(r.SpatialFilters) > 0
}

// Indeterminate returns the first/latest marker of the request, if any
func (r GetObservationRequest) Indeterminate() Indeterminate {
	for _, tf := range r.TemporalFilters {
		if tf.IsIndeterminate() {
			return tf.Indeterminate
		}
	}
	return Determinate
}

type GetObservationByIDRequest struct {
	ServiceRequest
	ObservationIdentifiers []string
	ResponseFormat         string
}

func (GetObservationByIDRequest) Operation() string { return OperationGetObservationByID }

type GetResultTemplateRequest struct {
	ServiceRequest
	Offering         string
	ObservedProperty string
}

func (GetResultTemplateRequest) Operation() string { return OperationGetResultTemplate }

type GetResultRequest struct {
	ServiceRequest
	Offering           string
	ObservedProperty   string
	FeatureIdentifiers []string
	TemporalFilters    []TemporalFilter
	SpatialFilters     []SpatialFilter
}

func (GetResultRequest) Operation() string { return OperationGetResult }

type GetFeatureOfInterestRequest struct {
	ServiceRequest
	FeatureIdentifiers []string
	ObservedProperties []string
	Procedures         []string
	SpatialFilters     []SpatialFilter
}

func (GetFeatureOfInterestRequest) Operation() string { return OperationGetFeatureOfInterest }

type GetDataAvailabilityRequest struct {
	ServiceRequest
	Procedures         []string
	ObservedProperties []string
	FeatureIdentifiers []string
	Offerings          []string
	ResponseFormat     string
	ShowCount          bool
	IncludeResultTimes bool
}

func (GetDataAvailabilityRequest) Operation() string { return OperationGetDataAvailability }

// IsV20 reports whether the 2.0 response encoding with parent offering
// aggregation and format descriptors is requested
func (r GetDataAvailabilityRequest) IsV20() bool {
	return r.ResponseFormat == GDAVersion20Namespace
}
