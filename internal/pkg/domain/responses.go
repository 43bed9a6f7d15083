package domain

import "context"

// ValueIterator is a pull based sequence of observations. Close must be
// called when the consumer stops iterating, whether or not the sequence
// was exhausted.
type ValueIterator interface {
	Next(ctx context.Context) bool
	Observation() Observation
	Err() error
	Close() error
}

// ObservationSeries is the metadata of one dataset together with its
// lazily evaluated values. A nil Values means that only metadata is shown.
type ObservationSeries struct {
	Template ObservationTemplate
	Values   ValueIterator
}

type GetObservationResponse struct {
	Version        string
	ResponseFormat string
	Series         []ObservationSeries
}

// Close releases the values of every series in the response
func (r *GetObservationResponse) Close() error {
	var first error
	for _, s := range r.Series {
		if s.Values == nil {
			continue
		}
		if err := s.Values.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type GetResultResponse struct {
	Template ResultTemplate
	Count    int64
	Series   []ObservationSeries
}

func (r *GetResultResponse) Close() error {
	resp := GetObservationResponse{Series: r.Series}
	return resp.Close()
}

type GetFeatureOfInterestResponse struct {
	Version  string
	Features []Feature
}

type DescribeSensorResponse struct {
	Version           string
	Procedure         Procedure
	DescriptionFormat string
	Offerings         []string
}

type GetDataAvailabilityResponse struct {
	Namespace          string
	DataAvailabilities []*DataAvailability
}
