package domain

import (
	"sort"
	"time"
)

// ReferenceType is an xlink style reference (href + title) used in
// GetDataAvailability responses
type ReferenceType struct {
	Href  string
	Title string
}

func (r *ReferenceType) sameHref(other *ReferenceType) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Href == other.Href
}

type ObservationFormatDescriptor struct {
	ResponseFormat   string
	ObservationTypes []string
}

type FormatDescriptor struct {
	ProcedureDescriptionFormat string
	ObservationFormats         []ObservationFormatDescriptor
}

type DataAvailability struct {
	Procedure         *ReferenceType
	ObservedProperty  *ReferenceType
	FeatureOfInterest *ReferenceType
	Offering          *ReferenceType
	PhenomenonTime    TimePeriod
	Count             *int64
	ResultTimes       []time.Time
	FormatDescriptor  *FormatDescriptor
}

// Merge extends the phenomenon time of da to contain other. Counts are only
// summed when other describes observations from a different offering, since
// two records of the same offering would otherwise count the same rows twice.
func (da *DataAvailability) Merge(other *DataAvailability, differentOffering bool) {
	da.PhenomenonTime.ExtendToContain(other.PhenomenonTime)

	if differentOffering && other.Count != nil {
		sum := *other.Count
		if da.Count != nil {
			sum += *da.Count
		}
		da.Count = &sum
	}

	if len(other.ResultTimes) > 0 {
		da.ResultTimes = mergeTimes(da.ResultTimes, other.ResultTimes)
	}
}

// SameConstellation reports whether both records describe the same
// (procedure, property, feature, offering) tuple
func (da *DataAvailability) SameConstellation(other *DataAvailability) bool {
	return da.Procedure.sameHref(other.Procedure) &&
		da.ObservedProperty.sameHref(other.ObservedProperty) &&
		da.FeatureOfInterest.sameHref(other.FeatureOfInterest) &&
		da.Offering.sameHref(other.Offering)
}

func (da *DataAvailability) Equals(other *DataAvailability) bool {
	return da.SameConstellation(other) && da.PhenomenonTime.Equal(other.PhenomenonTime)
}

// Copy returns a record that shares the interned references with da but owns
// its time extent, count and result times
func (da *DataAvailability) Copy() *DataAvailability {
	cpy := *da
	if da.Count != nil {
		c := *da.Count
		cpy.Count = &c
	}
	if da.ResultTimes != nil {
		cpy.ResultTimes = append([]time.Time(nil), da.ResultTimes...)
	}
	return &cpy
}

func mergeTimes(a, b []time.Time) []time.Time {
	seen := make(map[int64]struct{}, len(a)+len(b))
	merged := make([]time.Time, 0, len(a)+len(b))
	for _, list := range [][]time.Time{a, b} {
		for _, t := range list {
			key := t.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, t)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })
	return merged
}
