// Package encoding renders operation responses. Observation values are
// encoded by codecs looked up by response format and value type.
package encoding

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ContentTypeJSON string = "application/json"
	ContentTypeXML  string = "application/xml"
	ContentTypeText string = "text/plain"
)

// ValueEncoder turns the result of an observation into its representation
// in a response format. A nil result is left out of the document.
type ValueEncoder func(o domain.Observation) (any, error)

type key struct {
	format    string
	valueType domain.ValueType
}

type Repository struct {
	mu     sync.RWMutex
	values map[key]ValueEncoder
}

// NewRepository knows the json value encoders. They are registered for the
// O&M 2.0 response format as well, which this service renders as json.
func NewRepository() *Repository {
	r := &Repository{values: map[key]ValueEncoder{}}

	for _, format := range []string{domain.ResponseFormatJSON, domain.ResponseFormatOM20} {
		for vt, enc := range jsonValueEncoders() {
			r.Register(format, vt, enc)
		}
	}

	return r
}

func (r *Repository) Register(format string, vt domain.ValueType, enc ValueEncoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key{format, vt}] = enc
}

func (r *Repository) ValueEncoder(format string, vt domain.ValueType) (ValueEncoder, error) {
	if format == "" {
		format = domain.ResponseFormatOM20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.values[key{format, vt}]
	if !ok {
		return nil, ows.InvalidParameter("responseFormat", "the response format %s does not support %s observations", format, vt)
	}

	return enc, nil
}

func (r *Repository) Supports(format string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for k := range r.values {
		if k.format == format {
			return true
		}
	}
	return false
}

// ResponseFormats returns the observation response formats, sorted
func (r *Repository) ResponseFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	for k := range r.values {
		seen[k.format] = struct{}{}
	}

	formats := maps.Keys(seen)
	slices.Sort(formats)
	return formats
}

func (r *Repository) ContentType(resp any) string {
	if _, ok := resp.(*domain.GetResultResponse); ok {
		return ContentTypeText
	}
	return ContentTypeJSON
}

// Encode writes resp to w. Observation values are read from their
// iterators while the document is written.
func (r *Repository) Encode(ctx context.Context, w io.Writer, resp any) error {
	switch v := resp.(type) {
	case *domain.GetObservationResponse:
		return r.writeObservations(ctx, w, v)
	case *domain.GetResultResponse:
		return writeResult(ctx, w, v)
	case *domain.GetCapabilitiesResponse:
		return writeJSON(w, capabilitiesDocument(v))
	case *domain.DescribeSensorResponse:
		return writeJSON(w, sensorDocument(v))
	case *domain.GetFeatureOfInterestResponse:
		return writeJSON(w, featuresDocument(v))
	case *domain.GetDataAvailabilityResponse:
		return writeJSON(w, dataAvailabilityDocument(v))
	case *domain.ResultTemplate:
		return writeJSON(w, resultTemplateDocument(v))
	}

	return fmt.Errorf("no encoder for response of type %T", resp)
}
