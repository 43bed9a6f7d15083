package encoding

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/streaming"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/goccy/go-json"
	"github.com/matryer/is"
)

var t0 = time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)

func TestObservationsAreStreamedAsJSON(t *testing.T) {
	is, ctx, r := testSetup(t)

	resp := &domain.GetObservationResponse{
		ResponseFormat: domain.ResponseFormatOM20,
		Series: []domain.ObservationSeries{
			{
				Template: template(domain.QuantityValue),
				Values:   streaming.NewStatic(quantity(t0, 1.5), quantity(t0.Add(time.Hour), 2.5)),
			},
		},
	}

	buf := &bytes.Buffer{}
	is.NoErr(r.Encode(ctx, buf, resp))

	doc := struct {
		Observations []struct {
			Procedure      string `json:"procedure"`
			Offering       string `json:"offering"`
			PhenomenonTime string `json:"phenomenonTime"`
			Result         struct {
				Unit  string  `json:"uom"`
				Value float64 `json:"value"`
			} `json:"result"`
		} `json:"observations"`
	}{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &doc))

	is.Equal(len(doc.Observations), 2)               // one json object per value
	is.Equal(doc.Observations[0].Procedure, "p1")    // metadata from the template
	is.Equal(doc.Observations[0].Offering, "o1")     // metadata from the template
	is.Equal(doc.Observations[1].Result.Value, 2.5)  // values keep their order
	is.Equal(doc.Observations[1].Result.Unit, "Cel") // the unit is the uom

	is.Equal(doc.Observations[0].PhenomenonTime, "2023-06-01T10:00:00Z") // instants are rendered as a single time
}

func TestMetadataOnlySeriesHaveNoResult(t *testing.T) {
	is, ctx, r := testSetup(t)

	resp := &domain.GetObservationResponse{
		Series: []domain.ObservationSeries{{Template: template(domain.CountValue)}},
	}

	buf := &bytes.Buffer{}
	is.NoErr(r.Encode(ctx, buf, resp))

	is.True(strings.Contains(buf.String(), `"procedure":"p1"`)) // the dataset is listed
	is.True(!strings.Contains(buf.String(), `"result"`))        // but without a result
}

func TestProfilesAreEncodedAsLevels(t *testing.T) {
	is := is.New(t)

	from, to, v := 0.0, 5.0, 12.0
	o := domain.Observation{
		Value: domain.Value{Type: domain.ProfileValue},
		Children: []domain.Observation{
			{VerticalFrom: &from, VerticalTo: &to, Value: domain.Value{Type: domain.QuantityValue, Unit: "Cel", Quantity: &v}},
		},
	}

	result, err := encodeProfile(o)
	is.NoErr(err)

	levels := result.([]level)
	is.Equal(len(levels), 1)                                   // one level per child
	is.Equal(*levels[0].To, 5.0)                               // vertical extent is kept
	is.Equal(levels[0].Value, measure{Unit: "Cel", Value: &v}) // child values use their own encoder
}

func TestUnknownFormatIsRejected(t *testing.T) {
	is, _, r := testSetup(t)

	_, err := r.ValueEncoder("text/csv", domain.QuantityValue)
	is.True(ows.IsCode(err, ows.InvalidParameterValue)) // unknown formats are invalid parameter values

	enc, err := r.ValueEncoder("", domain.QuantityValue)
	is.NoErr(err)
	is.True(enc != nil) // an empty format defaults to O&M 2.0

	is.Equal(r.ResponseFormats(), []string{domain.ResponseFormatJSON, domain.ResponseFormatOM20})
}

func TestResultUsesTheTemplateEncoding(t *testing.T) {
	is, ctx, r := testSetup(t)

	resp := &domain.GetResultResponse{
		Template: domain.ResultTemplate{
			Encoding: domain.ResultEncoding{TokenSeparator: ";", BlockSeparator: "|", DecimalSeparator: ","},
		},
		Count: 2,
		Series: []domain.ObservationSeries{
			{Template: template(domain.QuantityValue), Values: streaming.NewStatic(quantity(t0, 1.5), quantity(t0.Add(time.Hour), 2))},
		},
	}

	buf := &bytes.Buffer{}
	is.NoErr(r.Encode(ctx, buf, resp))

	is.Equal(buf.String(), "2|2023-06-01T10:00:00Z;1,5|2023-06-01T11:00:00Z;2")
	is.Equal(r.ContentType(resp), ContentTypeText)
}

func TestDataAvailabilityOmitsOfferingsInVersion1(t *testing.T) {
	is, ctx, r := testSetup(t)

	ref := &domain.ReferenceType{Href: "x", Title: "X"}
	da := &domain.DataAvailability{
		Procedure: ref, ObservedProperty: ref, FeatureOfInterest: ref, Offering: ref,
		PhenomenonTime: domain.NewPeriod(t0, t0.Add(time.Hour)),
	}

	buf := &bytes.Buffer{}
	is.NoErr(r.Encode(ctx, buf, &domain.GetDataAvailabilityResponse{
		Namespace: domain.GDAVersion10Namespace, DataAvailabilities: []*domain.DataAvailability{da},
	}))
	is.True(!strings.Contains(buf.String(), `"offering"`)) // no offerings in 1.0

	buf.Reset()
	is.NoErr(r.Encode(ctx, buf, &domain.GetDataAvailabilityResponse{
		Namespace: domain.GDAVersion20Namespace, DataAvailabilities: []*domain.DataAvailability{da},
	}))
	is.True(strings.Contains(buf.String(), `"offering":{"href":"x","title":"X"}`)) // but in 2.0
}

func TestExceptionReport(t *testing.T) {
	is := is.New(t)

	errs := &ows.Composite{}
	errs.Add(ows.MissingParameter("procedure"))
	errs.Add(ows.NoApplicable(errors.New("db down"), "unable to query"))

	w := httptest.NewRecorder()
	is.NoErr(WriteException(w, errs, false))

	is.Equal(w.Code, http.StatusInternalServerError)        // most severe status of the report
	is.Equal(w.Header().Get("Content-Type"), ContentTypeXML) // xml by default

	body := w.Body.String()
	is.True(strings.Contains(body, `<ows:ExceptionReport xmlns:ows="http://www.opengis.net/ows/1.1" version="2.0.0">`))
	is.True(strings.Contains(body, `exceptionCode="MissingParameterValue" locator="procedure"`))
	is.True(!strings.Contains(body, "db down")) // causes are not disclosed
}

func TestJSONExceptionReport(t *testing.T) {
	is := is.New(t)

	w := httptest.NewRecorder()
	is.NoErr(WriteException(w, ows.OperationNotSupportedFor("InsertSensor"), true))

	is.Equal(w.Code, http.StatusNotImplemented)

	report := jsonExceptionReport{}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &report))
	is.Equal(report.Exceptions[0].Code, "OperationNotSupported")
	is.Equal(report.Exceptions[0].Locator, "InsertSensor")
}

func template(vt domain.ValueType) domain.ObservationTemplate {
	return domain.NewObservationTemplate(domain.Dataset{
		ID:         1,
		Procedure:  domain.Reference{Identifier: "p1"},
		Phenomenon: domain.Reference{Identifier: "temp"},
		Feature:    domain.Reference{Identifier: "f1", Name: "Feature 1"},
		Offering:   domain.Reference{Identifier: "o1"},
		ValueType:  vt,
		Unit:       "Cel",
	})
}

func quantity(at time.Time, v float64) domain.Observation {
	return domain.Observation{
		PhenomenonTime: domain.NewInstant(at),
		Value:          domain.Value{Type: domain.QuantityValue, Unit: "Cel", Quantity: &v},
	}
}

func testSetup(t *testing.T) (*is.I, context.Context, *Repository) {
	return is.New(t), context.Background(), NewRepository()
}
