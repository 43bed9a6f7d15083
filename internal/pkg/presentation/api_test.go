package presentation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/presentation/encoding"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGetCapabilitiesOverKVP(t *testing.T) {
	is, ts, _ := testSetup(t, operations.NewRegistry(operations.For(
		func(ctx context.Context, req domain.GetCapabilitiesRequest) (*domain.GetCapabilitiesResponse, error) {
			return &domain.GetCapabilitiesResponse{Version: domain.Version200, UpdateSequence: "42"}, nil
		},
	)), nil)

	resp, body := newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&request=GetCapabilities", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), encoding.ContentTypeJSON)
	is.True(strings.Contains(body, `"updateSequence":"42"`))
}

func TestDescribeSensorOverJSON(t *testing.T) {
	is, ts, _ := testSetup(t, operations.NewRegistry(operations.For(
		func(ctx context.Context, req domain.DescribeSensorRequest) (*domain.DescribeSensorResponse, error) {
			return &domain.DescribeSensorResponse{Procedure: domain.Procedure{Identifier: req.Procedure}, DescriptionFormat: req.ProcedureDescriptionFormat}, nil
		},
	)), nil)

	resp, body := newTestRequest(is, ts, http.MethodPost, "/service",
		strings.NewReader(`{"request":"DescribeSensor","service":"SOS","version":"2.0.0","procedure":"p1","procedureDescriptionFormat":"http://www.opengis.net/sensorml/2.0"}`))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"procedure":"p1"`))
}

func TestExceptionsAreReportedWithTheirStatus(t *testing.T) {
	is, ts, reg := testSetup(t, operations.NewRegistry(), nil)

	resp, body := newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&version=2.0.0&request=GetObservation", nil)

	is.Equal(resp.StatusCode, http.StatusNotImplemented) // no handler is registered
	is.True(strings.Contains(body, `"code":"OperationNotSupported"`))

	is.Equal(testutil.ToFloat64(reg.Requests.WithLabelValues(domain.OperationGetObservation, "OperationNotSupported")), 1.0)
}

func TestExceptionReportIsXMLWhenAskedFor(t *testing.T) {
	is, ts, _ := testSetup(t, operations.NewRegistry(), nil)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/service?request=GetObservation", nil)
	req.Header.Add("Accept", "application/xml")
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	is.Equal(resp.StatusCode, http.StatusBadRequest) // service is missing
	is.True(strings.Contains(string(b), `exceptionCode="MissingParameterValue" locator="service"`))
}

func TestInfrastructureErrorsAreInternal(t *testing.T) {
	is := is.New(t)

	dispatcher := &DispatcherMock{
		HandleFunc: func(ctx context.Context, req domain.Request) (any, error) {
			return nil, ows.Wrap(errors.New("connection refused"), "unable to query datasets")
		},
	}

	ts := httptest.NewServer(newSosAPI(context.Background(), chi.NewRouter(), dispatcher, encoding.NewRepository(), nil, nil, nil).router)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&version=2.0.0&request=GetDataAvailability", nil)

	is.Equal(resp.StatusCode, http.StatusInternalServerError)
	is.True(!strings.Contains(body, "connection refused")) // causes stay in the log
	is.Equal(len(dispatcher.HandleCalls()), 1)
}

func TestResponsesAreClosed(t *testing.T) {
	is := is.New(t)

	values := &closeRecorder{}
	dispatcher := &DispatcherMock{
		HandleFunc: func(ctx context.Context, req domain.Request) (any, error) {
			template := domain.NewObservationTemplate(domain.Dataset{ValueType: domain.QuantityValue})
			return &domain.GetObservationResponse{Series: []domain.ObservationSeries{{Template: template, Values: values}}}, nil
		},
	}

	ts := httptest.NewServer(newSosAPI(context.Background(), chi.NewRouter(), dispatcher, encoding.NewRepository(), nil, nil, nil).router)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&version=2.0.0&request=GetObservation", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "{\"observations\":[]}\n")
	is.Equal(values.closed, 1) // the iterator is closed once the document is written
}

func TestCacheReload(t *testing.T) {
	reloader := &CacheReloaderMock{TriggerFunc: func() {}}
	is, ts, _ := testSetup(t, operations.NewRegistry(), reloader)

	resp, _ := newTestRequest(is, ts, http.MethodPost, "/admin/cache/reload", nil)

	is.Equal(resp.StatusCode, http.StatusAccepted)
	is.Equal(len(reloader.TriggerCalls()), 1)
}

func TestHealthAndMetrics(t *testing.T) {
	is, ts, _ := testSetup(t, operations.NewRegistry(), nil)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/health", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&version=2.0.0&request=GetResult", nil)

	resp, body := newTestRequest(is, ts, http.MethodGet, "/metrics", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "sos_requests_total")) // request metrics are exposed
}

type closeRecorder struct {
	closed int
}

func (c *closeRecorder) Next(ctx context.Context) bool   { return false }
func (c *closeRecorder) Observation() domain.Observation { return domain.Observation{} }
func (c *closeRecorder) Err() error                      { return nil }
func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp, string(respBody)
}

func testSetup(t *testing.T, ops Dispatcher, reloader CacheReloader) (*is.I, *httptest.Server, *metrics.Metrics) {
	is := is.New(t)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	api := newSosAPI(context.Background(), chi.NewRouter(), ops, encoding.NewRepository(), reloader, m, reg)

	ts := httptest.NewServer(api.router)
	t.Cleanup(ts.Close)

	return is, ts, m
}

func TestUnsupportedResponseFormatIsRejectedUpFront(t *testing.T) {
	is := is.New(t)

	dispatcher := &DispatcherMock{
		HandleFunc: func(ctx context.Context, req domain.Request) (any, error) {
			return nil, nil
		},
	}

	ts := httptest.NewServer(newSosAPI(context.Background(), chi.NewRouter(), dispatcher, encoding.NewRepository(), nil, nil, nil).router)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodGet, "/service?service=SOS&version=2.0.0&request=GetObservation&responseFormat=text/csv", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(body, `"locator":"responseFormat"`))
	is.Equal(len(dispatcher.HandleCalls()), 0) // the operation is never invoked
}

func TestThatOversizedRequestBodiesAreRejected(t *testing.T) {
	is := is.New(t)

	dispatcher := &DispatcherMock{
		HandleFunc: func(ctx context.Context, req domain.Request) (any, error) {
			return nil, nil
		},
	}

	ts := httptest.NewServer(newSosAPI(context.Background(), chi.NewRouter(), dispatcher, encoding.NewRepository(), nil, nil, nil).router)
	defer ts.Close()

	padding := strings.Repeat(" ", int(MaxRequestBodySize))
	resp, body := newTestRequest(is, ts, http.MethodPost, "/service",
		strings.NewReader(`{"request":"GetCapabilities","service":"SOS"`+padding+`}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(body, `"code":"InvalidRequest"`))
	is.True(strings.Contains(body, "exceeds"))
	is.Equal(len(dispatcher.HandleCalls()), 0) // the body is never decoded into a request
}
