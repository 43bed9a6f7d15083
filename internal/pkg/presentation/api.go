package presentation

import (
	"compress/flate"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/presentation/encoding"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

var tracer = otel.Tracer("api-sos/presentation")

// MaxRequestBodySize limits the size of POST requests to the service endpoint
const MaxRequestBodySize int64 = 1 << 20

type API interface {
	Start(port string) error
}

//go:generate moq -rm -out dispatcher_mock.go . Dispatcher
type Dispatcher interface {
	Handle(ctx context.Context, req domain.Request) (any, error)
}

//go:generate moq -rm -out cachereloader_mock.go . CacheReloader
type CacheReloader interface {
	Trigger()
}

type sosAPI struct {
	router   chi.Router
	ops      Dispatcher
	encoder  *encoding.Repository
	reloader CacheReloader
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, ops Dispatcher, enc *encoding.Repository, reloader CacheReloader, m *metrics.Metrics, gatherer prometheus.Gatherer) API {
	return newSosAPI(ctx, r, ops, enc, reloader, m, gatherer)
}

func newSosAPI(ctx context.Context, r chi.Router, ops Dispatcher, enc *encoding.Repository, reloader CacheReloader, m *metrics.Metrics, gatherer prometheus.Gatherer) *sosAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"text/plain", "application/json", "application/xml",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-sos", otelchi.WithChiRoutes(r)))

	a := &sosAPI{
		router:   r,
		ops:      ops,
		encoder:  enc,
		reloader: reloader,
		metrics:  m,
		log:      log,
	}

	a.addProbeHandlers(r, gatherer)

	r.Get("/service", a.newServiceHandler(func(r *http.Request) (domain.Request, error) {
		return DecodeKVP(r.URL.Query())
	}))
	r.With(middleware.RequestSize(MaxRequestBodySize)).Post("/service", a.newServiceHandler(func(r *http.Request) (domain.Request, error) {
		return DecodeJSON(r.Body)
	}))

	if reloader != nil {
		r.Post("/admin/cache/reload", a.newCacheReloadHandler())
	}

	return a
}

func (a *sosAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-sos on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *sosAPI) addProbeHandlers(r chi.Router, gatherer prometheus.Gatherer) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}

type decodeFunc func(r *http.Request) (domain.Request, error)

func (a *sosAPI) newServiceHandler(decode decodeFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "sos-request")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		started := time.Now()
		operation := "unknown"

		req, err := decode(r)
		if err == nil {
			err = a.checkResponseFormat(req)
		}
		if err == nil {
			operation = req.Operation()
			log = log.With().Str("operation", operation).Logger()
			ctx = logging.NewContextWithLogger(ctx, log)

			var resp any
			resp, err = a.ops.Handle(ctx, req)
			if err == nil {
				a.writeResponse(ctx, w, resp, log)
				a.metrics.ObserveRequest(operation, "OK", started)
				return
			}
		}

		exc := ows.AsException(err)
		if exc.Cause != nil {
			log.Error().Err(err).Msg("request failed")
		} else {
			log.Debug().Str("code", string(exc.Code)).Msg(err.Error())
		}

		if werr := encoding.WriteException(w, err, !acceptsXML(r)); werr != nil {
			log.Error().Err(werr).Msg("failed to write exception report")
		}

		a.metrics.ObserveRequest(operation, string(exc.Code), started)
	})
}

// checkResponseFormat rejects observation formats without value encoders
// before any part of the response is written
func (a *sosAPI) checkResponseFormat(req domain.Request) error {
	var format string

	switch r := req.(type) {
	case domain.GetObservationRequest:
		format = r.ResponseFormat
	case domain.GetObservationByIDRequest:
		format = r.ResponseFormat
	}

	if format != "" && !a.encoder.Supports(format) {
		return ows.InvalidParameter("responseFormat", "the response format %s is not supported", format)
	}

	return nil
}

func (a *sosAPI) writeResponse(ctx context.Context, w http.ResponseWriter, resp any, log zerolog.Logger) {
	if c, ok := resp.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close response")
			}
		}()
	}

	w.Header().Add("Content-Type", a.encoder.ContentType(resp))
	w.WriteHeader(http.StatusOK)

	// the status has been sent, a failure can only cut the document short
	if err := a.encoder.Encode(ctx, w, resp); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (a *sosAPI) newCacheReloadHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.reloader.Trigger()
		w.WriteHeader(http.StatusAccepted)
	})
}

func acceptsXML(r *http.Request) bool {
	accept := strings.ToLower(r.Header.Get("Accept"))
	return strings.Contains(accept, "xml") && !strings.Contains(accept, "json")
}
