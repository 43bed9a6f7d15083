package main

import (
	"context"
	"flag"

	"github.com/diwise/api-sos/internal/pkg/application/cache"
	"github.com/diwise/api-sos/internal/pkg/application/config"
	"github.com/diwise/api-sos/internal/pkg/application/dao"
	"github.com/diwise/api-sos/internal/pkg/application/geometry"
	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/profile"
	"github.com/diwise/api-sos/internal/pkg/application/query"
	"github.com/diwise/api-sos/internal/pkg/application/services/capabilities"
	"github.com/diwise/api-sos/internal/pkg/application/services/dataavailability"
	"github.com/diwise/api-sos/internal/pkg/application/services/features"
	"github.com/diwise/api-sos/internal/pkg/application/services/observations"
	"github.com/diwise/api-sos/internal/pkg/application/services/results"
	"github.com/diwise/api-sos/internal/pkg/application/services/sensors"
	"github.com/diwise/api-sos/internal/pkg/application/streaming"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/presentation"
	"github.com/diwise/api-sos/internal/pkg/presentation/encoding"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var configFileName string

func main() {
	serviceName := "api-sos"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&configFileName, "config", "", "A yaml file with service settings, overrides CONFIG_PATH")
	flag.Parse()

	var cfg *config.Config
	var err error

	if configFileName != "" {
		cfg, err = config.LoadFrom(configFileName)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	profiles, err := profile.Load(cfg.Profile.File)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load profiles")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	connector, err := database.NewConnector(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	db, err := database.NewDatabaseConnection(connector)
	if err != nil {
		log.Fatal().Msgf("failed to connect to database, shutting down... %s", err.Error())
	}

	sessions := database.NewSessionProvider(db, cfg.Database.MaxSessions, m, log)
	repo := dao.NewRepository()
	builder := query.NewBuilder(geometry.NewHandler(cfg.Spatial.StorageSRID))
	streamCfg := streaming.Config{Mode: streaming.Mode(cfg.Streaming.Mode), ChunkSize: cfg.Streaming.ChunkSize}
	locale := cfg.I18n.DefaultLocale

	contents := cache.New()
	feeder := cache.NewFeeder(contents, sessions, repo, cfg.Cache.Threads, m)
	refresher := cache.NewRefresher(feeder, cfg.Cache.UpdateInterval)
	refresher.Start(ctx)
	defer refresher.Shutdown()

	enc := encoding.NewRepository()
	registry := operations.NewRegistry()

	observationSvc := observations.NewService(sessions, repo, builder, profiles, observations.Settings{
		MaxTimeSeries: cfg.Limits.MaxTimeSeries,
		MaxValues:     cfg.Limits.MaxValues,
		DefaultLocale: locale,
		Streaming:     streamCfg,
	}, m)

	resultSvc := results.NewService(sessions, repo, builder, results.Settings{
		MaxValues:     cfg.Limits.MaxValues,
		DefaultLocale: locale,
		Streaming:     streamCfg,
	}, m)

	featureSvc := features.NewService(sessions, repo, builder, features.Settings{
		DefaultLocale:          locale,
		StrictSpatialFiltering: cfg.Spatial.StrictFilteringProfile,
	})

	sensorSvc := sensors.NewService(sessions, repo, locale)
	gdaSvc := dataavailability.NewService(sessions, repo, dao.NewObservationStats(repo, cfg.GDA.ObservationStats), builder, locale)

	capabilitiesSvc := capabilities.NewService(contents, registry, profiles, capabilities.Settings{
		Title:                      cfg.Service.Title,
		Abstract:                   cfg.Service.Abstract,
		Provider:                   cfg.Service.Provider,
		URL:                        cfg.Service.URL,
		DefaultLocale:              locale,
		ResponseFormats:            enc.ResponseFormats(),
		ProcedureDescriptionFormat: sensors.SensorML20,
	})

	for _, handlers := range [][]operations.Handler{
		observationSvc.Handlers(),
		resultSvc.Handlers(),
		featureSvc.Handlers(),
		sensorSvc.Handlers(),
		gdaSvc.Handlers(),
		capabilitiesSvc.Handlers(),
	} {
		for _, h := range handlers {
			registry.Register(h)
		}
	}

	log.Info().Strs("operations", registry.Operations()).Msg("registered operations")

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")

	r := chi.NewRouter()
	app := presentation.NewAPI(ctx, r, registry, enc, refresher, m, prometheus.DefaultGatherer)

	err = app.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
