// Package config loads the service settings from built in defaults, an
// optional yaml file and SOS_ prefixed environment variables, in that order
// of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	ConfigPathEnvVar string = "CONFIG_PATH"
	EnvPrefix        string = "SOS_"
)

var DefaultConfigPaths = []string{
	"sos.yaml",
	"/etc/sos/sos.yaml",
}

type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Streaming StreamingConfig `koanf:"streaming"`
	Limits    LimitsConfig    `koanf:"limits"`
	I18n      I18nConfig      `koanf:"i18n"`
	Spatial   SpatialConfig   `koanf:"spatial"`
	Profile   ProfileConfig   `koanf:"profile"`
	GDA       GDAConfig       `koanf:"gda"`
}

type ServiceConfig struct {
	Title    string `koanf:"title" validate:"required"`
	Abstract string `koanf:"abstract"`
	Provider string `koanf:"provider"`
	URL      string `koanf:"url" validate:"omitempty,url"`
}

type DatabaseConfig struct {
	Driver      string `koanf:"driver" validate:"omitempty,oneof=sqlite postgres"`
	DSN         string `koanf:"dsn"`
	MaxSessions int    `koanf:"max_sessions" validate:"min=1"`
}

type CacheConfig struct {
	Threads        int           `koanf:"threads" validate:"min=1"`
	UpdateInterval time.Duration `koanf:"update_interval" validate:"min=0"`
}

type StreamingConfig struct {
	Mode      string `koanf:"mode" validate:"oneof=chunk scroll"`
	ChunkSize int    `koanf:"chunk_size" validate:"min=1"`
}

// LimitsConfig holds the response size limits, zero disables a limit
type LimitsConfig struct {
	MaxTimeSeries int64 `koanf:"max_time_series" validate:"min=0"`
	MaxValues     int64 `koanf:"max_values" validate:"min=0"`
}

type I18nConfig struct {
	DefaultLocale string `koanf:"default_locale" validate:"required"`
}

type SpatialConfig struct {
	StrictFilteringProfile bool `koanf:"strict_filtering_profile"`
	StorageSRID            int  `koanf:"storage_srid" validate:"min=1"`
}

type ProfileConfig struct {
	File string `koanf:"file"`
}

type GDAConfig struct {
	ObservationStats bool `koanf:"observation_stats"`
}

func defaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			Title:    "Sensor Observation Service",
			Provider: "diwise",
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			MaxSessions: 10,
		},
		Cache: CacheConfig{
			Threads:        5,
			UpdateInterval: 5 * time.Minute,
		},
		Streaming: StreamingConfig{
			Mode:      "chunk",
			ChunkSize: 1000,
		},
		Limits: LimitsConfig{
			MaxTimeSeries: 0,
			MaxValues:     0,
		},
		I18n: I18nConfig{
			DefaultLocale: "en",
		},
		Spatial: SpatialConfig{
			StorageSRID: 4326,
		},
		GDA: GDAConfig{
			ObservationStats: true,
		},
	}
}

// Load reads the configuration file named by CONFIG_PATH, or the first of
// DefaultConfigPaths that exists, on top of the defaults and then applies
// the environment
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	return validate.Struct(c)
}

func findConfigFile() string {
	// an explicit path never falls back to the default paths
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var sections = []string{"service", "database", "cache", "streaming", "limits", "i18n", "spatial", "profile", "gda"}

// envTransformFunc maps SOS_CACHE_THREADS to cache.threads and
// SOS_SPATIAL_STRICT_FILTERING_PROFILE to spatial.strict_filtering_profile.
// Variables that do not start with a known section are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}

	return ""
}
