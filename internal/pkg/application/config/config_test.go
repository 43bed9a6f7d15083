package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadFrom("")
	is.NoErr(err)

	is.Equal(cfg.Cache.Threads, 5)
	is.Equal(cfg.Cache.UpdateInterval, 5*time.Minute)
	is.Equal(cfg.Streaming.Mode, "chunk")
	is.Equal(cfg.Streaming.ChunkSize, 1000)
	is.Equal(cfg.Limits.MaxTimeSeries, int64(0)) // unlimited by default
	is.Equal(cfg.I18n.DefaultLocale, "en")
	is.Equal(cfg.Spatial.StorageSRID, 4326)
}

func TestFileOverridesDefaults(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, `
cache:
  threads: 2
streaming:
  mode: scroll
limits:
  max_time_series: 50
  max_values: 10000
i18n:
  default_locale: sv
`)

	cfg, err := LoadFrom(path)
	is.NoErr(err)

	is.Equal(cfg.Cache.Threads, 2)
	is.Equal(cfg.Streaming.Mode, "scroll")
	is.Equal(cfg.Streaming.ChunkSize, 1000) // not in the file, so the default remains
	is.Equal(cfg.Limits.MaxTimeSeries, int64(50))
	is.Equal(cfg.Limits.MaxValues, int64(10000))
	is.Equal(cfg.I18n.DefaultLocale, "sv")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, "cache:\n  threads: 2\n")
	t.Setenv("SOS_CACHE_THREADS", "8")
	t.Setenv("SOS_CACHE_UPDATE_INTERVAL", "30s")
	t.Setenv("SOS_SPATIAL_STRICT_FILTERING_PROFILE", "true")
	t.Setenv("SOS_UNKNOWN_SETTING", "ignored")

	cfg, err := LoadFrom(path)
	is.NoErr(err)

	is.Equal(cfg.Cache.Threads, 8)
	is.Equal(cfg.Cache.UpdateInterval, 30*time.Second)
	is.True(cfg.Spatial.StrictFilteringProfile)
}

func TestInvalidSettingsAreRejected(t *testing.T) {
	is := is.New(t)

	t.Setenv("SOS_STREAMING_MODE", "bulk")

	_, err := LoadFrom("")
	is.True(err != nil) // bulk is not a streaming mode
}

func TestThatAMissingConfigPathIsAnError(t *testing.T) {
	is := is.New(t)

	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	is.True(err != nil) // the default paths should not be used instead

	path := writeConfig(t, "cache:\n  threads: 3\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Cache.Threads, 3)
}

func TestEnvTransform(t *testing.T) {
	is := is.New(t)

	is.Equal(envTransformFunc("SOS_LIMITS_MAX_VALUES"), "limits.max_values")
	is.Equal(envTransformFunc("SOS_I18N_DEFAULT_LOCALE"), "i18n.default_locale")
	is.Equal(envTransformFunc("SOS_PORT"), "")
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "sos.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
