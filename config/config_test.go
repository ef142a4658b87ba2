package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DATABASE_URL", "NATS_URL", "NATS_NKEY_SEED", "HTTP_ADDR", "CORS_ALLOWED_ORIGINS",
	"METRICS_ADDRESS", "ENV", "LOG_FORMAT", "LOG_LEVEL", "STATS_LOCALE", "STATS_TIMEZONE",
	"STATS_DEFAULT_LIMIT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
postgres:
  dsn: postgres://file/db
nats:
  url: nats://file:4222
http:
  addr: ":9000"
  allowed_origins: ["https://darts.example"]
stats:
  default_limit: 25
  locale: de
  timezone: Europe/Vienna
observability:
  log_format: text
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/db", cfg.Postgres.DSN)
	assert.Equal(t, "nats://file:4222", cfg.NATS.URL)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://darts.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 25, cfg.Stats.DefaultLimit)
	assert.Equal(t, DefaultMaxListLimit, cfg.Stats.MaxLimit)
	assert.Equal(t, "de", cfg.Stats.Locale)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
	assert.Equal(t, float64(DefaultRateLimitRPS), cfg.HTTP.RateLimitRPS)
	assert.Equal(t, DefaultRateLimitBurst, cfg.HTTP.RateLimitBurst)

	loc, err := cfg.Stats.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Vienna", loc.String())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\nstats:\n  locale: de\n")

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("STATS_LOCALE", "fr")
	t.Setenv("STATS_DEFAULT_LIMIT", "10")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Postgres.DSN)
	assert.Equal(t, "fr", cfg.Stats.Locale)
	assert.Equal(t, 10, cfg.Stats.DefaultLimit)
	assert.Equal(t, 2.5, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 4, cfg.HTTP.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := LoadConfig(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://env/db")
	cfg, err := LoadConfig(missing)
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.Equal(t, DefaultListLimit, cfg.Stats.DefaultLimit)
	assert.Equal(t, DefaultLocale, cfg.Stats.Locale)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.Empty(t, cfg.NATS.URL)

	loc, err := cfg.Stats.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad limit", env: map[string]string{"STATS_DEFAULT_LIMIT": "many"}, want: "STATS_DEFAULT_LIMIT"},
		{name: "bad rps", env: map[string]string{"RATE_LIMIT_RPS": "fast"}, want: "RATE_LIMIT_RPS"},
		{name: "bad burst", env: map[string]string{"RATE_LIMIT_BURST": "x"}, want: "RATE_LIMIT_BURST"},
		{name: "default above max", env: map[string]string{"STATS_DEFAULT_LIMIT": "900"}, want: "exceeds max_limit"},
		{name: "bad timezone", env: map[string]string{"STATS_TIMEZONE": "Mars/Olympus"}, want: "timezone"},
		{name: "seed without url", env: map[string]string{"NATS_NKEY_SEED": "SUAxxx"}, want: "nkey_seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "postgres://env/db")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(writeConfig(t, "postgres: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
