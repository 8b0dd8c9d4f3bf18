package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PostgresWithDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "turnate"
password = "secret"
dbname = "turnate"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, ProviderPostgres, cfg.Provider.Mode)
	assert.Equal(t, 31, cfg.Booking.MaxRangeDays)
	assert.False(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t, "host=db port=5432 user=turnate password=secret dbname=turnate sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Argentina/Buenos_Aires", loc.String())
}

func TestLoad_HTTPProvider(t *testing.T) {
	path := writeConfig(t, `
[provider]
mode = "http"

[backend]
url = "https://api.turnate.example"
timeout = 3

[booking]
default_time_zone = "UTC"
advance_booking_days = 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderHTTP, cfg.Provider.Mode)
	assert.Equal(t, "https://api.turnate.example", cfg.Backend.URL)
	assert.Equal(t, 60, cfg.Booking.AdvanceBookingDays)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown provider", content: "[provider]\nmode = \"mongo\"\n"},
		{name: "http without url", content: "[provider]\nmode = \"http\"\n"},
		{name: "postgres without dbname", content: "[server]\nhttp_port = 8080\n"},
		{name: "bad time zone", content: "[database]\ndbname = \"t\"\n[booking]\ndefault_time_zone = \"Mars/Olympus\"\n"},
		{name: "bad rate limit", content: "[database]\ndbname = \"t\"\n[rate_limit]\nenabled = true\nburst = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_RateLimitTrustForwarded(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "turnate"

[rate_limit]
enabled = true
requests_per_second = 2
burst = 4
trust_forwarded = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
}
