package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5432
user = "booking"
password = "secret"
dbname = "booking"

[booking]
min_lead_time_minutes = 60
cancellation_cutoff_minutes = 720

[admin]
user_ids = [1, 42]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, []int64{1, 42}, cfg.Admin.UserIDs)
	assert.Equal(t,
		"host=db.internal port=5432 user=booking password=secret dbname=booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "pfr-booking-service", cfg.Metrics.ServiceName)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Workers.SweepInterval)
	assert.Equal(t, 15, cfg.Workers.DispatchInterval)
	assert.Equal(t, "RUB", cfg.PaymentGateway.Currency)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}

func TestBookingConfig_Rules(t *testing.T) {
	cfg := BookingConfig{
		MinLeadTimeMinutes:        60,
		CancellationCutoffMinutes: 720,
	}

	rules := cfg.Rules()

	assert.Equal(t, time.Hour, rules.MinLeadTime)
	assert.Equal(t, 12*time.Hour, rules.CancellationCutoff)
	// Незаполненные значения падают на доменные дефолты
	assert.Equal(t, domain.DefaultMinDuration, rules.MinDuration)
	assert.Equal(t, domain.DefaultMaxDuration, rules.MaxDuration)
	assert.Equal(t, domain.DefaultPendingTTL, rules.PendingTTL)
}

func TestBookingConfig_RulesDefaults(t *testing.T) {
	rules := (&BookingConfig{}).Rules()
	assert.Equal(t, domain.DefaultBookingRules(), rules)
}
