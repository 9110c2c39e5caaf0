package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-commission-service/internal/config"
)

func TestLoadAppliesDefaultsAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: test
commission_db:
  dsn: postgres://localhost/commissions
kafka_service:
  host: kafka
  port: "9092"
notifications:
  driver: http
  gateway_url: http://gateway.local/send
scheduler:
  pending_sweep_interval: 1m
`), 0o600))
	t.Setenv("NOTIFICATION_FALLBACK_TOKEN", "fallback-token")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "postgres://localhost/commissions", cfg.CommissionDB.Dsn)
	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.Equal(t, "commission-sale-events", cfg.KafkaService.SaleTopic)
	assert.True(t, cfg.KafkaService.Enabled())
	assert.Equal(t, "fallback-token", cfg.Notifications.FallbackToken)
	assert.Equal(t, 5*time.Second, cfg.Notifications.Timeout)
	assert.Equal(t, time.Minute, cfg.Scheduler.PendingSweepInterval)
	assert.Equal(t, 10*time.Minute, cfg.Redis.LockTTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
