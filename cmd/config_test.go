package cmd_test

import (
	"log/slog"
	"testing"
	"time"

	"pizzeria/cmd"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/jobs"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, cmd.DefaultHTTPPort, cfg.HTTPPort)
	assert.Equal(t, postgres.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, cmd.DefaultIdempotencyTTL, cfg.IdempotencyTTL)
	assert.Equal(t, cmd.DefaultOutboxBatchSize, cfg.OutboxBatchSize)
	assert.Equal(t, jobs.DefaultOutboxRelaySchedule, cfg.OutboxRelaySchedule)
	assert.Equal(t, jobs.DefaultStatisticsSchedule, cfg.StatisticsSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(envOf(map[string]string{
		"HTTP_PORT":         "9090",
		"DB_DRIVER":         "SQLite",
		"SQLITE_PATH":       ":memory:",
		"STORAGE_TIMEOUT":   "750ms",
		"TIME_ZONE":         "Europe/Rome",
		"REDIS_ADDR":        "localhost:6379",
		"IDEMPOTENCY_TTL":   "1h",
		"KAFKA_BROKERS":     "a:9092,b:9092",
		"OUTBOX_BATCH_SIZE": "25",
		"LOG_LEVEL":         "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, postgres.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 750*time.Millisecond, cfg.StorageTimeout)
	assert.Equal(t, "Europe/Rome", cfg.Location().String())
	assert.Equal(t, time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	db := cfg.DBConfig()
	assert.Equal(t, postgres.DriverSQLite, db.Driver)
	assert.Equal(t, ":memory:", db.SQLitePath)
}

func TestConfigFromEnv_ReportsEveryMalformedValue(t *testing.T) {
	_, err := cmd.ConfigFromEnv(envOf(map[string]string{
		"DB_DRIVER":         "mysql",
		"STORAGE_TIMEOUT":   "soon",
		"IDEMPOTENCY_TTL":   "-1s",
		"OUTBOX_BATCH_SIZE": "5000",
		"TIME_ZONE":         "Mars/Olympus",
		"LOG_LEVEL":         "loud",
	}))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	for _, key := range []string{"DB_DRIVER", "STORAGE_TIMEOUT", "IDEMPOTENCY_TTL", "OUTBOX_BATCH_SIZE", "TIME_ZONE", "LOG_LEVEL"} {
		assert.Contains(t, err.Error(), key)
	}
}
