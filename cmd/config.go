package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/jobs"
	"pizzeria/internal/pkg/errs"
)

const (
	DefaultHTTPPort         = "8080"
	DefaultDBDriver         = postgres.DriverPostgres
	DefaultDBSslMode        = "disable"
	DefaultSQLitePath       = "pizzeria.db"
	DefaultIdempotencyTTL   = 24 * time.Hour
	DefaultKafkaTopicPrefix = "pizzeria"
	DefaultOutboxBatchSize  = 100
	DefaultTimeZone         = "UTC"
	DefaultLogLevel         = "info"
)

type Config struct {
	HTTPPort            string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	SQLitePath          string
	StorageTimeout      time.Duration
	TimeZone            *time.Location
	RedisAddr           string
	IdempotencyTTL      time.Duration
	KafkaBrokers        string
	KafkaTopicPrefix    string
	OutboxRelaySchedule string
	OutboxBatchSize     int
	StatisticsSchedule  string
	LogLevel            slog.Level
}

// ConfigFromEnv reads every setting through getenv. Unset keys take their
// defaults; all malformed values are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:            env("HTTP_PORT", DefaultHTTPPort),
		DBDriver:            strings.ToLower(env("DB_DRIVER", DefaultDBDriver)),
		DBHost:              env("DB_HOST", "localhost"),
		DBPort:              env("DB_PORT", "5432"),
		DBUser:              env("DB_USER", ""),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              env("DB_NAME", ""),
		DBSslMode:           env("DB_SSLMODE", DefaultDBSslMode),
		SQLitePath:          env("SQLITE_PATH", DefaultSQLitePath),
		RedisAddr:           env("REDIS_ADDR", ""),
		KafkaBrokers:        env("KAFKA_BROKERS", ""),
		KafkaTopicPrefix:    env("KAFKA_TOPIC_PREFIX", DefaultKafkaTopicPrefix),
		OutboxRelaySchedule: env("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule),
		StatisticsSchedule:  env("STATISTICS_SCHEDULE", jobs.DefaultStatisticsSchedule),
	}

	var driverErr error
	switch cfg.DBDriver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		driverErr = errs.NewValueIsInvalidErrorWithCause(
			"DB_DRIVER",
			fmt.Errorf("%q is neither %s nor %s", cfg.DBDriver, postgres.DriverPostgres, postgres.DriverSQLite),
		)
	}

	var storageErr, ttlErr, batchErr, tzErr, levelErr error
	cfg.StorageTimeout, storageErr = parseDuration("STORAGE_TIMEOUT", env("STORAGE_TIMEOUT", ""), commands.DefaultStorageTimeout)
	cfg.IdempotencyTTL, ttlErr = parseDuration("IDEMPOTENCY_TTL", env("IDEMPOTENCY_TTL", ""), DefaultIdempotencyTTL)
	cfg.OutboxBatchSize, batchErr = parseBatchSize(env("OUTBOX_BATCH_SIZE", ""))

	cfg.TimeZone, tzErr = time.LoadLocation(env("TIME_ZONE", DefaultTimeZone))
	if tzErr != nil {
		tzErr = errs.NewValueIsInvalidErrorWithCause("TIME_ZONE", tzErr)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", DefaultLogLevel))); err != nil {
		levelErr = errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	if err := errors.Join(driverErr, storageErr, ttlErr, batchErr, tzErr, levelErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) DBConfig() postgres.DBConfig {
	return postgres.DBConfig{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SslMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}

// Location is the zone that bounds "today" in listings and statistics.
func (c Config) Location() *time.Location {
	if c.TimeZone == nil {
		return time.UTC
	}
	return c.TimeZone
}

func parseDuration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s is not greater than 0", d))
	}
	return d, nil
}

func parseBatchSize(raw string) (int, error) {
	if raw == "" {
		return DefaultOutboxBatchSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("OUTBOX_BATCH_SIZE", err)
	}
	if n < 1 || n > commands.MaxOutboxBatchSize {
		return 0, errs.NewValueIsOutOfRangeError("OUTBOX_BATCH_SIZE", n, 1, commands.MaxOutboxBatchSize)
	}
	return n, nil
}
