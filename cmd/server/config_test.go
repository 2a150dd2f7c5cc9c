package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.listenAddr)
	assert.Equal(t, "info", cfg.logLevel)
	assert.Equal(t, 30*time.Second, cfg.writeTO)
	assert.Equal(t, 15*time.Second, cfg.shutdownTimeout)
	assert.False(t, cfg.rateEnabled)
	assert.Equal(t, 0, cfg.concurrencyMax)
	assert.Equal(t, 5, cfg.rateBurst)
	assert.Equal(t, "ratelimit:stats", cfg.rateStatsPrefix)
	assert.Equal(t, "minute", cfg.rateStatsBucket)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("WRITE_TIMEOUT", "45s")
	t.Setenv("CONCURRENCY_MAX", "2")
	t.Setenv("CONCURRENCY_TIMEOUT", "250ms")
	t.Setenv("RATE_ENABLED", "true")
	t.Setenv("RATE_RPS", "3.5")
	t.Setenv("RATE_BURST", "7")
	t.Setenv("RATE_KEY_HEADER", " X-Api-Key ")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.listenAddr)
	assert.Equal(t, 45*time.Second, cfg.writeTO)
	assert.Equal(t, 2, cfg.concurrencyMax)
	assert.Equal(t, 250*time.Millisecond, cfg.concurrencyTimeout)
	assert.True(t, cfg.rateEnabled)
	assert.InDelta(t, 3.5, cfg.rateRPS, 1e-9)
	assert.Equal(t, 7, cfg.rateBurst)
	assert.Equal(t, "X-Api-Key", cfg.rateKeyHeader)
}

func TestLoadConfig_LowRPSDefaultsBurstToOne(t *testing.T) {
	t.Setenv("RATE_RPS", "0.1")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.rateBurst)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		intention string
		env       map[string]string
		wantErr   string
	}{
		{
			"write timeout shorter than load",
			map[string]string{"WRITE_TIMEOUT": "5s"},
			"WRITE_TIMEOUT must be greater than 10s",
		},
		{
			"negative concurrency",
			map[string]string{"CONCURRENCY_MAX": "-1"},
			"CONCURRENCY_MAX must be >= 0",
		},
		{
			"rate enabled with zero rps",
			map[string]string{"RATE_ENABLED": "true", "RATE_RPS": "0"},
			"RATE_RPS must be > 0",
		},
		{
			"rate enabled with zero burst",
			map[string]string{"RATE_ENABLED": "true", "RATE_BURST": "0"},
			"RATE_BURST must be > 0",
		},
		{
			"concurrency limit without acquire timeout",
			map[string]string{"CONCURRENCY_MAX": "1"},
			"CONCURRENCY_TIMEOUT must be > 0",
		},
		{
			"queue wait plus load exceeds write timeout",
			map[string]string{"CONCURRENCY_MAX": "1", "CONCURRENCY_TIMEOUT": "5s", "WRITE_TIMEOUT": "15s"},
			"WRITE_TIMEOUT must be greater than load duration + CONCURRENCY_TIMEOUT (15s)",
		},
		{
			"stats with unknown bucket",
			map[string]string{"RATE_STATS_ENABLED": "true", "RATE_STATS_REDIS_ADDR": "localhost:6379", "RATE_STATS_BUCKET": "hour"},
			"RATE_STATS_BUCKET must be",
		},
	}

	for _, tc := range cases {
		t.Run(tc.intention, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := loadConfig(viper.New())
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug", true)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud", false)
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestLoadConfig_ConcurrencyWithinWriteBudget(t *testing.T) {
	t.Setenv("CONCURRENCY_MAX", "1")
	t.Setenv("CONCURRENCY_TIMEOUT", "5s")
	t.Setenv("WRITE_TIMEOUT", "16s")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.concurrencyTimeout)
}

func TestLoadConfig_StatsWithoutRedisIsValid(t *testing.T) {
	t.Setenv("RATE_ENABLED", "true")
	t.Setenv("RATE_STATS_ENABLED", "true")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.rateStatsEnabled)
	assert.Empty(t, cfg.rateStatsRedisAddr)
}
