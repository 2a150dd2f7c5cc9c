package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"autoscaling-demo/controller/domain"
	"autoscaling-demo/middleware/ratelimit/infra"

	"github.com/spf13/viper"
)

type config struct {
	listenAddr      string
	logLevel        string
	logDevelopment  bool
	readHeaderTO    time.Duration
	readTO          time.Duration
	writeTO         time.Duration
	idleTO          time.Duration
	shutdownTimeout time.Duration

	concurrencyMax     int
	concurrencyTimeout time.Duration

	rateEnabled   bool
	rateRPS       float64
	rateBurst     int
	rateKeyHeader string
	trustXFF      bool
	retryAfter    time.Duration
	addHeaders    bool

	rateStatsEnabled       bool
	rateStatsRedisAddr     string
	rateStatsRedisPassword string
	rateStatsRedisDB       int
	rateStatsPrefix        string
	rateStatsTTL           time.Duration
	rateStatsBucket        string
	rateStatsTrackKeys     bool
}

var defaults = map[string]any{
	"LISTEN_ADDR":         ":8080",
	"LOG_LEVEL":           "info",
	"LOG_DEVELOPMENT":     false,
	"READ_HEADER_TIMEOUT": 10 * time.Second,
	"READ_TIMEOUT":        30 * time.Second,
	"WRITE_TIMEOUT":       30 * time.Second,
	"IDLE_TIMEOUT":        90 * time.Second,
	// maior que a duração da carga para as requisições em andamento terminarem
	"SHUTDOWN_TIMEOUT": 15 * time.Second,

	"CONCURRENCY_MAX":     0,
	"CONCURRENCY_TIMEOUT": time.Duration(0),

	"RATE_ENABLED":          false,
	"RATE_RPS":              1.0,
	"RATE_KEY_HEADER":       "",
	"TRUST_XFF":             false,
	"RETRY_AFTER":           time.Second,
	"ADD_RATELIMIT_HEADERS": false,

	"RATE_STATS_ENABLED":        false,
	"RATE_STATS_REDIS_ADDR":     "",
	"RATE_STATS_REDIS_PASSWORD": "",
	"RATE_STATS_REDIS_DB":       0,
	"RATE_STATS_PREFIX":         "ratelimit:stats",
	"RATE_STATS_TTL":            24 * time.Hour,
	"RATE_STATS_BUCKET":         infra.BucketMinute,
	"RATE_STATS_TRACK_KEYS":     false,
}

// loadConfig lê as variáveis de ambiente através do viper.
func loadConfig(v *viper.Viper) (config, error) {
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	cfg := config{
		listenAddr:      v.GetString("LISTEN_ADDR"),
		logLevel:        v.GetString("LOG_LEVEL"),
		logDevelopment:  v.GetBool("LOG_DEVELOPMENT"),
		readHeaderTO:    v.GetDuration("READ_HEADER_TIMEOUT"),
		readTO:          v.GetDuration("READ_TIMEOUT"),
		writeTO:         v.GetDuration("WRITE_TIMEOUT"),
		idleTO:          v.GetDuration("IDLE_TIMEOUT"),
		shutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		concurrencyMax:     v.GetInt("CONCURRENCY_MAX"),
		concurrencyTimeout: v.GetDuration("CONCURRENCY_TIMEOUT"),

		rateEnabled:   v.GetBool("RATE_ENABLED"),
		rateRPS:       v.GetFloat64("RATE_RPS"),
		rateKeyHeader: strings.TrimSpace(v.GetString("RATE_KEY_HEADER")),
		trustXFF:      v.GetBool("TRUST_XFF"),
		retryAfter:    v.GetDuration("RETRY_AFTER"),
		addHeaders:    v.GetBool("ADD_RATELIMIT_HEADERS"),

		rateStatsEnabled:       v.GetBool("RATE_STATS_ENABLED"),
		rateStatsRedisAddr:     strings.TrimSpace(v.GetString("RATE_STATS_REDIS_ADDR")),
		rateStatsRedisPassword: v.GetString("RATE_STATS_REDIS_PASSWORD"),
		rateStatsRedisDB:       v.GetInt("RATE_STATS_REDIS_DB"),
		rateStatsPrefix:        v.GetString("RATE_STATS_PREFIX"),
		rateStatsTTL:           v.GetDuration("RATE_STATS_TTL"),
		rateStatsBucket:        strings.ToLower(strings.TrimSpace(v.GetString("RATE_STATS_BUCKET"))),
		rateStatsTrackKeys:     v.GetBool("RATE_STATS_TRACK_KEYS"),
	}

	// Com RPS < 1 um burst alto deixa passar várias cargas de 10s seguidas,
	// então sem RATE_BURST explícito o burst cai para 1.
	if v.IsSet("RATE_BURST") {
		cfg.rateBurst = v.GetInt("RATE_BURST")
	} else {
		cfg.rateBurst = 5
		if cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.listenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if c.writeTO > 0 && c.writeTO <= domain.LoadDuration {
		return fmt.Errorf("WRITE_TIMEOUT must be greater than %s, got %s", domain.LoadDuration, c.writeTO)
	}
	if c.shutdownTimeout < 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be >= 0")
	}
	if c.concurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	// a espera por vaga conta no mesmo prazo de escrita que a carga
	if c.concurrencyMax > 0 {
		if c.concurrencyTimeout <= 0 {
			return errors.New("CONCURRENCY_TIMEOUT must be > 0 when CONCURRENCY_MAX > 0")
		}
		if budget := domain.LoadDuration + c.concurrencyTimeout; c.writeTO > 0 && c.writeTO <= budget {
			return fmt.Errorf("WRITE_TIMEOUT must be greater than load duration + CONCURRENCY_TIMEOUT (%s), got %s", budget, c.writeTO)
		}
	}
	if c.rateEnabled {
		if c.rateRPS <= 0 {
			return errors.New("RATE_RPS must be > 0")
		}
		if c.rateBurst <= 0 {
			return errors.New("RATE_BURST must be > 0")
		}
	}
	if c.rateStatsEnabled && c.rateStatsRedisAddr != "" {
		if c.rateStatsBucket != infra.BucketMinute && c.rateStatsBucket != infra.BucketNone {
			return fmt.Errorf("RATE_STATS_BUCKET must be %q or %q, got %q", infra.BucketMinute, infra.BucketNone, c.rateStatsBucket)
		}
	}
	return nil
}
