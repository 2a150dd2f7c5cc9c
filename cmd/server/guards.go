package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"autoscaling-demo/controller"
	"autoscaling-demo/middleware/ratelimit"
	"autoscaling-demo/middleware/ratelimit/domain"
	"autoscaling-demo/middleware/ratelimit/infra"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// loadGuards monta os middlewares aplicados apenas a GET /load.
// O close devolvido fecha a conexão com o Redis ou, com estatísticas em memória,
// registra os contadores acumulados no log.
func loadGuards(ctx context.Context, cfg config, logger *zap.Logger) ([]controller.Middleware, func(), error) {
	var (
		guards []controller.Middleware
		closer = func() {}
	)

	if cfg.rateEnabled {
		store := infra.NewStore(cfg.rateRPS, cfg.rateBurst)
		store.StartJanitor(ctx)

		var stats domain.StatsStore
		switch {
		case cfg.rateStatsEnabled && cfg.rateStatsRedisAddr == "":
			mem := infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.rateStatsTrackKeys))
			stats = mem
			closer = func() {
				total := mem.Total()
				logger.Info("rate limit stats",
					zap.Int64("allowed", total.Allowed),
					zap.Int64("denied", total.Denied),
					zap.Any("by_route", mem.ByRoute()),
				)
			}
		case cfg.rateStatsEnabled:
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.rateStatsRedisAddr,
				Password: cfg.rateStatsRedisPassword,
				DB:       cfg.rateStatsRedisDB,
			})

			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := rdb.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				_ = rdb.Close()
				return nil, closer, fmt.Errorf("redis stats ping: %w", err)
			}

			closer = func() { _ = rdb.Close() }
			stats = infra.NewRedisStatsStore(
				rdb,
				infra.WithStatsPrefix(cfg.rateStatsPrefix),
				infra.WithStatsTTL(cfg.rateStatsTTL),
				infra.WithStatsBucket(cfg.rateStatsBucket),
				infra.WithStatsTrackKeys(cfg.rateStatsTrackKeys),
			)
		}

		guards = append(guards, ratelimit.Middleware(ratelimit.Options{
			Store:               store,
			Stats:               stats,
			KeyHeader:           cfg.rateKeyHeader,
			TrustXForwardedFor:  cfg.trustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.retryAfter,
			AddRateLimitHeaders: cfg.addHeaders,
			Logger:              logger.Named("ratelimit"),
		}))
	}

	// rate limit fica por fora: requisição negada não chega a ocupar vaga
	guards = append(guards, ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
		RetryAfter:     cfg.retryAfter,
		Logger:         logger.Named("concurrency"),
	}))

	return guards, closer, nil
}
