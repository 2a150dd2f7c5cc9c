package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"autoscaling-demo/controller/application"
	"autoscaling-demo/controller/infra"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	// .env é opcional; variáveis já definidas no ambiente têm precedência
	envErr := godotenv.Load()

	cfg, err := loadConfig(viper.New())
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.logLevel, cfg.logDevelopment)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("unable to load .env", zap.Error(envErr))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	guards, closeGuards, err := loadGuards(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("load guards", zap.Error(err))
	}
	defer closeGuards()

	srv := newServer(cfg, logger, application.Service{Burner: infra.NewSpinBurner()}, guards)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		logger.Info("shutting down", zap.Duration("timeout", cfg.shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server listening",
		zap.String("addr", cfg.listenAddr),
		zap.Bool("rate_enabled", cfg.rateEnabled),
		zap.Float64("rate_rps", cfg.rateRPS),
		zap.Int("rate_burst", cfg.rateBurst),
		zap.Bool("rate_stats_enabled", cfg.rateStatsEnabled),
		zap.Int("concurrency_max", cfg.concurrencyMax),
		zap.Duration("concurrency_timeout", cfg.concurrencyTimeout),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}

	<-shutdownDone
}
