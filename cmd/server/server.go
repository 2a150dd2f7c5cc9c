package main

import (
	"net/http"

	"autoscaling-demo/controller"
	"autoscaling-demo/controller/application"
	"autoscaling-demo/middleware/accesslog"

	"go.uber.org/zap"
)

// newServer monta o http.Server: access log por fora de tudo e guards só em /load.
func newServer(cfg config, logger *zap.Logger, svc application.Service, guards []controller.Middleware) *http.Server {
	mux := http.NewServeMux()
	controller.Routes(mux, controller.Handlers{
		Service: svc,
		Logger:  logger.Named("controller"),
	}, guards...)

	return &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           accesslog.Middleware(accesslog.Options{Logger: logger.Named("http")})(mux),
		ReadHeaderTimeout: cfg.readHeaderTO,
		ReadTimeout:       cfg.readTO,
		WriteTimeout:      cfg.writeTO,
		IdleTimeout:       cfg.idleTO,
	}
}
