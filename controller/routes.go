package controller

import (
	"io"
	"net/http"

	"autoscaling-demo/controller/application"
	"autoscaling-demo/middleware/accesslog"

	"go.uber.org/zap"
)

type Middleware func(next http.Handler) http.Handler

type Handlers struct {
	Service application.Service
	Logger  *zap.Logger
}

// Routes registra GET / (apenas o caminho exato) e GET /load no mux.
// loadMW envolve apenas /load; o primeiro da lista é o mais externo.
func Routes(mux *http.ServeMux, h Handlers, loadMW ...Middleware) {
	var load http.Handler = http.HandlerFunc(h.Load)
	for i := len(loadMW) - 1; i >= 0; i-- {
		load = loadMW[i](load)
	}

	mux.HandleFunc("GET /{$}", h.Hello)
	mux.Handle("GET /load", load)
}

func (h Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	h.writeText(w, h.Service.Greet())
}

func (h Handlers) Load(w http.ResponseWriter, r *http.Request) {
	msg, res := h.Service.GenerateLoad()

	h.logger().Info("load generated",
		zap.String("request_id", accesslog.RequestID(r.Context())),
		zap.Duration("elapsed", res.Elapsed),
		zap.Uint64("iterations", res.Iterations),
	)

	h.writeText(w, msg)
}

func (h Handlers) writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger().Warn("write response", zap.Error(err))
	}
}

func (h Handlers) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
