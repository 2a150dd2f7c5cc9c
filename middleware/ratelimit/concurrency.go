package ratelimit

import (
	"net/http"
	"time"

	"autoscaling-demo/middleware/ratelimit/application"
	"autoscaling-demo/middleware/ratelimit/infra"

	"go.uber.org/zap"
)

type ConcurrencyOptions struct {
	// Max <= 0 desliga o limite (o middleware vira no-op).
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	// RetryAfter, se > 0, é enviado no header Retry-After das rejeições.
	RetryAfter time.Duration
	Logger     *zap.Logger
}

func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	svc := application.ConcurrencyService{
		Pool:           infra.NewChanPool(opts.Max),
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := svc.Acquire(r.Context())
			if !ok {
				opts.Logger.Info("concurrency limit reached",
					zap.Int("max", opts.Max),
					zap.String("path", r.URL.Path),
				)
				if opts.RetryAfter > 0 {
					w.Header().Set("Retry-After", retryAfterSeconds(opts.RetryAfter))
				}
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
