// Package accesslog registra uma linha zap por requisição e propaga o request id.
package accesslog

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultHeader = "X-Request-Id"

type ctxKey struct{}

// RequestID devolve o id colocado no contexto pelo middleware, ou "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type Options struct {
	Logger *zap.Logger
	// Header de onde o id é lido e para onde é devolvido. Vazio usa DefaultHeader.
	Header string
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(opts.Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(opts.Header, id)

			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			opts.Logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int64("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

type recorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

// Unwrap deixa o http.ResponseController alcançar o writer original.
func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
