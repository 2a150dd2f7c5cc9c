package application

import (
	"time"

	"autoscaling-demo/middleware/ratelimit/domain"
)

const defaultRetryAfter = time.Second

// Service decide se a chave pode iniciar uma carga.
type Service struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

// Decide permite tudo quando não há Store ou quando o Store não tem limiter para a chave.
func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}

	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}

	retry := s.RetryAfter
	if retry <= 0 {
		retry = defaultRetryAfter
	}
	return domain.Decision{RetryAfter: retry}
}
