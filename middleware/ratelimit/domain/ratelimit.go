package domain

import "time"

// Key identifica um cliente (IP, API key, etc).
type Key string

// Limiter decide se uma nova carga pode começar agora.
type Limiter interface {
	Allow() bool
}

// LimiterStore devolve o Limiter de uma chave, criando sob demanda.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter vai no header Retry-After quando bloqueado. Zero quando permitido.
	RetryAfter time.Duration
}
