package domain

import (
	"context"
	"time"
)

// StatsEvent é uma decisão do rate limit (permitida ou negada).
//
// Cuidado com cardinalidade: Key e Path sem controle podem gerar muitas chaves no Redis.
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// StatsStore persiste contadores de decisões. Erros são best-effort para o chamador.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
