package infra

import (
	"math"
	"math/rand/v2"
	"time"

	"autoscaling-demo/controller/domain"
)

// SpinBurner gera carga de CPU num loop apertado, sem I/O e sem ceder o processador.
//
// Não guarda estado mutável entre chamadas: chamadas concorrentes são independentes
// e cada uma ocupa a própria goroutine pela duração pedida.
type SpinBurner struct {
	now   func() time.Time
	since func(time.Time) time.Duration
}

type SpinOption func(*SpinBurner)

// WithClock troca o relógio usado para medir o prazo (útil em testes).
func WithClock(now func() time.Time) SpinOption {
	return func(b *SpinBurner) {
		b.now = now
		b.since = func(start time.Time) time.Duration { return now().Sub(start) }
	}
}

func NewSpinBurner(opts ...SpinOption) *SpinBurner {
	b := &SpinBurner{
		now:   time.Now,
		since: time.Since,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Burn implementa domain.Burner.
func (b *SpinBurner) Burn(d time.Duration) domain.BurnResult {
	start := b.now()

	var (
		sum float64
		n   uint64
	)
	for b.since(start) < d {
		sum += math.Pow(rand.Float64(), rand.Float64())
		n++
	}

	return domain.BurnResult{
		Started:    start,
		Elapsed:    b.since(start),
		Iterations: n,
		Checksum:   sum,
	}
}
