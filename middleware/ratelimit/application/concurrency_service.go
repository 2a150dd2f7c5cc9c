package application

import (
	"context"
	"time"

	"autoscaling-demo/middleware/ratelimit/domain"
)

// ConcurrencyService adquire uma vaga do Pool respeitando AcquireTimeout.
type ConcurrencyService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire espera por uma vaga:
//   - AcquireTimeout <= 0: até o ctx cancelar
//   - AcquireTimeout > 0: no máximo AcquireTimeout
//
// Sem Pool, sempre consegue.
func (s ConcurrencyService) Acquire(ctx context.Context) (func(), bool) {
	if s.Pool == nil {
		return func() {}, true
	}

	if s.AcquireTimeout <= 0 {
		return s.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return s.Pool.Acquire(acqCtx)
}
