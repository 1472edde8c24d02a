package application

import (
	"context"
	"time"

	"edge-gateway/middleware/ratelimit/domain"
)

// ConcurrencyService adquire e libera vagas do pool com timeout opcional,
// sem saber nada de HTTP.
type ConcurrencyService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta uma vaga. Com AcquireTimeout <= 0 espera até o ctx
// encerrar; senão espera no máximo o timeout. ok=false => nada adquirido.
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
