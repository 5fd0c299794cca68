package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// JobExpirer flips active jobs past their expiry and reports how many rows
// changed.
type JobExpirer interface {
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper periodically materializes the read-time expiry rule: active
// jobs past their visibility window are flipped to expired so listings and
// counters agree without every query re-deriving it.
type ExpirySweeper struct {
	jobs     JobExpirer
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewExpirySweeper(jobs JobExpirer, interval time.Duration, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		jobs:     jobs,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exposed so a pass can be triggered directly.
func (s *ExpirySweeper) Sweep(ctx context.Context) {
	count, err := s.jobs.MarkExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("expired jobs swept", zap.Int64("count", count))
	}
}

func (s *ExpirySweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
