package reservations

import (
	"context"
	"time"

	"bookly/pkg/logger"
)

// Sweeper reclaims expired holds on a fixed interval, bounding capacity
// staleness under low traffic. The opportunistic sweep inside reserve and the
// availability reads covers busy periods; this covers quiet ones.
type Sweeper struct {
	repo     Repository
	interval time.Duration
	log      *logger.Logger
	done     chan struct{}
}

func NewSweeper(repo Repository, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: interval,
		log:      logger.GetDefault(),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop in a background goroutine until Stop is called
// or ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
	s.log.Info("reservation sweeper started", "interval", s.interval.String())
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	close(s.done)
	s.log.Info("reservation sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	swept, err := s.repo.SweepExpired(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to sweep expired holds")
		return
	}
	s.log.LogHoldsSwept(ctx, swept)
}
