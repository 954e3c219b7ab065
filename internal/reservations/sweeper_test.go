package reservations

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bookly/internal/bookings"
)

// sweepCountingRepo counts sweeps so the loop can be observed from the test
// goroutine without a race.
type sweepCountingRepo struct {
	sweeps atomic.Int64
}

func (r *sweepCountingRepo) SweepExpired(ctx context.Context) (int64, error) {
	r.sweeps.Add(1)
	return 2, nil
}

func (r *sweepCountingRepo) Reserve(ctx context.Context, hold *SlotReservation) (int, error) {
	return 0, nil
}

func (r *sweepCountingRepo) Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error) {
	return nil, nil
}

func (r *sweepCountingRepo) Extend(ctx context.Context, id, customerID uuid.UUID, newExpiresAt time.Time) (*SlotReservation, error) {
	return nil, nil
}

func (r *sweepCountingRepo) Confirm(ctx context.Context, id, customerID uuid.UUID, build BookingBuilder) (*bookings.Booking, error) {
	return nil, nil
}

func (r *sweepCountingRepo) GetActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*SlotReservation, error) {
	return nil, nil
}

func (r *sweepCountingRepo) CountActiveHolds(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	return 0, nil
}

func (r *sweepCountingRepo) CountActiveBookings(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	return 0, nil
}

func TestSweeperRunsOnInterval(t *testing.T) {
	repo := &sweepCountingRepo{}
	sweeper := NewSweeper(repo, 10*time.Millisecond)

	sweeper.Start(context.Background())
	assert.Eventually(t, func() bool {
		return repo.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	sweeper.Stop()
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	repo := &sweepCountingRepo{}
	sweeper := NewSweeper(repo, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	assert.Eventually(t, func() bool {
		return repo.sweeps.Load() >= 1
	}, time.Second, 5*time.Millisecond)
	cancel()

	settled := repo.sweeps.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, repo.sweeps.Load(), settled+1)
}
