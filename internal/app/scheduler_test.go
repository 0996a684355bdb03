package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 1
}

func runScheduler(ctx context.Context, s *Scheduler) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	return done
}

func TestSchedulerSweepsUntilStopped(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, zap.NewNop())
	first, second := &countingSweeper{}, &countingSweeper{}
	s.Add("first", first)
	s.Add("second", second)

	done := runScheduler(context.Background(), s)

	assert.Eventually(t, func() bool {
		return first.calls.Load() >= 2 && second.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerStopsOnContext(t *testing.T) {
	s := NewScheduler(time.Hour, zap.NewNop())
	sweeper := &countingSweeper{}
	s.Add("sessions", sweeper)

	ctx, cancel := context.WithCancel(context.Background())
	done := runScheduler(ctx, s)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Zero(t, sweeper.calls.Load())
}

func TestSchedulerDefaultInterval(t *testing.T) {
	s := NewScheduler(0, zap.NewNop())
	assert.Equal(t, DefaultSweepInterval, s.interval)
}
