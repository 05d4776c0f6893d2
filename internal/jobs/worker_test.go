package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerEnqueueRunsJobs(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var ran atomic.Int32
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		w.Enqueue(func(ctx context.Context) error {
			ran.Add(1)
			done <- struct{}{}
			return nil
		})
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}

	assert.Equal(t, int32(3), ran.Load())
	assert.Eventually(t, func() bool {
		return w.GetStats().CompletedJobs == 3
	}, time.Second, 10*time.Millisecond)
}

func TestWorkerCountsFailuresAndPanics(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Enqueue(func(ctx context.Context) error { return errors.New("boom") })
	w.Enqueue(func(ctx context.Context) error { panic("kaboom") })

	assert.Eventually(t, func() bool {
		s := w.GetStats()
		return s.CompletedJobs == 2 && s.FailedJobs == 2 && s.ActiveJobs == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWorkerScheduleEveryImmediate(t *testing.T) {
	w := NewWorker(1)

	var runs atomic.Int32
	w.ScheduleEveryImmediate(20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	w.Shutdown()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after shutdown")
}

func TestWorkerDropsJobsAfterShutdown(t *testing.T) {
	w := NewWorker(1)
	w.Shutdown()

	var ran atomic.Bool
	w.Enqueue(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.False(t, ran.Load())
	assert.Error(t, w.Context().Err())
}
