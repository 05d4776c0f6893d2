package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs upstream fetches for mounted screens and the periodic
// maintenance jobs on a fixed pool of goroutines.
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan Job
	log     *slog.Logger
	stats   WorkerStats
	statsMu sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	Workers       int   `json:"workers"`
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 100),
		log:    logger.Component("worker"),
	}
	w.stats.Workers = numWorkers

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool. When the queue is full the job runs on
// the caller's goroutine. After Shutdown jobs are dropped.
func (w *Worker) Enqueue(job Job) {
	if w.ctx.Err() != nil {
		w.log.Warn("worker stopped, dropping job")
		return
	}
	select {
	case w.queue <- job:
	default:
		w.log.Warn("queue full, running job synchronously")
		w.run(-1, job)
	}
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job := <-w.queue:
			w.run(workerID, job)
		}
	}
}

// run executes job and records the outcome; panics count as failures
func (w *Worker) run(workerID int, job Job) {
	w.trackJobStart()
	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			w.log.Error("job failed", "worker", workerID, "error", err)
			w.trackJobEnd(false)
			return
		}
		w.log.Debug("job completed", "worker", workerID, "took", time.Since(start))
		w.trackJobEnd(true)
	}()
	err = job(w.ctx)
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval (not at startup).
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.schedule(interval, false, job)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals.
func (w *Worker) ScheduleEveryImmediate(interval time.Duration, job Job) {
	w.schedule(interval, true, job)
}

func (w *Worker) schedule(interval time.Duration, immediate bool, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.run(-1, job)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(-1, job)
			}
		}
	}()
}

// Shutdown stops all workers and waits for running jobs. Queued jobs that
// have not started are discarded.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts finished jobs; CompletedJobs includes failures
func (w *Worker) trackJobEnd(ok bool) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	if !ok {
		w.stats.FailedJobs++
	}
}
