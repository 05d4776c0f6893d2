package services

import (
	"github.com/Yquannn/sibbap-admin/internal/jobs"
)

// StatsProvider exposes background worker statistics
type StatsProvider interface {
	GetStats() jobs.WorkerStats
}

// JobStatus is the worker snapshot plus derived load indicators.
type JobStatus struct {
	jobs.WorkerStats
	// Saturated is set when every worker is busy and fetches are waiting.
	Saturated   bool    `json:"saturated"`
	FailureRate float64 `json:"failure_rate"`
}

type JobService struct {
	worker StatsProvider
}

func NewJobService(worker StatsProvider) *JobService {
	return &JobService{worker: worker}
}

func (s *JobService) GetStatus() JobStatus {
	stats := s.worker.GetStats()
	status := JobStatus{
		WorkerStats: stats,
		Saturated:   stats.ActiveJobs >= stats.Workers && stats.QueueLength > 0,
	}
	if stats.CompletedJobs > 0 {
		status.FailureRate = float64(stats.FailedJobs) / float64(stats.CompletedJobs)
	}
	return status
}
