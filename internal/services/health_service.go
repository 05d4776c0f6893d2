package services

import (
	"context"
	"sync"
	"time"

	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

// Pinger checks that the core API answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeResult is the outcome of the last upstream probe
type ProbeResult struct {
	Reachable bool       `json:"reachable"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// HealthStatus is returned by the health endpoint
type HealthStatus struct {
	Status   string      `json:"status"`
	Service  string      `json:"service"`
	Version  string      `json:"version"`
	Upstream ProbeResult `json:"upstream"`
	Screens  int         `json:"screens"`
}

// HealthService keeps the result of the scheduled upstream probe
type HealthService struct {
	pinger  Pinger
	screens *ScreenService
	timeout time.Duration

	mu   sync.RWMutex
	last ProbeResult
}

func NewHealthService(pinger Pinger, screens *ScreenService, timeout time.Duration) *HealthService {
	return &HealthService{pinger: pinger, screens: screens, timeout: timeout}
}

// Probe pings the core API and records the outcome. It never fails the
// job: an unreachable upstream is a state, not a job error.
func (s *HealthService) Probe(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.pinger.Ping(ctx)
	now := time.Now()
	result := ProbeResult{Reachable: err == nil, CheckedAt: &now}
	if err != nil {
		result.Error = err.Error()
		logger.Warn("[HealthService] upstream unreachable", "error", err)
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
	return nil
}

// Status reports "ok", or "degraded" when the last probe failed
func (s *HealthService) Status() HealthStatus {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	status := "ok"
	if last.CheckedAt != nil && !last.Reachable {
		status = "degraded"
	}

	screens := 0
	if s.screens != nil {
		screens = s.screens.Count()
	}

	return HealthStatus{
		Status:   status,
		Service:  "sibbap-admin",
		Version:  "1.0.0",
		Upstream: last,
		Screens:  screens,
	}
}
