package services

import (
	"github.com/Yquannn/sibbap-admin/internal/charts"
	"github.com/Yquannn/sibbap-admin/internal/config"
	"github.com/Yquannn/sibbap-admin/internal/jobs"
	"github.com/Yquannn/sibbap-admin/internal/upstream"
)

// Services holds all service instances
type Services struct {
	LoanMonitor *LoanMonitorService
	TimeDeposit *TimeDepositService
	Screens     *ScreenService
	Health      *HealthService
	Export      *ExportService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(client *upstream.Client, registry *charts.Registry, worker *jobs.Worker, cfg *config.Config) *Services {
	dist := UserDistribution{
		Total:  int64(cfg.UserDistributionTotal),
		Active: int64(cfg.UserDistributionActive),
	}

	loanSvc := NewLoanMonitorService(client, registry, dist)
	depositSvc := NewTimeDepositService(client)
	screenSvc := NewScreenService(loanSvc, depositSvc, worker, cfg.ScreenIdleTimeout)

	return &Services{
		LoanMonitor: loanSvc,
		TimeDeposit: depositSvc,
		Screens:     screenSvc,
		Health:      NewHealthService(client, screenSvc, cfg.UpstreamTimeout),
		Export:      NewExportService(),
		Job:         NewJobService(worker),
	}
}
