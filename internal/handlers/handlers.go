package handlers

import (
	"github.com/Yquannn/sibbap-admin/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	LoanMonitor *LoanMonitorHandler
	TimeDeposit *TimeDepositHandler
	Screen      *ScreenHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(svcs.Health, svcs.Job),
		LoanMonitor: NewLoanMonitorHandler(svcs.LoanMonitor, svcs.Export),
		TimeDeposit: NewTimeDepositHandler(svcs.TimeDeposit, svcs.Export),
		Screen:      NewScreenHandler(svcs.Screens),
		Job:         NewJobHandler(svcs.Job),
	}
}
