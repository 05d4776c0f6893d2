package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yquannn/sibbap-admin/internal/jobs"
	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/internal/statemachine"
	"github.com/Yquannn/sibbap-admin/internal/upstream"
	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

// ScreenKind identifies which admin screen a session renders
type ScreenKind string

const (
	ScreenLoanMonitor  ScreenKind = "loan_monitor"
	ScreenTimeDeposits ScreenKind = "time_deposits"
)

// Enqueuer runs background jobs, typically *jobs.Worker
type Enqueuer interface {
	Enqueue(job jobs.Job)
}

// Screen is one mounted admin screen. It fetches once on mount and again
// only on an explicit reload; filter changes re-derive from memory.
type Screen struct {
	ID        string
	Kind      ScreenKind
	MemberID  string
	CreatedAt time.Time

	mu           sync.Mutex
	lastSeen     time.Time
	loanFilters  models.LoanFilters
	depositQuery string

	loans    *Loader[*models.LoanBundle]
	deposits *Loader[[]models.DepositAccount]
	modal    *statemachine.DepositModal
}

// ScreenView is the rendered state of a screen session
type ScreenView struct {
	ScreenID     string                   `json:"screen_id"`
	Kind         ScreenKind               `json:"kind"`
	MemberID     string                   `json:"member_id,omitempty"`
	State        LoadState                `json:"state"`
	Generation   uint64                   `json:"generation"`
	Error        string                   `json:"error,omitempty"`
	LoanMonitor  *models.LoanMonitorView  `json:"loan_monitor,omitempty"`
	TimeDeposits *models.DepositListView  `json:"time_deposits,omitempty"`
	Modal        *statemachine.ModalState `json:"modal,omitempty"`
}

// ScreenService keeps the mounted screens in memory
type ScreenService struct {
	mu      sync.RWMutex
	screens map[string]*Screen

	loans       *LoanMonitorService
	deposits    *TimeDepositService
	runner      Enqueuer
	idleTimeout time.Duration
	now         func() time.Time
}

func NewScreenService(loans *LoanMonitorService, deposits *TimeDepositService, runner Enqueuer, idleTimeout time.Duration) *ScreenService {
	return &ScreenService{
		screens:     make(map[string]*Screen),
		loans:       loans,
		deposits:    deposits,
		runner:      runner,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// MountLoanMonitor opens a loan monitor for memberID and starts its fetch
func (s *ScreenService) MountLoanMonitor(memberID string) (*ScreenView, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, upstream.ErrMissingMemberID
	}

	sc := s.newScreen(ScreenLoanMonitor)
	sc.MemberID = memberID
	sc.loanFilters = models.LoanFilters{}.Normalize()
	sc.loans = NewLoader(func(ctx context.Context) (*models.LoanBundle, error) {
		return s.loans.Fetch(ctx, memberID)
	})

	s.register(sc)
	s.startLoans(sc)
	return s.render(sc)
}

// MountTimeDeposits opens a time-deposit list and starts its fetch
func (s *ScreenService) MountTimeDeposits() (*ScreenView, error) {
	sc := s.newScreen(ScreenTimeDeposits)
	sc.modal = statemachine.NewDepositModal()
	sc.deposits = NewLoader(s.deposits.Fetch)

	s.register(sc)
	s.startDeposits(sc)
	return s.render(sc)
}

// View renders the screen with its current filters
func (s *ScreenService) View(id string) (*ScreenView, error) {
	sc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.render(sc)
}

// SetLoanFilters replaces the filter state of a loan monitor
func (s *ScreenService) SetLoanFilters(id string, filters models.LoanFilters) (*ScreenView, error) {
	sc, err := s.getKind(id, ScreenLoanMonitor)
	if err != nil {
		return nil, err
	}
	sc.mu.Lock()
	sc.loanFilters = filters.Normalize()
	sc.mu.Unlock()
	return s.render(sc)
}

// SetDepositQuery replaces the search text of a time-deposit list
func (s *ScreenService) SetDepositQuery(id, query string) (*ScreenView, error) {
	sc, err := s.getKind(id, ScreenTimeDeposits)
	if err != nil {
		return nil, err
	}
	sc.mu.Lock()
	sc.depositQuery = query
	sc.mu.Unlock()
	return s.render(sc)
}

// Reload fetches the screen's data again; the newest fetch wins
func (s *ScreenService) Reload(id string) (*ScreenView, error) {
	sc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	switch sc.Kind {
	case ScreenLoanMonitor:
		s.startLoans(sc)
	case ScreenTimeDeposits:
		s.startDeposits(sc)
	}
	return s.render(sc)
}

// FireModal drives the deposit modal. Row events need accountID to name
// one of the loaded accounts; without one the modal rejects the event.
func (s *ScreenService) FireModal(ctx context.Context, id, event, accountID string) (*ScreenView, error) {
	sc, err := s.getKind(id, ScreenTimeDeposits)
	if err != nil {
		return nil, err
	}

	var account *models.DepositAccount
	if statemachine.RequiresAccount(event) && accountID != "" {
		snap := sc.deposits.Snapshot()
		if snap.Data == nil {
			return nil, ErrNotReady
		}
		acc, ok := FindDeposit(snap.Data, accountID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		account = acc
	}

	if err := sc.modal.Fire(ctx, event, account); err != nil {
		return nil, err
	}
	return s.render(sc)
}

// Unmount closes a screen; a fetch still in flight is discarded
func (s *ScreenService) Unmount(id string) error {
	s.mu.Lock()
	sc, ok := s.screens[id]
	if ok {
		delete(s.screens, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrScreenNotFound
	}
	sc.detach()
	return nil
}

// SweepIdle unmounts screens that have not been viewed for the idle timeout
func (s *ScreenService) SweepIdle(ctx context.Context) error {
	if s.idleTimeout <= 0 {
		return nil
	}
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	var idle []*Screen
	for id, sc := range s.screens {
		if sc.seenBefore(cutoff) {
			idle = append(idle, sc)
			delete(s.screens, id)
		}
	}
	s.mu.Unlock()

	for _, sc := range idle {
		sc.detach()
	}
	if len(idle) > 0 {
		logger.Info("[ScreenService] unmounted idle screens", "count", len(idle))
	}
	return nil
}

// Count returns the number of mounted screens
func (s *ScreenService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.screens)
}

func (s *ScreenService) newScreen(kind ScreenKind) *Screen {
	now := s.now()
	return &Screen{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: now,
		lastSeen:  now,
	}
}

func (s *ScreenService) register(sc *Screen) {
	s.mu.Lock()
	s.screens[sc.ID] = sc
	s.mu.Unlock()
}

func (s *ScreenService) get(id string) (*Screen, error) {
	s.mu.RLock()
	sc, ok := s.screens[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrScreenNotFound
	}
	sc.touch(s.now())
	return sc, nil
}

func (s *ScreenService) getKind(id string, kind ScreenKind) (*Screen, error) {
	sc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if sc.Kind != kind {
		return nil, fmt.Errorf("%w: %s", ErrWrongScreenKind, sc.Kind)
	}
	return sc, nil
}

func (s *ScreenService) startLoans(sc *Screen) {
	gen, ok := sc.loans.Begin()
	if !ok {
		return
	}
	s.runner.Enqueue(func(ctx context.Context) error {
		bundle, err := sc.loans.fetch(ctx)
		if err != nil {
			logger.Warn("[ScreenService] loan fetch failed", "screen", sc.ID, "member", sc.MemberID, "error", err)
		}
		if !sc.loans.Complete(gen, bundle, err) {
			logger.Debug("[ScreenService] discarded stale loan response", "screen", sc.ID, "generation", gen)
		}
		return nil
	})
}

func (s *ScreenService) startDeposits(sc *Screen) {
	gen, ok := sc.deposits.Begin()
	if !ok {
		return
	}
	s.runner.Enqueue(func(ctx context.Context) error {
		accounts, err := sc.deposits.fetch(ctx)
		if err != nil {
			logger.Warn("[ScreenService] deposit fetch failed", "screen", sc.ID, "error", err)
		}
		if !sc.deposits.Complete(gen, accounts, err) {
			logger.Debug("[ScreenService] discarded stale deposit response", "screen", sc.ID, "generation", gen)
		}
		return nil
	})
}

func (s *ScreenService) render(sc *Screen) (*ScreenView, error) {
	view := &ScreenView{ScreenID: sc.ID, Kind: sc.Kind, MemberID: sc.MemberID}

	sc.mu.Lock()
	filters, query := sc.loanFilters, sc.depositQuery
	sc.mu.Unlock()

	switch sc.Kind {
	case ScreenLoanMonitor:
		snap := sc.loans.Snapshot()
		view.State, view.Generation = snap.State, snap.Generation
		if snap.State == StateError {
			view.Error = LoanErrorMessage(snap.Err)
		}
		if snap.Data != nil {
			lv, err := s.loans.Derive(snap.Data, filters)
			if err != nil {
				return nil, err
			}
			view.LoanMonitor = lv
		}

	case ScreenTimeDeposits:
		snap := sc.deposits.Snapshot()
		view.State, view.Generation = snap.State, snap.Generation
		if snap.State == StateError {
			view.Error = DepositErrorMessage(snap.Err)
		}
		if snap.Data != nil {
			view.TimeDeposits = DeriveDepositView(snap.Data, query)
		}
		modal := sc.modal.Snapshot()
		view.Modal = &modal
	}
	return view, nil
}

func (sc *Screen) touch(now time.Time) {
	sc.mu.Lock()
	sc.lastSeen = now
	sc.mu.Unlock()
}

func (sc *Screen) seenBefore(t time.Time) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.lastSeen.Before(t)
}

func (sc *Screen) detach() {
	if sc.loans != nil {
		sc.loans.Detach()
	}
	if sc.deposits != nil {
		sc.deposits.Detach()
	}
}
