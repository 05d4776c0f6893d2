package statemachine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"

	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

// Modal states
const (
	ModalClosed       = "closed"
	ModalOpenDeposit  = "open_deposit"
	ModalOpenWithdraw = "open_withdraw"
)

// Modal events, one per button on the time-deposit screen
const (
	EventOpenAccount   = "open_account"
	EventRollOver      = "roll_over"
	EventEarlyWithdraw = "early_withdraw"
	EventWithdraw      = "withdraw"
	EventClose         = "close"
)

// Modal kinds handed to the account modal component
const (
	ModalKindDeposit  = "deposit"
	ModalKindWithdraw = "withdraw"
)

var (
	ErrInvalidState    = errors.New("invalid modal transition")
	ErrUnknownEvent    = errors.New("unknown modal event")
	ErrAccountRequired = errors.New("an account must be selected for this action")
)

// requiresAccount lists the events triggered from a table row
var requiresAccount = map[string]bool{
	EventRollOver:      true,
	EventEarlyWithdraw: true,
	EventWithdraw:      true,
}

// ModalState is a point-in-time view of the modal
type ModalState struct {
	State   string                 `json:"state"`
	Kind    string                 `json:"kind,omitempty"`
	Open    bool                   `json:"open"`
	Account *models.DepositAccount `json:"account,omitempty"`
}

// DepositModal drives the open/rollover/withdraw modal of the time-deposit
// screen. Transitions have no side effects; the modal component performs
// the actual deposit or withdrawal against the core API.
type DepositModal struct {
	mu      sync.Mutex
	fsm     *fsm.FSM
	account *models.DepositAccount
}

// NewDepositModal creates a closed modal
func NewDepositModal() *DepositModal {
	m := &DepositModal{}

	m.fsm = fsm.NewFSM(
		ModalClosed,
		fsm.Events{
			// header button, no row selected
			{Name: EventOpenAccount, Src: []string{ModalClosed}, Dst: ModalOpenDeposit},

			// row buttons
			{Name: EventRollOver, Src: []string{ModalClosed}, Dst: ModalOpenDeposit},
			{Name: EventEarlyWithdraw, Src: []string{ModalClosed}, Dst: ModalOpenWithdraw},
			{Name: EventWithdraw, Src: []string{ModalClosed}, Dst: ModalOpenWithdraw},

			// open → closed
			{Name: EventClose, Src: []string{ModalOpenDeposit, ModalOpenWithdraw}, Dst: ModalClosed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("deposit modal transition", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)

	return m
}

// Fire applies event. Row events need the account the button belongs to;
// open_account and close ignore it.
func (m *DepositModal) Fire(ctx context.Context, event string, account *models.DepositAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !isKnownEvent(event) {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	if requiresAccount[event] && account == nil {
		return fmt.Errorf("%w: %s", ErrAccountRequired, event)
	}
	if !m.fsm.Can(event) {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, event, m.fsm.Current())
	}

	if err := m.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s: %w", event, err)
	}

	switch {
	case event == EventClose, event == EventOpenAccount:
		m.account = nil
	default:
		selected := *account
		m.account = &selected
	}
	return nil
}

// Open is shorthand for the header and row buttons
func (m *DepositModal) Open(ctx context.Context, event string, account *models.DepositAccount) error {
	if event == EventClose {
		return fmt.Errorf("%w: %s is not an open event", ErrInvalidState, event)
	}
	return m.Fire(ctx, event, account)
}

// Close closes the modal and clears the selected account
func (m *DepositModal) Close(ctx context.Context) error {
	return m.Fire(ctx, EventClose, nil)
}

// Current returns the current state
func (m *DepositModal) Current() string {
	return m.fsm.Current()
}

// Can checks if a transition is possible
func (m *DepositModal) Can(event string) bool {
	return m.fsm.Can(event)
}

// Snapshot returns the state together with the selected account
func (m *DepositModal) Snapshot() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := ModalState{State: m.fsm.Current()}
	switch state.State {
	case ModalOpenDeposit:
		state.Kind = ModalKindDeposit
		state.Open = true
	case ModalOpenWithdraw:
		state.Kind = ModalKindWithdraw
		state.Open = true
	}
	if m.account != nil {
		selected := *m.account
		state.Account = &selected
	}
	return state
}

// RequiresAccount reports whether event is fired from a table row
func RequiresAccount(event string) bool {
	return requiresAccount[event]
}

func isKnownEvent(event string) bool {
	switch event {
	case EventOpenAccount, EventRollOver, EventEarlyWithdraw, EventWithdraw, EventClose:
		return true
	}
	return false
}
