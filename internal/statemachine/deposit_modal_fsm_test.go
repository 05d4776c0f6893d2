package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

func TestDepositModalTransitions(t *testing.T) {
	ctx := context.Background()
	account := &models.DepositAccount{ID: "7", FirstName: "Ana", LastName: "Cruz", MemberCode: "C001"}

	tests := []struct {
		name      string
		event     string
		account   *models.DepositAccount
		wantState string
		wantKind  string
	}{
		{name: "Open Account", event: EventOpenAccount, wantState: ModalOpenDeposit, wantKind: ModalKindDeposit},
		{name: "Roll over", event: EventRollOver, account: account, wantState: ModalOpenDeposit, wantKind: ModalKindDeposit},
		{name: "Early withdraw", event: EventEarlyWithdraw, account: account, wantState: ModalOpenWithdraw, wantKind: ModalKindWithdraw},
		{name: "Withdraw", event: EventWithdraw, account: account, wantState: ModalOpenWithdraw, wantKind: ModalKindWithdraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDepositModal()
			assert.Equal(t, ModalClosed, m.Current())

			require.NoError(t, m.Open(ctx, tt.event, tt.account))

			snap := m.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.Equal(t, tt.wantKind, snap.Kind)
			assert.True(t, snap.Open)
			if tt.account != nil {
				require.NotNil(t, snap.Account)
				assert.Equal(t, tt.account.ID, snap.Account.ID)
			} else {
				assert.Nil(t, snap.Account)
			}

			require.NoError(t, m.Close(ctx))
			snap = m.Snapshot()
			assert.Equal(t, ModalClosed, snap.State)
			assert.False(t, snap.Open)
			assert.Nil(t, snap.Account)
		})
	}
}

func TestDepositModalRejectsInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	account := &models.DepositAccount{ID: "1"}

	t.Run("close while closed", func(t *testing.T) {
		m := NewDepositModal()
		assert.ErrorIs(t, m.Close(ctx), ErrInvalidState)
	})

	t.Run("open while open", func(t *testing.T) {
		m := NewDepositModal()
		require.NoError(t, m.Open(ctx, EventWithdraw, account))
		assert.ErrorIs(t, m.Open(ctx, EventRollOver, account), ErrInvalidState)
		assert.Equal(t, ModalOpenWithdraw, m.Current())
	})

	t.Run("row action without account", func(t *testing.T) {
		m := NewDepositModal()
		assert.ErrorIs(t, m.Open(ctx, EventWithdraw, nil), ErrAccountRequired)
		assert.Equal(t, ModalClosed, m.Current())
	})

	t.Run("unknown event", func(t *testing.T) {
		m := NewDepositModal()
		assert.ErrorIs(t, m.Fire(ctx, "delete", account), ErrUnknownEvent)
	})

	t.Run("close via Open", func(t *testing.T) {
		m := NewDepositModal()
		assert.ErrorIs(t, m.Open(ctx, EventClose, nil), ErrInvalidState)
	})
}

func TestDepositModalSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	account := &models.DepositAccount{ID: "1", FirstName: "Ana"}

	m := NewDepositModal()
	require.NoError(t, m.Open(ctx, EventRollOver, account))

	account.FirstName = "Changed"
	snap := m.Snapshot()
	snap.Account.FirstName = "Mutated"

	assert.Equal(t, models.Text("Ana"), m.Snapshot().Account.FirstName)
}
