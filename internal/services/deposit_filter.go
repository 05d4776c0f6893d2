package services

import (
	"fmt"
	"strings"

	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/internal/statemachine"
)

const (
	depositAccountType  = "Time Deposit"
	depositEmptyMessage = "No active time deposits found."
)

// FilterDeposits keeps the accounts whose "first last" name or member code
// contains query, ignoring case. An empty query keeps everything.
func FilterDeposits(accounts []models.DepositAccount, query string) []models.DepositAccount {
	q := strings.ToLower(query)

	out := make([]models.DepositAccount, 0, len(accounts))
	for _, acc := range accounts {
		if q == "" ||
			strings.Contains(strings.ToLower(acc.FullName()), q) ||
			strings.Contains(acc.MemberCode.Lower(), q) {
			out = append(out, acc)
		}
	}
	return out
}

// DepositTitle is the list header, counting the filtered rows
func DepositTitle(count int) string {
	return fmt.Sprintf("Time Deposit Members - %d", count)
}

// DeriveDepositView filters accounts and formats the rows of the list
func DeriveDepositView(accounts []models.DepositAccount, query string) *models.DepositListView {
	filtered := FilterDeposits(accounts, query)

	view := &models.DepositListView{
		Title: DepositTitle(len(filtered)),
		Count: len(filtered),
		Query: query,
		HeaderAction: models.Action{
			Label: "Open Account",
			Event: statemachine.EventOpenAccount,
		},
		Rows: make([]models.DepositRow, 0, len(filtered)),
	}

	for _, acc := range filtered {
		view.Rows = append(view.Rows, depositRow(acc))
	}
	if len(view.Rows) == 0 {
		view.EmptyMessage = depositEmptyMessage
	}
	return view
}

func depositRow(acc models.DepositAccount) models.DepositRow {
	return models.DepositRow{
		ID:              acc.ID.String(),
		CodeNumber:      acc.MemberCode.Or(models.NotAvailable),
		AccountNo:       acc.AccountNo.Or(models.NotAvailable),
		AccountType:     depositAccountType,
		AccountHolder:   acc.FullName(),
		CoAccountHolder: acc.CoAccountHolder.Or(models.NotAvailable),
		DepositedAmount: FormatAmount(acc.Amount),
		Term:            fmt.Sprintf("%d Months", acc.FixedTerm),
		Status:          acc.Remarks.String(),
		StatusActive:    acc.IsActive(),
		Actions: []models.Action{
			{Label: "Early Withdraw", Event: statemachine.EventEarlyWithdraw},
			{Label: "Roll Over", Event: statemachine.EventRollOver},
			{Label: "Withdraw", Event: statemachine.EventWithdraw},
		},
	}
}

// FindDeposit looks an account up by id
func FindDeposit(accounts []models.DepositAccount, id string) (*models.DepositAccount, bool) {
	for i := range accounts {
		if accounts[i].ID.String() == id {
			acc := accounts[i]
			return &acc, true
		}
	}
	return nil, false
}
