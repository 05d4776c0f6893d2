package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yquannn/sibbap-admin/internal/charts"
	"github.com/Yquannn/sibbap-admin/internal/models"
)

func newTestRegistry(t *testing.T) *charts.Registry {
	t.Helper()
	reg := charts.NewRegistry()
	require.NoError(t, charts.RegisterLoanMonitor(reg))
	return reg
}

func testViewOptions(t *testing.T) LoanViewOptions {
	return LoanViewOptions{
		Charts:           newTestRegistry(t),
		UserDistribution: UserDistribution{Total: 821, Active: 384280},
		Now:              time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sampleBundle() *models.LoanBundle {
	return &models.LoanBundle{
		PersonalInfo:     &models.PersonalInfo{MemberCode: "M-001", FirstName: "Ana", LastName: "Cruz"},
		LoanApplications: sampleApps(),
		Installments:     sampleInstallments(),
		Repayments:       sampleRepayments(),
	}
}

func TestDeriveLoanViewEndToEnd(t *testing.T) {
	bundle := &models.LoanBundle{
		LoanApplications: []models.LoanApplication{
			{LoanApplicationID: "1", LoanStatus: "Active", LoanAmount: models.ParseAmount("1000")},
			{LoanApplicationID: "2", LoanStatus: "Paid Off", LoanAmount: models.ParseAmount("500"), Balance: models.ParseAmount("0")},
		},
	}

	view, err := DeriveLoanView(bundle, models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)

	assert.Equal(t, "1,500.00", view.Totals.TotalLoanAmount)
	assert.Equal(t, "1,000.00", view.Totals.ActiveLoanAmount)
	assert.Equal(t, 1, view.Payer.ActiveCount)
	assert.False(t, view.Payer.IsGoodPayer)
	// no overdue installment: on time holds, so the combined flag does too
	assert.True(t, view.Payer.IsOnTime)
	assert.True(t, view.Payer.IsGoodOrOnTime)
}

func TestDeriveLoanViewHeaderAndCards(t *testing.T) {
	view, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)

	assert.Equal(t, "M-001 - Ana Cruz", view.Member)
	assert.Equal(t, models.FilterAll, view.Filters.LoanID)
	assert.Equal(t, models.FilterAll, view.Filters.Status)
	assert.Equal(t, "1", view.ActiveLoans.Value)
	assert.Equal(t, "₱1,500.00", view.TotalLoan.Value)
	assert.Equal(t, "Cumulative amount", view.TotalLoan.Subtitle)
	assert.Equal(t, "₱650.50", view.TotalBalance.Value)
	assert.Equal(t, "Total outstanding", view.TotalBalance.Subtitle)

	filtered, err := DeriveLoanView(sampleBundle(), models.LoanFilters{Status: "active"}, testViewOptions(t))
	require.NoError(t, err)
	assert.Equal(t, "Filtered amount", filtered.TotalLoan.Subtitle)
	assert.Equal(t, "Filtered outstanding", filtered.TotalBalance.Subtitle)
	assert.Equal(t, "₱1,000.00", filtered.TotalLoan.Value)
}

func TestDeriveLoanViewMissingMember(t *testing.T) {
	view, err := DeriveLoanView(nil, models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, view.Member)
	assert.Empty(t, view.Loans)
	assert.Equal(t, "0.00", view.Totals.TotalLoanAmount)
}

func TestDeriveLoanViewRequiresRegistry(t *testing.T) {
	_, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, LoanViewOptions{})
	assert.Error(t, err)
}

func TestDeriveLoanViewHistogramIgnoresFilters(t *testing.T) {
	opts := testViewOptions(t)
	all, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, opts)
	require.NoError(t, err)

	for _, filters := range []models.LoanFilters{
		{LoanID: "1"},
		{Status: "rejected"},
		{Search: "emergency"},
		{LoanID: "3", Status: "active", Search: "nothing"},
	} {
		view, err := DeriveLoanView(sampleBundle(), filters, opts)
		require.NoError(t, err)
		assert.Equal(t, all.StatusCounts, view.StatusCounts)
		assert.Equal(t, all.StatusChart, view.StatusChart)
		assert.Equal(t, all.Payer, view.Payer)
	}
}

func TestDeriveLoanViewStatusChart(t *testing.T) {
	view, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)

	chart := view.StatusChart
	assert.Equal(t, charts.KindBar, chart.Kind)
	assert.Equal(t, []string{"Approved", "Active", "Rejected", "Paid", "Unpaid"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []int64{0, 1, 1, 0, 0}, chart.Datasets[0].Data)
}

func TestDeriveLoanViewPayerCard(t *testing.T) {
	opts := testViewOptions(t)

	good, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, opts)
	require.NoError(t, err)
	assert.Equal(t, charts.LoanPaymentStatus, good.PayerCard.Chart.Name)
	assert.Equal(t, []string{"Paid Off Loans", "Other Loans"}, good.PayerCard.Chart.Labels)
	assert.Equal(t, []int64{1, 2}, good.PayerCard.Chart.Datasets[0].Data)

	late := &models.LoanBundle{
		LoanApplications: []models.LoanApplication{{LoanApplicationID: "1", LoanStatus: "Active"}},
		Installments: []models.Installment{
			{LoanApplicationID: "1", InstallmentID: "11", Status: "Unpaid", DueDate: models.ParseDate("2025-01-15")},
		},
	}
	bad, err := DeriveLoanView(late, models.LoanFilters{}, opts)
	require.NoError(t, err)
	assert.False(t, bad.Payer.IsGoodOrOnTime)
	assert.Equal(t, charts.UserDistribution, bad.PayerCard.Chart.Name)
	assert.Equal(t, []int64{384280, 821}, bad.PayerCard.Chart.Datasets[0].Data)
	assert.Equal(t, "384,280", bad.PayerCard.Headline)
}

func TestDeriveLoanViewRows(t *testing.T) {
	view, err := DeriveLoanView(sampleBundle(), models.LoanFilters{LoanID: "1"}, testViewOptions(t))
	require.NoError(t, err)

	require.Len(t, view.Loans, 1)
	loan := view.Loans[0]
	assert.Equal(t, "V-100", loan.Voucher)
	assert.Equal(t, "₱1,000.00", loan.LoanAmount)
	assert.Equal(t, []models.Action{
		{Label: "Renew", Href: "/apply-loan"},
		{Label: "View", Href: "/loan-repayment/1?action=view"},
	}, loan.Actions)

	require.Len(t, view.Installments, 2)
	assert.True(t, view.Installments[0].Paid)
	assert.Nil(t, view.Installments[0].Repay)
	assert.False(t, view.Installments[1].Paid)
	require.NotNil(t, view.Installments[1].Repay)
	assert.Equal(t, "/loan-repayment/12", view.Installments[1].Repay.Href)

	require.Len(t, view.Repayments, 1)
	assert.Equal(t, "TXN-001", view.Repayments[0].TransactionNumber)
	assert.Equal(t, models.NotAvailable, view.Repayments[0].Type)
	assert.Equal(t, models.NotAvailable, view.Repayments[0].Date)
}

func TestDeriveLoanViewOptions(t *testing.T) {
	view, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)

	assert.Equal(t, models.Option{Value: models.FilterAll, Label: "All Loans"}, view.LoanOptions[0])
	assert.Equal(t, models.Option{Value: "2", Label: "Loan 2 (Emergency Loan)"}, view.LoanOptions[2])
	assert.Equal(t, []models.Option{
		{Value: models.FilterAll, Label: "All Statuses"},
		{Value: "active", Label: "Active"},
		{Value: "paid off", Label: "Paid Off"},
		{Value: "rejected", Label: "Rejected"},
	}, view.StatusOptions)
}
