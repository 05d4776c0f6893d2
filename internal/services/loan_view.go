package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yquannn/sibbap-admin/internal/charts"
	"github.com/Yquannn/sibbap-admin/internal/models"
)

// UserDistribution feeds the "Active Users" pie shown for members that are
// neither good payers nor on time.
type UserDistribution struct {
	Total  int64
	Active int64
}

// LoanViewOptions carries the collaborators of DeriveLoanView
type LoanViewOptions struct {
	Charts           *charts.Registry
	UserDistribution UserDistribution
	Now              time.Time
}

// DeriveLoanView builds the loan monitor from a fetched bundle and the
// current filters. It does no I/O; the same inputs give the same view.
//
// Totals and tables follow the filters. The status chart and the payer
// classification always use the full bundle.
func DeriveLoanView(bundle *models.LoanBundle, filters models.LoanFilters, opts LoanViewOptions) (*models.LoanMonitorView, error) {
	if opts.Charts == nil {
		return nil, errors.New("loan view: chart registry is required")
	}
	if bundle == nil {
		bundle = &models.LoanBundle{}
	}
	filters = filters.Normalize()

	apps := bundle.LoanApplications
	filteredApps := FilterLoanApplications(apps, filters.LoanID, filters.Status, filters.Search)
	totals := ComputeTotals(filteredApps)
	installments := CascadeInstallments(bundle.Installments, LoanIDs(filteredApps))
	repayments := CascadeRepayments(bundle.Repayments, installments, filters.RepaymentSearch)
	histogram := StatusHistogram(apps)
	payer := ClassifyPayer(apps, bundle.Installments, opts.Now)

	statusChart, err := statusChart(opts.Charts, histogram)
	if err != nil {
		return nil, err
	}
	payerCard, err := payerCard(opts.Charts, payer, len(apps), opts.UserDistribution)
	if err != nil {
		return nil, err
	}

	totalSubtitle, balanceSubtitle := "Cumulative amount", "Total outstanding"
	if !filters.Unfiltered() {
		totalSubtitle, balanceSubtitle = "Filtered amount", "Filtered outstanding"
	}

	view := &models.LoanMonitorView{
		Member:  memberLabel(bundle.PersonalInfo),
		Filters: filters,
		ActiveLoans: models.StatCard{
			Title:    "Active Loans Count",
			Value:    FormatCount(int64(payer.ActiveCount)),
			Subtitle: "Number of active loans",
		},
		TotalLoan: models.StatCard{
			Title:    "Total Loan Amount",
			Value:    FormatCurrency(totals.TotalLoanAmount),
			Subtitle: totalSubtitle,
		},
		TotalBalance: models.StatCard{
			Title:    "Total Balance",
			Value:    FormatCurrency(totals.TotalBalance),
			Subtitle: balanceSubtitle,
		},
		Totals: models.LoanTotals{
			TotalLoanAmount:  FormatMoney(totals.TotalLoanAmount),
			TotalBalance:     FormatMoney(totals.TotalBalance),
			ActiveLoanAmount: FormatMoney(totals.ActiveLoanAmount),
		},
		LoanOptions:   loanOptions(apps),
		StatusOptions: statusOptions(apps),
		Loans:         make([]models.LoanRow, 0, len(filteredApps)),
		Installments:  make([]models.InstallmentRow, 0, len(installments)),
		Repayments:    make([]models.RepaymentRow, 0, len(repayments)),
		StatusCounts:  histogram,
		StatusChart:   statusChart,
		Payer:         payer,
		PayerCard:     payerCard,
	}

	for _, app := range filteredApps {
		view.Loans = append(view.Loans, loanRow(app))
	}
	for _, inst := range installments {
		view.Installments = append(view.Installments, installmentRow(inst))
	}
	for _, rep := range repayments {
		view.Repayments = append(view.Repayments, repaymentRow(rep))
	}
	return view, nil
}

func memberLabel(info *models.PersonalInfo) string {
	if info == nil {
		return models.NotAvailable
	}
	return fmt.Sprintf("%s - %s %s", info.MemberCode, info.FirstName, info.LastName)
}

func statusChart(reg *charts.Registry, histogram map[string]int) (charts.Chart, error) {
	spec, err := reg.Spec(charts.LoanStatus)
	if err != nil {
		return charts.Chart{}, err
	}
	data := make([]int64, len(spec.Labels))
	for i, label := range spec.Labels {
		data[i] = int64(histogram[strings.ToLower(label)])
	}
	return reg.Build(charts.LoanStatus, data...)
}

func payerCard(reg *charts.Registry, payer models.PayerStatus, totalLoans int, dist UserDistribution) (models.PayerCard, error) {
	if payer.IsGoodOrOnTime {
		chart, err := reg.Build(charts.LoanPaymentStatus, int64(payer.PaidOffCount), int64(totalLoans-payer.PaidOffCount))
		if err != nil {
			return models.PayerCard{}, err
		}
		return models.PayerCard{
			Title:       "Good Payer / On Time",
			Description: "Member demonstrates excellent payment behavior.",
			Headline:    FormatCount(int64(payer.PaidOffCount)) + " paid off loans",
			Subline:     "of " + FormatCount(int64(totalLoans)) + " total loans",
			Chart:       chart,
		}, nil
	}

	chart, err := reg.Build(charts.UserDistribution, dist.Active, dist.Total)
	if err != nil {
		return models.PayerCard{}, err
	}
	return models.PayerCard{
		Title:       "Active Users",
		Description: "User distribution overview",
		Headline:    FormatCount(dist.Active),
		Subline:     "/ " + FormatCount(dist.Total) + " total",
		Chart:       chart,
	}, nil
}

func loanOptions(apps []models.LoanApplication) []models.Option {
	opts := []models.Option{{Value: models.FilterAll, Label: "All Loans"}}
	for _, app := range apps {
		id := app.LoanApplicationID.String()
		label := "Loan " + id
		if app.LoanType != "" {
			label += " (" + app.LoanType.String() + ")"
		}
		opts = append(opts, models.Option{Value: id, Label: label})
	}
	return opts
}

func statusOptions(apps []models.LoanApplication) []models.Option {
	opts := []models.Option{{Value: models.FilterAll, Label: "All Statuses"}}
	seen := make(map[string]bool)
	for _, app := range apps {
		key := app.LoanStatus.Lower()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		opts = append(opts, models.Option{Value: key, Label: app.LoanStatus.String()})
	}
	return opts
}

func loanRow(app models.LoanApplication) models.LoanRow {
	id := app.LoanApplicationID.String()
	return models.LoanRow{
		ID:          id,
		Voucher:     app.ClientVoucherNumber.String(),
		Type:        app.LoanType.String(),
		Application: app.Application.String(),
		LoanAmount:  FormatAmount(app.LoanAmount),
		Interest:    FormatAmount(app.Interest),
		Terms:       FormatCount(int64(app.Terms)),
		Balance:     FormatAmount(app.Balance),
		ServiceFee:  FormatAmount(app.ServiceFee),
		CreatedAt:   FormatDate(app.CreatedAt),
		Status:      app.LoanStatus.String(),
		Actions: []models.Action{
			{Label: "Renew", Href: "/apply-loan"},
			{Label: "View", Href: "/loan-repayment/" + id + "?action=view"},
		},
	}
}

func installmentRow(inst models.Installment) models.InstallmentRow {
	row := models.InstallmentRow{
		InstallmentID:    inst.InstallmentID.String(),
		Period:           inst.InstallmentNumber.String(),
		DueDate:          FormatDate(inst.DueDate),
		BeginningBalance: FormatAmount(inst.BeginningBalance),
		Amortization:     FormatAmount(inst.Amortization),
		Principal:        FormatAmount(inst.Principal),
		Interest:         FormatAmount(inst.Interest),
		SavingsDeposit:   FormatAmount(inst.SavingsDeposit),
		Penalty:          FormatAmount(inst.Penalty),
		EndingBalance:    FormatAmount(inst.EndingBalance),
		Paid:             !inst.IsUnpaid(),
	}
	if inst.IsUnpaid() {
		row.Repay = &models.Action{Label: "Repay", Href: "/loan-repayment/" + row.InstallmentID}
	}
	return row
}

func repaymentRow(rep models.Repayment) models.RepaymentRow {
	return models.RepaymentRow{
		TransactionNumber: rep.TransactionNumber.String(),
		Type:              rep.TransactionType.Or(models.NotAvailable),
		Amount:            FormatAmount(rep.AmountPaid),
		Date:              FormatDate(rep.PaymentDate),
		Authorized:        rep.Authorized.Or(models.NotAvailable),
		Method:            rep.Method.String(),
	}
}
