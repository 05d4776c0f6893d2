package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

// Totals are the sums shown on the loan monitor stat cards
type Totals struct {
	TotalLoanAmount  decimal.Decimal
	TotalBalance     decimal.Decimal
	ActiveLoanAmount decimal.Decimal
}

// unknownStatus buckets applications that carry no loan_status
const unknownStatus = "unknown"

// FilterLoanApplications applies the loan dropdown, the status dropdown and
// the free-text search, in that order. "all" disables a dropdown and an
// empty term disables the search. The input slice is not modified.
func FilterLoanApplications(apps []models.LoanApplication, loanID, status, term string) []models.LoanApplication {
	search := strings.ToLower(term)

	out := make([]models.LoanApplication, 0, len(apps))
	for _, app := range apps {
		if loanID != models.FilterAll && app.LoanApplicationID.String() != loanID {
			continue
		}
		if status != models.FilterAll && !app.HasStatus(status) {
			continue
		}
		if search != "" && !matchesLoanSearch(&app, search) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func matchesLoanSearch(app *models.LoanApplication, search string) bool {
	return containsFold(app.ClientVoucherNumber, search) ||
		containsFold(app.LoanType, search) ||
		containsFold(app.Application, search)
}

// containsFold reports whether field contains the already lower-cased
// search. A missing field never matches.
func containsFold(field models.Text, search string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(field.Lower(), search)
}

// ComputeTotals sums loan amounts and balances. Amounts that failed to
// decode are already zero, so the sums are always finite.
func ComputeTotals(apps []models.LoanApplication) Totals {
	totals := Totals{
		TotalLoanAmount:  decimal.Zero,
		TotalBalance:     decimal.Zero,
		ActiveLoanAmount: decimal.Zero,
	}
	for _, app := range apps {
		totals.TotalLoanAmount = totals.TotalLoanAmount.Add(app.LoanAmount.Decimal)
		totals.TotalBalance = totals.TotalBalance.Add(app.Balance.Decimal)
		if app.HasStatus(models.LoanStatusActive) {
			totals.ActiveLoanAmount = totals.ActiveLoanAmount.Add(app.LoanAmount.Decimal)
		}
	}
	return totals
}

// LoanIDs collects the ids of apps
func LoanIDs(apps []models.LoanApplication) []models.ID {
	ids := make([]models.ID, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.LoanApplicationID)
	}
	return ids
}

// CascadeInstallments keeps the installments that belong to one of loanIDs
func CascadeInstallments(installments []models.Installment, loanIDs []models.ID) []models.Installment {
	allowed := idSet(loanIDs)

	out := make([]models.Installment, 0, len(installments))
	for _, inst := range installments {
		if _, ok := allowed[inst.LoanApplicationID]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// CascadeRepayments keeps the repayments made against one of installments,
// then applies the repayment search on transaction number and method.
func CascadeRepayments(repayments []models.Repayment, installments []models.Installment, term string) []models.Repayment {
	ids := make([]models.ID, 0, len(installments))
	for _, inst := range installments {
		ids = append(ids, inst.InstallmentID)
	}
	allowed := idSet(ids)
	search := strings.ToLower(term)

	out := make([]models.Repayment, 0, len(repayments))
	for _, rep := range repayments {
		if _, ok := allowed[rep.InstallmentID]; !ok {
			continue
		}
		if search != "" && !containsFold(rep.TransactionNumber, search) && !containsFold(rep.Method, search) {
			continue
		}
		out = append(out, rep)
	}
	return out
}

// StatusHistogram counts applications by lower-cased loan status. Callers
// pass the unfiltered list: the bar chart ignores the dropdowns and search.
func StatusHistogram(apps []models.LoanApplication) map[string]int {
	counts := make(map[string]int)
	for _, app := range apps {
		status := app.LoanStatus.Lower()
		if status == "" {
			status = unknownStatus
		}
		counts[status]++
	}
	return counts
}

func idSet(ids []models.ID) map[models.ID]struct{} {
	set := make(map[models.ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
