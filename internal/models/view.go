package models

import (
	"strings"

	"github.com/Yquannn/sibbap-admin/internal/charts"
)

// FilterAll disables a dropdown filter
const FilterAll = "all"

// NotAvailable is rendered for absent values
const NotAvailable = "N/A"

// LoanFilters is the loan monitor's filter state
type LoanFilters struct {
	LoanID          string `form:"loan_id" json:"loan_id"`
	Status          string `form:"status" json:"status"`
	Search          string `form:"search" json:"search"`
	RepaymentSearch string `form:"repayment_search" json:"repayment_search"`
}

// Normalize maps empty dropdowns to "all"
func (f LoanFilters) Normalize() LoanFilters {
	if strings.TrimSpace(f.LoanID) == "" {
		f.LoanID = FilterAll
	}
	if strings.TrimSpace(f.Status) == "" {
		f.Status = FilterAll
	}
	return f
}

// Unfiltered reports whether both dropdowns are at "all"
func (f LoanFilters) Unfiltered() bool {
	return f.LoanID == FilterAll && f.Status == FilterAll
}

// Action is a button on a row or header. Href actions navigate,
// Event actions drive the deposit modal.
type Action struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
	Event string `json:"event,omitempty"`
}

// Option is a dropdown entry
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatCard is one of the summary tiles above the loan tables
type StatCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
}

// LoanRow is a formatted loan application row
type LoanRow struct {
	ID          string   `json:"id"`
	Voucher     string   `json:"voucher"`
	Type        string   `json:"type"`
	Application string   `json:"application"`
	LoanAmount  string   `json:"loan_amount"`
	Interest    string   `json:"interest"`
	Terms       string   `json:"terms"`
	Balance     string   `json:"balance"`
	ServiceFee  string   `json:"service_fee"`
	CreatedAt   string   `json:"created_at"`
	Status      string   `json:"status"`
	Actions     []Action `json:"actions"`
}

// InstallmentRow is a formatted amortization row
type InstallmentRow struct {
	InstallmentID    string  `json:"installment_id"`
	Period           string  `json:"period"`
	DueDate          string  `json:"due_date"`
	BeginningBalance string  `json:"beginning_balance"`
	Amortization     string  `json:"amortization"`
	Principal        string  `json:"principal"`
	Interest         string  `json:"interest"`
	SavingsDeposit   string  `json:"savings_deposit"`
	Penalty          string  `json:"penalty"`
	EndingBalance    string  `json:"ending_balance"`
	Paid             bool    `json:"paid"`
	Repay            *Action `json:"repay,omitempty"`
}

// RepaymentRow is a formatted repayment transaction row
type RepaymentRow struct {
	TransactionNumber string `json:"transaction_number"`
	Type              string `json:"type"`
	Amount            string `json:"amount"`
	Date              string `json:"date"`
	Authorized        string `json:"authorized"`
	Method            string `json:"method"`
}

// PayerStatus summarises a member's repayment behaviour
type PayerStatus struct {
	ActiveCount    int  `json:"active_count"`
	PaidOffCount   int  `json:"paid_off_count"`
	OverdueCount   int  `json:"overdue_count"`
	IsGoodPayer    bool `json:"is_good_payer"`
	IsOnTime       bool `json:"is_on_time"`
	IsGoodOrOnTime bool `json:"is_good_or_on_time"`
}

// PayerCard is the chart card next to the loan table
type PayerCard struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Headline    string       `json:"headline"`
	Subline     string       `json:"subline"`
	Chart       charts.Chart `json:"chart"`
}

// LoanTotals are the raw sums behind the stat cards
type LoanTotals struct {
	TotalLoanAmount  string `json:"total_loan_amount"`
	TotalBalance     string `json:"total_balance"`
	ActiveLoanAmount string `json:"active_loan_amount"`
}

// LoanMonitorView is everything the loan monitor renders
type LoanMonitorView struct {
	Member        string           `json:"member"`
	Filters       LoanFilters      `json:"filters"`
	ActiveLoans   StatCard         `json:"active_loans"`
	TotalLoan     StatCard         `json:"total_loan"`
	TotalBalance  StatCard         `json:"total_balance"`
	Totals        LoanTotals       `json:"totals"`
	LoanOptions   []Option         `json:"loan_options"`
	StatusOptions []Option         `json:"status_options"`
	Loans         []LoanRow        `json:"loans"`
	Installments  []InstallmentRow `json:"installments"`
	Repayments    []RepaymentRow   `json:"repayments"`
	StatusCounts  map[string]int   `json:"status_counts"`
	StatusChart   charts.Chart     `json:"status_chart"`
	Payer         PayerStatus      `json:"payer"`
	PayerCard     PayerCard        `json:"payer_card"`
}

// DepositRow is a formatted time-deposit row
type DepositRow struct {
	ID              string   `json:"id"`
	CodeNumber      string   `json:"code_number"`
	AccountNo       string   `json:"account_no"`
	AccountType     string   `json:"account_type"`
	AccountHolder   string   `json:"account_holder"`
	CoAccountHolder string   `json:"co_account_holder"`
	DepositedAmount string   `json:"deposited_amount"`
	Term            string   `json:"term"`
	Status          string   `json:"status"`
	StatusActive    bool     `json:"status_active"`
	Actions         []Action `json:"actions"`
}

// DepositListView is the time-deposit list screen
type DepositListView struct {
	Title        string       `json:"title"`
	Count        int          `json:"count"`
	Query        string       `json:"query"`
	HeaderAction Action       `json:"header_action"`
	Rows         []DepositRow `json:"rows"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}
