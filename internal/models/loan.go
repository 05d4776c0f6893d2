package models

import (
	"strings"
)

// Loan status values as sent by the upstream, compared case-insensitively.
const (
	LoanStatusApproved = "approved"
	LoanStatusActive   = "active"
	LoanStatusRejected = "rejected"
	LoanStatusPaid     = "paid"
	LoanStatusPaidOff  = "paid off"
	LoanStatusUnpaid   = "unpaid"
)

// Installment status values
const (
	InstallmentStatusPaid   = "paid"
	InstallmentStatusUnpaid = "unpaid"
)

// PersonalInfo is the member header shown on the loan monitor
type PersonalInfo struct {
	MemberCode Text `json:"memberCode"`
	FirstName  Text `json:"first_name"`
	LastName   Text `json:"last_name"`
}

// LoanApplication is a member's loan as returned by /api/member-loan
type LoanApplication struct {
	LoanApplicationID   ID     `json:"loan_application_id"`
	ClientVoucherNumber Text   `json:"client_voucher_number"`
	LoanType            Text   `json:"loan_type"`
	Application         Text   `json:"application"`
	LoanAmount          Amount `json:"loan_amount"`
	Interest            Amount `json:"interest"`
	Terms               Int    `json:"terms"`
	Balance             Amount `json:"balance"`
	ServiceFee          Amount `json:"service_fee"`
	CreatedAt           Date   `json:"created_at"`
	LoanStatus          Text   `json:"loan_status"`
}

// HasStatus compares the loan status case-insensitively
func (a *LoanApplication) HasStatus(status string) bool {
	return a.LoanStatus != "" && strings.EqualFold(string(a.LoanStatus), status)
}

// Installment is one row of a loan's amortization schedule
type Installment struct {
	LoanApplicationID ID     `json:"loan_application_id"`
	InstallmentID     ID     `json:"installment_id"`
	InstallmentNumber Text   `json:"installment_number"`
	DueDate           Date   `json:"due_date"`
	BeginningBalance  Amount `json:"beginning_balance"`
	Amortization      Amount `json:"amortization"`
	Principal         Amount `json:"principal"`
	Interest          Amount `json:"interest"`
	SavingsDeposit    Amount `json:"savings_deposit"`
	Penalty           Amount `json:"penalty"`
	EndingBalance     Amount `json:"ending_balance"`
	Status            Text   `json:"status"`
}

// IsUnpaid returns true if the installment is still due
func (i *Installment) IsUnpaid() bool {
	return strings.EqualFold(string(i.Status), InstallmentStatusUnpaid)
}

// Repayment is a payment transaction applied to an installment
type Repayment struct {
	InstallmentID     ID     `json:"installment_id"`
	TransactionNumber Text   `json:"transaction_number"`
	TransactionType   Text   `json:"transaction_type"`
	AmountPaid        Amount `json:"amount_paid"`
	PaymentDate       Date   `json:"payment_date"`
	Authorized        Text   `json:"authorized"`
	Method            Text   `json:"method"`
}

// LoanBundle is everything the loan monitor shows for one member.
// It is replaced wholesale on every fetch and never mutated afterwards.
type LoanBundle struct {
	PersonalInfo     *PersonalInfo     `json:"-"`
	LoanApplications []LoanApplication `json:"loanApplications"`
	Installments     []Installment     `json:"installments"`
	Repayments       []Repayment       `json:"repayments"`

	PersonalInformation []PersonalInfo `json:"loanPersonalInformation"`
}

// Normalize fills derived fields after decoding
func (b *LoanBundle) Normalize() {
	if b.PersonalInfo == nil && len(b.PersonalInformation) > 0 {
		info := b.PersonalInformation[0]
		b.PersonalInfo = &info
	}
}

// IsEmpty reports whether the bundle carries no records at all
func (b *LoanBundle) IsEmpty() bool {
	return b == nil || (len(b.PersonalInformation) == 0 && b.PersonalInfo == nil &&
		len(b.LoanApplications) == 0 && len(b.Installments) == 0 && len(b.Repayments) == 0)
}
