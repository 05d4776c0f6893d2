package models

// DepositRemarksActive marks an account in good standing
const DepositRemarksActive = "ACTIVE"

// DepositAccount is an active time-deposit account from /api/active
type DepositAccount struct {
	ID              ID     `json:"id"`
	MemberCode      Text   `json:"memberCode"`
	AccountNo       Text   `json:"accountNo"`
	FirstName       Text   `json:"firstName"`
	LastName        Text   `json:"LastName"`
	CoAccountHolder Text   `json:"coAccountHolder"`
	Amount          Amount `json:"amount"`
	FixedTerm       Int    `json:"fixedTerm"`
	Remarks         Text   `json:"remarks"`
}

// FullName joins first and last name the way the list displays it
func (d *DepositAccount) FullName() string {
	return string(d.FirstName) + " " + string(d.LastName)
}

// IsActive returns true when remarks is empty or ACTIVE
func (d *DepositAccount) IsActive() bool {
	return d.Remarks == "" || string(d.Remarks) == DepositRemarksActive
}
