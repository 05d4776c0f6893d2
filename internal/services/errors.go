package services

import (
	"errors"

	"github.com/Yquannn/sibbap-admin/internal/upstream"
)

// Common service errors
var (
	ErrScreenNotFound  = errors.New("screen not found")
	ErrWrongScreenKind = errors.New("operation not supported by this screen")
	ErrAccountNotFound = errors.New("deposit account not found")
	ErrNotReady        = errors.New("screen data is not loaded yet")
)

// Messages shown in place of the screen content
const (
	msgNoLoanData        = "No loan data found."
	msgLoanFetchFailed   = "Failed to load loan data."
	msgNoMemberID        = "No member identifier provided."
	msgNoDepositors      = "No depositor for time deposit."
	msgDepositFetchError = "Error fetching time deposits."
)

// LoanErrorMessage maps a loan monitor fetch error to its user-facing text
func LoanErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, upstream.ErrMissingMemberID):
		return msgNoMemberID
	case errors.Is(err, upstream.ErrEmptyPayload):
		return msgNoLoanData
	default:
		return msgLoanFetchFailed
	}
}

// DepositErrorMessage maps a time-deposit fetch error to its user-facing
// text, preferring the message the core API sent back.
func DepositErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, upstream.ErrEmptyPayload):
		return msgNoDepositors
	}
	if msg := upstream.Message(err); msg != "" {
		return msg
	}
	return msgDepositFetchError
}
