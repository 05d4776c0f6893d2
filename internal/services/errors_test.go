package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yquannn/sibbap-admin/internal/upstream"
)

func TestLoanErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Nil", nil, ""},
		{"Missing member", upstream.ErrMissingMemberID, "No member identifier provided."},
		{"Empty payload", fmt.Errorf("member 42 loans: %w", upstream.ErrEmptyPayload), "No loan data found."},
		{"Malformed", upstream.ErrMalformedPayload, "Failed to load loan data."},
		{"Other", errors.New("boom"), "Failed to load loan data."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LoanErrorMessage(tt.err))
		})
	}
}

func TestDepositErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Nil", nil, ""},
		{"Empty payload", fmt.Errorf("active deposits: %w", upstream.ErrEmptyPayload), "No depositor for time deposit."},
		{"Upstream message", fmt.Errorf("active deposits: %w", &upstream.StatusError{StatusCode: 500, Message: "Query failed"}), "Query failed"},
		{"Status without message", &upstream.StatusError{StatusCode: 502}, "Error fetching time deposits."},
		{"Network failure", upstream.ErrNetworkFailure, "Error fetching time deposits."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DepositErrorMessage(tt.err))
		})
	}
}
