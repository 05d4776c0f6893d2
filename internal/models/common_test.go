package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Number", `1500.25`, "1500.25"},
		{"Numeric string", `"1000.00"`, "1000"},
		{"Padded string", `" 42 "`, "42"},
		{"Null", `null`, "0"},
		{"Garbage string", `"abc"`, "0"},
		{"Partial number string", `"12abc"`, "0"},
		{"Bool", `true`, "0"},
		{"Object", `{"v":1}`, "0"},
		{"NaN string", `"NaN"`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.expected, a.String())
		})
	}
}

func TestAmountMissingField(t *testing.T) {
	var app LoanApplication
	require.NoError(t, json.Unmarshal([]byte(`{"loan_application_id": 3}`), &app))
	assert.True(t, app.LoanAmount.IsZero())
	assert.Equal(t, "0.00", app.LoanAmount.StringFixed(2))
}

func TestTextAndIDUnmarshal(t *testing.T) {
	var rec struct {
		A Text `json:"a"`
		B Text `json:"b"`
		C Text `json:"c"`
		D ID   `json:"d"`
		E ID   `json:"e"`
		F Text `json:"f"`
	}
	body := `{"a": "Regular", "b": 12, "c": null, "d": 7, "e": "x-9", "f": ["nested"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, Text("Regular"), rec.A)
	assert.Equal(t, Text("12"), rec.B)
	assert.Equal(t, Text(""), rec.C)
	assert.Equal(t, ID("7"), rec.D)
	assert.Equal(t, ID("x-9"), rec.E)
	assert.Equal(t, Text(""), rec.F)
}

func TestTextOr(t *testing.T) {
	assert.Equal(t, "N/A", Text("").Or(NotAvailable))
	assert.Equal(t, "N/A", Text("   ").Or(NotAvailable))
	assert.Equal(t, "Cash", Text("Cash").Or(NotAvailable))
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		day   string
	}{
		{`"2024-03-05"`, true, "2024-03-05"},
		{`"2024-03-05T10:15:00Z"`, true, "2024-03-05"},
		{`"2024-03-05T10:15:00.000Z"`, true, "2024-03-05"},
		{`"2024-03-05 10:15:00"`, true, "2024-03-05"},
		{`"March 5"`, false, ""},
		{`null`, false, ""},
		{`20240305`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.valid, d.Valid)
			if tt.valid {
				assert.Equal(t, tt.day, d.Time.Format("2006-01-02"))
			}
		})
	}
}

func TestIntUnmarshal(t *testing.T) {
	var rec struct {
		A Int `json:"a"`
		B Int `json:"b"`
		C Int `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "6", "c": "six"}`), &rec))
	assert.Equal(t, Int(12), rec.A)
	assert.Equal(t, Int(6), rec.B)
	assert.Equal(t, Int(0), rec.C)
}

func TestLoanBundleNormalize(t *testing.T) {
	var b LoanBundle
	require.NoError(t, json.Unmarshal([]byte(`{"loanPersonalInformation": [{"memberCode": "M1"}, {"memberCode": "M2"}]}`), &b))
	b.Normalize()

	require.NotNil(t, b.PersonalInfo)
	assert.Equal(t, Text("M1"), b.PersonalInfo.MemberCode)
	assert.False(t, b.IsEmpty())
	assert.True(t, (&LoanBundle{}).IsEmpty())
}

func TestDepositAccountIsActive(t *testing.T) {
	assert.True(t, (&DepositAccount{}).IsActive())
	assert.True(t, (&DepositAccount{Remarks: "ACTIVE"}).IsActive())
	assert.False(t, (&DepositAccount{Remarks: "MATURED"}).IsActive())
}
