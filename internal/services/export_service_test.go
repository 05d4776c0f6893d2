package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

func newTestExportService() *ExportService {
	svc := NewExportService()
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func sampleLoanView(t *testing.T) *models.LoanMonitorView {
	view, err := DeriveLoanView(sampleBundle(), models.LoanFilters{}, testViewOptions(t))
	require.NoError(t, err)
	return view
}

func TestLoanMonitorCSV(t *testing.T) {
	svc := newTestExportService()

	data, filename, err := svc.LoanMonitorCSV(context.Background(), "42", sampleLoanView(t))
	require.NoError(t, err)
	assert.Equal(t, "loan_monitor_42_2025-06-01.csv", filename)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Loan Monitor", "M-001 - Ana Cruz", "2025-06-01 09:00"}, records[0])
	assert.Equal(t, []string{"Total Loan Amount", "₱1,500.00", "Cumulative amount"}, records[1])
	assert.Equal(t, loanHeaders, records[4])
	// header block plus one line per loan
	assert.Len(t, records, 5+3)
	assert.Equal(t, "V-100", records[5][0])
}

func TestLoanMonitorXLSX(t *testing.T) {
	svc := newTestExportService()

	data, filename, err := svc.LoanMonitorXLSX(context.Background(), "42", sampleLoanView(t))
	require.NoError(t, err)
	assert.Equal(t, "loan_monitor_42_2025-06-01.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Loans", "Amortization", "Repayments"}, f.GetSheetList())

	voucher, err := f.GetCellValue("Loans", "A2")
	require.NoError(t, err)
	assert.Equal(t, "V-100", voucher)

	header, err := f.GetCellValue("Repayments", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Txn #", header)
}

func TestLoanMonitorPDF(t *testing.T) {
	svc := newTestExportService()

	data, filename, err := svc.LoanMonitorPDF(context.Background(), "42", sampleLoanView(t))
	require.NoError(t, err)
	assert.Equal(t, "loan_statement_42_2025-06-01.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDepositsExport(t *testing.T) {
	svc := newTestExportService()
	view := DeriveDepositView(sampleDeposits(), "")

	data, filename, err := svc.Deposits(context.Background(), view, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "time_deposits_2025-06-01.csv", filename)
	assert.Contains(t, string(data), "Ana Cruz")

	data, filename, err = svc.Deposits(context.Background(), view, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "time_deposits_2025-06-01.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	holder, err := f.GetCellValue("Time Deposits", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", holder)
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newTestExportService()

	_, _, err := svc.Deposits(context.Background(), DeriveDepositView(nil, ""), FormatPDF)
	assert.Error(t, err)

	_, _, err = svc.LoanMonitor(context.Background(), "42", sampleLoanView(t), "docx")
	assert.Error(t, err)
}
