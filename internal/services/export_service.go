package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var (
	loanHeaders        = []string{"Voucher", "Type", "Application", "Loan Amt", "Interest", "Terms", "Balance", "Fee", "Created At", "Loan Status"}
	installmentHeaders = []string{"Per", "Due", "Beg.Bal", "Amort", "Principal", "Interest", "Savings", "Penalty", "End.Bal", "Status"}
	repaymentHeaders   = []string{"Txn #", "Type", "Amount", "Date/Time", "Authorize", "Method"}
	depositHeaders     = []string{"Code Number", "Account No.", "Account Type", "Account Holder", "Co-Account Holder", "Deposited Amount", "Term", "Account Status"}
)

// ExportService renders screen views as downloadable files
type ExportService struct {
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// LoanMonitor exports a loan monitor view in format
func (s *ExportService) LoanMonitor(ctx context.Context, memberID string, view *models.LoanMonitorView, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		return s.LoanMonitorCSV(ctx, memberID, view)
	case FormatXLSX:
		return s.LoanMonitorXLSX(ctx, memberID, view)
	case FormatPDF:
		return s.LoanMonitorPDF(ctx, memberID, view)
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Deposits exports a time-deposit list in format
func (s *ExportService) Deposits(ctx context.Context, view *models.DepositListView, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		return s.DepositsCSV(ctx, view)
	case FormatXLSX:
		return s.DepositsXLSX(ctx, view)
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *ExportService) LoanMonitorCSV(ctx context.Context, memberID string, view *models.LoanMonitorView) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Loan Monitor", view.Member, s.now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{view.TotalLoan.Title, view.TotalLoan.Value, view.TotalLoan.Subtitle})
	_ = writer.Write([]string{view.TotalBalance.Title, view.TotalBalance.Value, view.TotalBalance.Subtitle})
	_ = writer.Write([]string{view.ActiveLoans.Title, view.ActiveLoans.Value})

	_ = writer.Write(loanHeaders)
	for _, row := range loanRecords(view.Loans) {
		_ = writer.Write(row)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename("loan_monitor_"+memberID, FormatCSV), nil
}

func (s *ExportService) LoanMonitorXLSX(ctx context.Context, memberID string, view *models.LoanMonitorView) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	if err := f.SetSheetName("Sheet1", "Loans"); err != nil {
		return nil, "", err
	}
	sheets := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{"Loans", loanHeaders, loanRecords(view.Loans)},
		{"Amortization", installmentHeaders, installmentRecords(view.Installments)},
		{"Repayments", repaymentHeaders, repaymentRecords(view.Repayments)},
	}

	for i, sh := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sh.name); err != nil {
				return nil, "", err
			}
		}
		if err := writeSheet(f, sh.name, headerStyle, sh.headers, sh.rows); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename("loan_monitor_"+memberID, FormatXLSX), nil
}

// LoanMonitorPDF renders the member statement: stat cards, loans,
// amortization schedule and repayments.
func (s *ExportService) LoanMonitorPDF(ctx context.Context, memberID string, view *models.LoanMonitorView) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdfTranslator(pdf)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Loan Monitor")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr("Member: "+view.Member))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+s.now().Format("Jan 2, 2006 15:04"))
	pdf.Ln(10)

	for _, card := range []models.StatCard{view.ActiveLoans, view.TotalLoan, view.TotalBalance} {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, card.Title+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(50, 6, tr(card.Value), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, card.Subtitle, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdfTable(pdf, tr, "Loan Applications", loanHeaders, loanRecords(view.Loans))
	pdfTable(pdf, tr, "Monthly Amortization", installmentHeaders, installmentRecords(view.Installments))
	pdfTable(pdf, tr, "Repayments Transaction", repaymentHeaders, repaymentRecords(view.Repayments))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename("loan_statement_"+memberID, FormatPDF), nil
}

func (s *ExportService) DepositsCSV(ctx context.Context, view *models.DepositListView) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{view.Title})
	_ = writer.Write(depositHeaders)
	for _, row := range depositRecords(view.Rows) {
		_ = writer.Write(row)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename("time_deposits", FormatCSV), nil
}

func (s *ExportService) DepositsXLSX(ctx context.Context, view *models.DepositListView) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Time Deposits"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCFCE7"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}
	if err := writeSheet(f, sheet, headerStyle, depositHeaders, depositRecords(view.Rows)); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename("time_deposits", FormatXLSX), nil
}

func (s *ExportService) filename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, s.now().Format("2006-01-02"), ext)
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]string) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

// pdfTable draws a titled table with columns sized to the page width
func pdfTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, headers []string, rows [][]string) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(headers))

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(224, 224, 224)
	for _, h := range headers {
		pdf.CellFormat(colW, 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	if len(rows) == 0 {
		pdf.CellFormat(colW*float64(len(headers)), 6, "No records.", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		for _, v := range row {
			pdf.CellFormat(colW, 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// pdfTranslator converts UTF-8 to the code page of the core fonts. The
// peso sign has no glyph there and is spelled out.
func pdfTranslator(pdf *gofpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string {
		return tr(strings.ReplaceAll(s, CurrencySymbol, "PHP "))
	}
}

func loanRecords(rows []models.LoanRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Voucher, r.Type, r.Application, r.LoanAmount, r.Interest, r.Terms, r.Balance, r.ServiceFee, r.CreatedAt, r.Status})
	}
	return out
}

func installmentRecords(rows []models.InstallmentRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := "Unpaid"
		if r.Paid {
			status = "Paid"
		}
		out = append(out, []string{r.Period, r.DueDate, r.BeginningBalance, r.Amortization, r.Principal, r.Interest, r.SavingsDeposit, r.Penalty, r.EndingBalance, status})
	}
	return out
}

func repaymentRecords(rows []models.RepaymentRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.TransactionNumber, r.Type, r.Amount, r.Date, r.Authorized, r.Method})
	}
	return out
}

func depositRecords(rows []models.DepositRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.CodeNumber, r.AccountNo, r.AccountType, r.AccountHolder, r.CoAccountHolder, r.DepositedAmount, r.Term, r.Status})
	}
	return out
}
