package services

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

// CurrencySymbol prefixes every rendered amount
const CurrencySymbol = "₱"

// DateLayout renders dates as "Jan 2, 2006"
const DateLayout = "Jan 2, 2006"

var displayLocale = language.AmericanEnglish

// FormatMoney renders d with en-US grouping and exactly two decimals,
// without the currency symbol: 1500 -> "1,500.00".
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	p := message.NewPrinter(displayLocale)
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatCurrency renders d as "₱1,500.00"
func FormatCurrency(d decimal.Decimal) string {
	return CurrencySymbol + FormatMoney(d)
}

// FormatAmount renders a decoded upstream amount as currency
func FormatAmount(a models.Amount) string {
	return FormatCurrency(a.Decimal)
}

// FormatCount renders an integer with en-US grouping: 384280 -> "384,280"
func FormatCount(n int64) string {
	p := message.NewPrinter(displayLocale)
	return p.Sprint(number.Decimal(n))
}

// FormatDate renders d as "Jan 2, 2006", or N/A when absent
func FormatDate(d models.Date) string {
	if !d.Valid {
		return models.NotAvailable
	}
	return d.Time.Format(DateLayout)
}
