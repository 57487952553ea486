package output

import (
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	crore = decimal.NewFromInt(10000000)
	lakh  = decimal.NewFromInt(100000)
)

// FormatCurrency renders an amount compactly in Indian units: crores
// ("1.50 Cr"), lakhs ("2.50 L"), or a comma-grouped whole number ("5,000").
// No currency symbol is included.
func FormatCurrency(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(crore):
		return amount.Div(crore).StringFixedBank(2) + " Cr"
	case amount.GreaterThanOrEqual(lakh):
		return amount.Div(lakh).StringFixedBank(2) + " L"
	default:
		return domain.GroupDigits(amount, 0)
	}
}

// FormatRupees is FormatCurrency with the rupee symbol
func FormatRupees(amount decimal.Decimal) string {
	return "₹" + FormatCurrency(amount)
}

// FormatAmount renders a full comma-grouped whole-rupee amount
func FormatAmount(amount decimal.Decimal) string {
	return domain.GroupDigits(amount, 0)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(p decimal.Decimal) string {
	return p.StringFixedBank(2) + "%"
}
