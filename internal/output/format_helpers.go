package output

import "github.com/shopspring/decimal"

// FormatCurrency renders a dollar amount to the cent, as the console and
// CSV formatters print it.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercent renders a rate fraction (0.07, not 7) as a percentage.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
