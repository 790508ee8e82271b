package decimal

import (
	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// One returns the decimal constant 1.
func One() decimal.Decimal { return one }

// GrowthFactor converts an annual rate into its multiplicative factor (1+r).
func GrowthFactor(rate decimal.Decimal) decimal.Decimal {
	return one.Add(rate)
}

// AfterTax reduces a gross return by a proportional tax drag: r*(1-drag).
func AfterTax(rate, drag decimal.Decimal) decimal.Decimal {
	return rate.Mul(one.Sub(drag))
}

// Annualize converts a monthly amount to its annual equivalent.
func Annualize(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Monthly converts an annual amount to its monthly equivalent.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Clamp bounds x to [lo, hi]. A nil bound leaves that side open.
func Clamp(x decimal.Decimal, lo, hi *decimal.Decimal) decimal.Decimal {
	if lo != nil && x.LessThan(*lo) {
		return *lo
	}
	if hi != nil && x.GreaterThan(*hi) {
		return *hi
	}
	return x
}

// Max returns the larger of two decimals.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Ptr returns a pointer to d, for use as an optional clamp bound.
func Ptr(d decimal.Decimal) *decimal.Decimal { return &d }
