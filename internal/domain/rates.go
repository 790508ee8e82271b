package domain

import "github.com/shopspring/decimal"

// RateName identifies one of the four driving rates of a projection year.
type RateName string

const (
	RateInvestmentReturn RateName = "investment_return"
	RateHomeAppreciation RateName = "home_appreciation"
	RateRentGrowth       RateName = "rent_growth"
	RateInflation        RateName = "inflation"
)

// RatePaths holds one realized year-by-year sequence per driving rate.
// Every series must have exactly horizon entries.
type RatePaths struct {
	InvestmentReturn []decimal.Decimal
	HomeAppreciation []decimal.Decimal
	RentGrowth       []decimal.Decimal
	Inflation        []decimal.Decimal
}

// Validate checks that every series matches the horizon length.
func (p RatePaths) Validate(horizon int) error {
	series := []struct {
		name string
		vals []decimal.Decimal
	}{
		{string(RateInvestmentReturn), p.InvestmentReturn},
		{string(RateHomeAppreciation), p.HomeAppreciation},
		{string(RateRentGrowth), p.RentGrowth},
		{string(RateInflation), p.Inflation},
	}
	for _, s := range series {
		if len(s.vals) != horizon {
			return &MalformedRatePathError{Series: s.name, Got: len(s.vals), Want: horizon}
		}
	}
	return nil
}
