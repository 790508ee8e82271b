package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// RateProvider supplies the realized rate of a named series for a given
// simulation year (1-based). Asking for an unknown rate name is a
// programming error and panics.
type RateProvider interface {
	Get(name domain.RateName, year int) decimal.Decimal
}

// ConstantRateProvider returns the same scalar from the assumptions for
// every year. It drives the deterministic pipeline.
type ConstantRateProvider struct {
	assump domain.Assumptions
}

// NewConstantRateProvider builds a provider over a resolved assumption set.
func NewConstantRateProvider(a domain.Assumptions) ConstantRateProvider {
	return ConstantRateProvider{assump: a}
}

func (p ConstantRateProvider) Get(name domain.RateName, _ int) decimal.Decimal {
	switch name {
	case domain.RateInvestmentReturn:
		return p.assump.InvestmentReturn
	case domain.RateHomeAppreciation:
		return p.assump.HomeAppreciationRate
	case domain.RateRentGrowth:
		return p.assump.RentGrowthRate
	case domain.RateInflation:
		return p.assump.Inflation
	default:
		panic(fmt.Sprintf("calculation: unknown rate name %q", name))
	}
}

// PathRateProvider indexes into pre-drawn rate paths. It drives each Monte
// Carlo trial.
type PathRateProvider struct {
	paths domain.RatePaths
}

// NewPathRateProvider validates the paths against the horizon and wraps them.
func NewPathRateProvider(paths domain.RatePaths, horizon int) (PathRateProvider, error) {
	if err := paths.Validate(horizon); err != nil {
		return PathRateProvider{}, err
	}
	return PathRateProvider{paths: paths}, nil
}

func (p PathRateProvider) Get(name domain.RateName, year int) decimal.Decimal {
	idx := year - 1
	switch name {
	case domain.RateInvestmentReturn:
		return p.paths.InvestmentReturn[idx]
	case domain.RateHomeAppreciation:
		return p.paths.HomeAppreciation[idx]
	case domain.RateRentGrowth:
		return p.paths.RentGrowth[idx]
	case domain.RateInflation:
		return p.paths.Inflation[idx]
	default:
		panic(fmt.Sprintf("calculation: unknown rate name %q", name))
	}
}
