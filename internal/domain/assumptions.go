package domain

import (
	"github.com/shopspring/decimal"
)

// RentBasis selects how the first year's rent is derived.
type RentBasis string

const (
	// RentBasisMarket uses the stated market monthly rent.
	RentBasisMarket RentBasis = "market"
	// RentBasisMatchMortgage sets year-1 rent equal to the annual mortgage payment.
	RentBasisMatchMortgage RentBasis = "match_mortgage"
	// RentBasisMatchOwnerCost sets year-1 rent equal to the estimated full
	// year-1 owner cost (payment + tax + maintenance + HOA + insurance).
	RentBasisMatchOwnerCost RentBasis = "match_owner_cost"
)

// Assumptions is the fully resolved, immutable parameter set that drives a
// single projection run. Resolvers and samplers always build a fresh value;
// nothing downstream mutates one in place.
type Assumptions struct {
	// Purchase and financing
	HomePrice       decimal.Decimal `json:"home_price"`
	DownPaymentPct  decimal.Decimal `json:"down_payment_pct"`
	MortgageRate    decimal.Decimal `json:"mortgage_rate"`
	MortgageTerm    int             `json:"mortgage_term"`
	ClosingCostsPct decimal.Decimal `json:"closing_costs_pct"`
	PMIRate         decimal.Decimal `json:"pmi_rate"`
	PMILTVCutoff    decimal.Decimal `json:"pmi_ltv_cutoff"`

	// Ongoing owner costs
	MaintenancePct            decimal.Decimal `json:"maintenance_pct"`
	PropertyTaxPct            decimal.Decimal `json:"property_tax_pct"`
	HOAMonthly                decimal.Decimal `json:"hoa_monthly"`
	HomeownersInsuranceAnnual decimal.Decimal `json:"homeowners_insurance_annual"`
	SellingCostsPct           decimal.Decimal `json:"selling_costs_pct"`

	// Appreciation and exit
	HomeAppreciationRate decimal.Decimal `json:"home_appreciation_rate"`
	SellAtEnd            bool            `json:"sell_at_end"`

	// Rent side
	RentBasis              RentBasis       `json:"rent_basis"`
	MonthlyRent            decimal.Decimal `json:"monthly_rent"`
	RentGrowthRate         decimal.Decimal `json:"rent_growth_rate"`
	RentersInsuranceAnnual decimal.Decimal `json:"renters_insurance_annual"`

	// Horizon, investments and taxes
	Horizon                     int             `json:"horizon"`
	InvestmentReturn            decimal.Decimal `json:"investment_return"`
	Inflation                   decimal.Decimal `json:"inflation"`
	InvestmentTaxDrag           decimal.Decimal `json:"investment_tax_drag"`
	Married                     bool            `json:"married"`
	CapitalGainsTaxRate         decimal.Decimal `json:"capital_gains_tax_rate"`
	CapitalGainsExclusionSingle decimal.Decimal `json:"capital_gains_exclusion_single"`
	CapitalGainsExclusion       decimal.Decimal `json:"capital_gains_exclusion"`
}

// Validate checks the structural invariants. A failing value must never be
// used for simulation work.
func (a Assumptions) Validate() error {
	if a.Horizon <= 0 {
		return &InvalidAssumptionsError{Field: "horizon", Reason: "must be positive"}
	}
	if a.MortgageTerm <= 0 {
		return &InvalidAssumptionsError{Field: "mortgage_term", Reason: "must be positive"}
	}
	if a.DownPaymentPct.LessThan(decimal.Zero) || a.DownPaymentPct.GreaterThan(decimal.NewFromInt(1)) {
		return &InvalidAssumptionsError{Field: "down_payment_pct", Reason: "must be between 0 and 1"}
	}
	switch a.RentBasis {
	case RentBasisMarket, RentBasisMatchMortgage, RentBasisMatchOwnerCost:
	default:
		return &InvalidAssumptionsError{Field: "rent_basis", Reason: "must be 'market', 'match_mortgage' or 'match_owner_cost'"}
	}
	if a.HomePrice.LessThanOrEqual(decimal.Zero) {
		return &InvalidAssumptionsError{Field: "home_price", Reason: "must be positive"}
	}
	return nil
}

// DownPayment returns the cash paid up front, excluding closing costs.
func (a Assumptions) DownPayment() decimal.Decimal {
	return a.HomePrice.Mul(a.DownPaymentPct)
}

// LoanAmount returns the financed portion of the purchase.
func (a Assumptions) LoanAmount() decimal.Decimal {
	return a.HomePrice.Mul(decimal.NewFromInt(1).Sub(a.DownPaymentPct))
}

// ClosingCosts returns the purchase closing costs in year-0 dollars.
func (a Assumptions) ClosingCosts() decimal.Decimal {
	return a.HomePrice.Mul(a.ClosingCostsPct)
}
