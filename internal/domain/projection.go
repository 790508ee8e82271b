package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyRecord is one projected year of the owner/renter comparison.
// HomeValue and InflationIndex are end-of-year values (growth for the year
// already applied); costs, rent, LTV and equity reflect the values the year
// started with. The JSON names are the column contract consumed by
// downstream rendering.
type YearlyRecord struct {
	Year             int             `json:"year"`
	HomeValue        decimal.Decimal `json:"home_value"`
	MortgageBalance  decimal.Decimal `json:"mortgage_balance"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PMIPaid          decimal.Decimal `json:"pmi_paid"`
	LTV              decimal.Decimal `json:"ltv"`
	PropertyTax      decimal.Decimal `json:"property_tax"`
	Maintenance      decimal.Decimal `json:"maintenance"`
	HOAAnnual        decimal.Decimal `json:"hoa_annual"`
	HomeInsurance    decimal.Decimal `json:"home_insurance"`
	AnnualRent       decimal.Decimal `json:"annual_rent"`
	RentersInsurance decimal.Decimal `json:"renters_insurance"`

	OwnerCashOutflow  decimal.Decimal `json:"owner_cash_outflow"`
	RenterCashOutflow decimal.Decimal `json:"renter_cash_outflow"`
	RenterSurplus     decimal.Decimal `json:"renter_surplus"`
	RenterBalance     decimal.Decimal `json:"renter_balance"`
	OwnerNetWorth     decimal.Decimal `json:"owner_net_worth"`
	RenterNetWorth    decimal.Decimal `json:"renter_net_worth"`

	InflationRate            decimal.Decimal `json:"inflation_rate"`
	InvestmentReturn         decimal.Decimal `json:"investment_return"`
	InvestmentReturnAfterTax decimal.Decimal `json:"investment_return_after_tax"`
	HomeAppreciation         decimal.Decimal `json:"home_appreciation"`
	RentGrowth               decimal.Decimal `json:"rent_growth"`
	InflationIndex           decimal.Decimal `json:"inflation_index"`

	OwnerEconomicCost decimal.Decimal `json:"owner_economic_cost"`
}

// YearlyTable holds one record per simulated year, in year order.
// It is built once per run and never modified afterwards.
type YearlyTable []YearlyRecord

// Final returns the last projected year. The table is never empty because
// horizon is validated to be positive.
func (t YearlyTable) Final() YearlyRecord {
	return t[len(t)-1]
}

// SummaryResult is the terminal comparison of the two paths.
type SummaryResult struct {
	OwnerNetWorth          decimal.Decimal `json:"owner_net_worth"`
	RenterNetWorth         decimal.Decimal `json:"renter_net_worth"`
	NetWorthDiff           decimal.Decimal `json:"net_worth_diff"`
	TerminalInflationIndex decimal.Decimal `json:"terminal_inflation_index"`
}

// WaterfallRow is one step of the renter-to-owner net worth bridge.
type WaterfallRow struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// WaterfallTable is the ordered bridge from renter net worth to owner net
// worth. The first row is the renter anchor, the last row the owner total;
// the rows in between sum (with sign) to their difference.
type WaterfallTable []WaterfallRow

// RunResult bundles everything a single deterministic run produces.
type RunResult struct {
	Yearly    YearlyTable    `json:"yearly"`
	Summary   SummaryResult  `json:"summary"`
	Waterfall WaterfallTable `json:"waterfall"`
}

// TrialResult is one Monte Carlo trial's terminal scalars.
type TrialResult struct {
	OwnerNetWorth  decimal.Decimal `json:"owner_net_worth"`
	RenterNetWorth decimal.Decimal `json:"renter_net_worth"`
	NetWorthDiff   decimal.Decimal `json:"net_worth_diff"`
}

// PercentileRanges summarizes the distribution of a Monte Carlo metric.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// EnsembleStats aggregates the net worth difference across all trials.
type EnsembleStats struct {
	ProbOwnerWins   decimal.Decimal  `json:"prob_owner_wins"`
	MedianDiff      decimal.Decimal  `json:"median_diff"`
	DiffPercentiles PercentileRanges `json:"diff_percentiles"`
}

// Ensemble is the full Monte Carlo output: one row per trial plus the
// aggregate statistics, and optionally the per-trial yearly tables when
// retention was requested.
type Ensemble struct {
	Trials       []TrialResult `json:"trials"`
	Stats        EnsembleStats `json:"stats"`
	YearlyTables []YearlyTable `json:"yearly_tables,omitempty"`
	NumTrials    int           `json:"num_trials"`
	Seed         int64         `json:"seed"`
}
