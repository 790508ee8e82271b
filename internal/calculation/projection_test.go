package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// baseAssumptions is a realistic resolved assumption set shared across the
// calculation tests. Individual tests copy and tweak it.
func baseAssumptions() domain.Assumptions {
	return domain.Assumptions{
		HomePrice:       decimal.NewFromInt(500000),
		DownPaymentPct:  decimal.NewFromFloat(0.20),
		MortgageRate:    decimal.NewFromFloat(0.06),
		MortgageTerm:    30,
		ClosingCostsPct: decimal.NewFromFloat(0.03),
		PMIRate:         decimal.NewFromFloat(0.0075),
		PMILTVCutoff:    decimal.NewFromFloat(0.80),

		MaintenancePct:            decimal.NewFromFloat(0.01),
		PropertyTaxPct:            decimal.NewFromFloat(0.011),
		HOAMonthly:                decimal.NewFromInt(100),
		HomeownersInsuranceAnnual: decimal.NewFromInt(1500),
		SellingCostsPct:           decimal.NewFromFloat(0.06),

		HomeAppreciationRate: decimal.NewFromFloat(0.035),
		SellAtEnd:            true,

		RentBasis:              domain.RentBasisMarket,
		MonthlyRent:            decimal.NewFromInt(2400),
		RentGrowthRate:         decimal.NewFromFloat(0.03),
		RentersInsuranceAnnual: decimal.NewFromInt(200),

		Horizon:                     30,
		InvestmentReturn:            decimal.NewFromFloat(0.07),
		Inflation:                   decimal.NewFromFloat(0.025),
		InvestmentTaxDrag:           decimal.NewFromFloat(0.15),
		CapitalGainsTaxRate:         decimal.NewFromFloat(0.15),
		CapitalGainsExclusionSingle: decimal.NewFromInt(250000),
		CapitalGainsExclusion:       decimal.NewFromInt(250000),
	}
}

// zeroRateAssumptions freezes all four driving rates so every yearly value
// can be computed by hand.
func zeroRateAssumptions() domain.Assumptions {
	a := baseAssumptions()
	a.InvestmentReturn = decimal.Zero
	a.HomeAppreciationRate = decimal.Zero
	a.RentGrowthRate = decimal.Zero
	a.Inflation = decimal.Zero
	return a
}

func assertDecimalNear(t *testing.T, want, got decimal.Decimal, tolerance float64, label string) {
	t.Helper()
	if want.Sub(got).Abs().GreaterThan(decimal.NewFromFloat(tolerance)) {
		t.Errorf("%s: expected %s, got %s", label, want.StringFixed(4), got.StringFixed(4))
	}
}

func TestBuildYearlyTableLength(t *testing.T) {
	a := baseAssumptions()
	a.Horizon = 12

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	if len(table) != 12 {
		t.Fatalf("expected 12 yearly records, got %d", len(table))
	}
	for i, row := range table {
		if row.Year != i+1 {
			t.Errorf("row %d: expected year %d, got %d", i, i+1, row.Year)
		}
	}
}

func TestYearOneRenterBalance(t *testing.T) {
	a := baseAssumptions()
	table := BuildYearlyTable(a, NewConstantRateProvider(a))
	y1 := table[0]

	// The renter starts by investing the owner's down payment plus closing
	// costs, compounds it at the after-tax return, then banks the year's
	// surplus.
	initial := a.HomePrice.Mul(a.DownPaymentPct.Add(a.ClosingCostsPct))
	afterTax := a.InvestmentReturn.Mul(decimal.NewFromInt(1).Sub(a.InvestmentTaxDrag))
	want := initial.Mul(decimal.NewFromInt(1).Add(afterTax)).Add(y1.RenterSurplus)

	assertDecimalNear(t, want, y1.RenterBalance, 0.01, "year-1 renter balance")
	if !y1.RenterNetWorth.Equal(y1.RenterBalance) {
		t.Errorf("renter net worth should equal renter balance, got %s vs %s",
			y1.RenterNetWorth, y1.RenterBalance)
	}
}

func TestCostsUseStartOfYearHomeValue(t *testing.T) {
	a := zeroRateAssumptions()
	a.HomeAppreciationRate = decimal.NewFromFloat(0.10)
	a.Horizon = 3

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	// Year-1 costs are charged on the purchase price even though the
	// recorded home value already includes the year's growth.
	assertDecimalNear(t, a.HomePrice.Mul(a.MaintenancePct), table[0].Maintenance, 0.01, "year-1 maintenance")
	assertDecimalNear(t, a.HomePrice.Mul(a.PropertyTaxPct), table[0].PropertyTax, 0.01, "year-1 property tax")
	assertDecimalNear(t, a.HomePrice.Mul(decimal.NewFromFloat(1.10)), table[0].HomeValue, 0.01, "year-1 home value")

	// Year-2 costs are charged on the year-1 end value.
	grown := a.HomePrice.Mul(decimal.NewFromFloat(1.10))
	assertDecimalNear(t, grown.Mul(a.MaintenancePct), table[1].Maintenance, 0.01, "year-2 maintenance")
}

func TestInflationIndexingOfFixedCosts(t *testing.T) {
	a := zeroRateAssumptions()
	a.Inflation = decimal.NewFromFloat(0.10)
	a.Horizon = 3

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	// HOA and both insurances use the inflation accumulated through the
	// prior year end: year 1 at the stated level, year 2 scaled by 1.10.
	hoaBase := a.HOAMonthly.Mul(decimal.NewFromInt(12))
	assertDecimalNear(t, hoaBase, table[0].HOAAnnual, 0.01, "year-1 HOA")
	assertDecimalNear(t, a.HomeownersInsuranceAnnual, table[0].HomeInsurance, 0.01, "year-1 home insurance")
	assertDecimalNear(t, hoaBase.Mul(decimal.NewFromFloat(1.10)), table[1].HOAAnnual, 0.01, "year-2 HOA")
	assertDecimalNear(t, a.RentersInsuranceAnnual.Mul(decimal.NewFromFloat(1.10)), table[1].RentersInsurance, 0.01, "year-2 renters insurance")

	// The recorded index is the end-of-year value.
	assertDecimalNear(t, decimal.NewFromFloat(1.10), table[0].InflationIndex, 1e-9, "year-1 inflation index")
	assertDecimalNear(t, decimal.NewFromFloat(1.21), table[1].InflationIndex, 1e-9, "year-2 inflation index")
}

func TestRentRecordedBeforeGrowth(t *testing.T) {
	a := zeroRateAssumptions()
	a.RentGrowthRate = decimal.NewFromFloat(0.10)
	a.Horizon = 3

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	marketRent := a.MonthlyRent.Mul(decimal.NewFromInt(12))
	assertDecimalNear(t, marketRent, table[0].AnnualRent, 0.01, "year-1 rent")
	assertDecimalNear(t, marketRent.Mul(decimal.NewFromFloat(1.10)), table[1].AnnualRent, 0.01, "year-2 rent")
}

func TestPMIChargedAndRemoved(t *testing.T) {
	a := baseAssumptions()
	a.DownPaymentPct = decimal.NewFromFloat(0.05)

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	wantPMI := a.PMIRate.Mul(a.LoanAmount())
	if !table[0].PMIPaid.Equal(wantPMI) {
		t.Errorf("year-1 PMI: expected %s, got %s", wantPMI, table[0].PMIPaid)
	}

	// Appreciation plus paydown eventually pushes LTV under the cutoff and
	// PMI stops. It must stop before the horizon ends with these numbers.
	sawRemoval := false
	for _, row := range table {
		if row.PMIPaid.IsZero() {
			sawRemoval = true
		}
		if sawRemoval && !row.PMIPaid.IsZero() {
			t.Errorf("year %d: PMI came back after removal with monotone falling LTV", row.Year)
		}
	}
	if !sawRemoval {
		t.Error("PMI was never removed over the horizon")
	}
}

func TestNoPMIWithTwentyPercentDown(t *testing.T) {
	a := baseAssumptions()

	table := BuildYearlyTable(a, NewConstantRateProvider(a))
	for _, row := range table {
		if !row.PMIPaid.IsZero() {
			t.Fatalf("year %d: PMI charged with a 20%% down payment", row.Year)
		}
	}
}

func TestRentBasisMatchMortgage(t *testing.T) {
	a := baseAssumptions()
	a.RentBasis = domain.RentBasisMatchMortgage

	schedule := AmortizeMortgage(a)
	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	if !table[0].AnnualRent.Equal(schedule.AnnualPayment) {
		t.Errorf("match_mortgage rent: expected %s, got %s",
			schedule.AnnualPayment, table[0].AnnualRent)
	}
}

func TestRentBasisMatchOwnerCost(t *testing.T) {
	a := baseAssumptions()
	a.RentBasis = domain.RentBasisMatchOwnerCost

	schedule := AmortizeMortgage(a)
	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	want := schedule.AnnualPayment.
		Add(a.HomePrice.Mul(a.PropertyTaxPct)).
		Add(a.HomePrice.Mul(a.MaintenancePct)).
		Add(a.HOAMonthly.Mul(decimal.NewFromInt(12))).
		Add(a.HomeownersInsuranceAnnual)
	if !table[0].AnnualRent.Equal(want) {
		t.Errorf("match_owner_cost rent: expected %s, got %s", want, table[0].AnnualRent)
	}
}

func TestOwnerEconomicCostExcludesPrincipal(t *testing.T) {
	a := baseAssumptions()
	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	for _, row := range table {
		want := row.OwnerCashOutflow.Sub(row.PrincipalPaid)
		if !row.OwnerEconomicCost.Equal(want) {
			t.Errorf("year %d: economic cost %s should be cash outflow minus principal %s",
				row.Year, row.OwnerEconomicCost, want)
		}
	}
}

func TestTotalLossKeepsPMIWithoutDividingByZero(t *testing.T) {
	a := baseAssumptions()
	a.DownPaymentPct = decimal.NewFromFloat(0.05)
	a.HomeAppreciationRate = decimal.NewFromInt(-1)
	a.Horizon = 3

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	// The home is worthless from the end of year 1 on; the loan is
	// unsecured, so PMI keeps being charged and LTV reports zero instead
	// of dividing by the dead value.
	wantPMI := a.PMIRate.Mul(a.LoanAmount())
	for _, row := range table {
		if !row.PMIPaid.Equal(wantPMI) {
			t.Errorf("year %d: expected PMI %s on an unsecured loan, got %s",
				row.Year, wantPMI, row.PMIPaid)
		}
	}
	for _, row := range table {
		if !row.HomeValue.IsZero() {
			t.Errorf("year %d: home value should be wiped out, got %s", row.Year, row.HomeValue)
		}
	}
	for _, row := range table[1:] {
		if !row.LTV.IsZero() {
			t.Errorf("year %d: LTV on a zero home value should report zero, got %s",
				row.Year, row.LTV)
		}
	}
}

func TestOwnerNetWorthIsStartOfYearEquity(t *testing.T) {
	a := zeroRateAssumptions()
	a.HomeAppreciationRate = decimal.NewFromFloat(0.10)
	a.Horizon = 2

	table := BuildYearlyTable(a, NewConstantRateProvider(a))

	// Equity is measured before the year's appreciation is applied, so
	// year-1 equity uses the purchase price.
	want := a.HomePrice.Sub(table[0].MortgageBalance)
	assertDecimalNear(t, want, table[0].OwnerNetWorth, 0.01, "year-1 owner equity")
}
