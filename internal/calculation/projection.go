package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
	fin "github.com/rvbgo/rentvsbuy/pkg/decimal"
)

// BuildYearlyTable advances the owner and renter positions one year at a
// time and returns the per-year table.
//
// The in-year ordering is the load-bearing contract: every cost, the LTV
// and the recorded equity use the home value and rent the year started
// with; HOA and insurance scale with the inflation accumulated through the
// prior year end; the renter balance compounds before the year's surplus is
// added. Only then are the inflation index and home value advanced (and
// recorded, so the row carries end-of-year values), with rent advancing
// after the row is recorded.
func BuildYearlyTable(a domain.Assumptions, rates RateProvider) domain.YearlyTable {
	schedule := AmortizeMortgage(a)
	baseRent := baseAnnualRent(a, schedule.AnnualPayment)

	homeValue := a.HomePrice
	annualRent := baseRent
	inflationIndex := fin.One()

	// The renter invests the cash the owner commits up front.
	renterBalance := a.HomePrice.Mul(a.DownPaymentPct.Add(a.ClosingCostsPct))

	table := make(domain.YearlyTable, 0, a.Horizon)
	for year := 1; year <= a.Horizon; year++ {
		invReturn := rates.Get(domain.RateInvestmentReturn, year)
		homeGrowth := rates.Get(domain.RateHomeAppreciation, year)
		rentGrowth := rates.Get(domain.RateRentGrowth, year)
		inflation := rates.Get(domain.RateInflation, year)

		maintenance := homeValue.Mul(a.MaintenancePct)
		propertyTax := homeValue.Mul(a.PropertyTaxPct)
		hoaAnnual := fin.Annualize(a.HOAMonthly).Mul(inflationIndex)
		homeInsurance := a.HomeownersInsuranceAnnual.Mul(inflationIndex)
		rentersInsurance := a.RentersInsuranceAnnual.Mul(inflationIndex)

		sched := schedule.Years[year-1]

		// A wiped-out home value leaves the loan unsecured: the cutoff
		// counts as exceeded and the recorded LTV stays zero.
		ltv := decimal.Zero
		aboveCutoff := true
		if homeValue.IsPositive() {
			ltv = sched.Balance.Div(homeValue)
			aboveCutoff = ltv.GreaterThan(a.PMILTVCutoff)
		}

		// PMI is re-evaluated every year from the LTV trajectory; removal
		// is not sticky.
		pmiPaid := decimal.Zero
		if a.DownPaymentPct.LessThan(decimal.NewFromFloat(0.20)) && aboveCutoff {
			pmiPaid = a.PMIRate.Mul(schedule.LoanAmount)
		}

		ownerOutflow := sched.PrincipalPaid.
			Add(sched.InterestPaid).
			Add(pmiPaid).
			Add(propertyTax).
			Add(maintenance).
			Add(hoaAnnual).
			Add(homeInsurance)
		renterOutflow := annualRent.Add(rentersInsurance)
		renterSurplus := ownerOutflow.Sub(renterOutflow)

		afterTaxReturn := fin.AfterTax(invReturn, a.InvestmentTaxDrag)
		renterBalance = renterBalance.Mul(fin.GrowthFactor(afterTaxReturn))
		renterBalance = renterBalance.Add(renterSurplus)

		equity := homeValue.Sub(sched.Balance)

		inflationIndex = inflationIndex.Mul(fin.GrowthFactor(inflation))
		homeValue = homeValue.Mul(fin.GrowthFactor(homeGrowth))

		table = append(table, domain.YearlyRecord{
			Year:                     year,
			HomeValue:                homeValue,
			MortgageBalance:          sched.Balance,
			PrincipalPaid:            sched.PrincipalPaid,
			InterestPaid:             sched.InterestPaid,
			PMIPaid:                  pmiPaid,
			LTV:                      ltv,
			PropertyTax:              propertyTax,
			Maintenance:              maintenance,
			HOAAnnual:                hoaAnnual,
			HomeInsurance:            homeInsurance,
			AnnualRent:               annualRent,
			RentersInsurance:         rentersInsurance,
			OwnerCashOutflow:         ownerOutflow,
			RenterCashOutflow:        renterOutflow,
			RenterSurplus:            renterSurplus,
			RenterBalance:            renterBalance,
			OwnerNetWorth:            equity,
			RenterNetWorth:           renterBalance,
			InflationRate:            inflation,
			InvestmentReturn:         invReturn,
			InvestmentReturnAfterTax: afterTaxReturn,
			HomeAppreciation:         homeGrowth,
			RentGrowth:               rentGrowth,
			InflationIndex:           inflationIndex,
			// Principal is a transfer into equity, not a cost.
			OwnerEconomicCost: sched.InterestPaid.
				Add(pmiPaid).
				Add(propertyTax).
				Add(maintenance).
				Add(hoaAnnual).
				Add(homeInsurance),
		})

		annualRent = annualRent.Mul(fin.GrowthFactor(rentGrowth))
	}

	return table
}

// baseAnnualRent derives the year-1 rent from the configured rent basis.
func baseAnnualRent(a domain.Assumptions, annualPayment decimal.Decimal) decimal.Decimal {
	switch a.RentBasis {
	case domain.RentBasisMatchMortgage:
		return annualPayment
	case domain.RentBasisMatchOwnerCost:
		// Full year-1 owner cost, estimated at the starting home price.
		return annualPayment.
			Add(a.HomePrice.Mul(a.PropertyTaxPct)).
			Add(a.HomePrice.Mul(a.MaintenancePct)).
			Add(fin.Annualize(a.HOAMonthly)).
			Add(a.HomeownersInsuranceAnnual)
	default:
		return fin.Annualize(a.MonthlyRent)
	}
}
