package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
	fin "github.com/rvbgo/rentvsbuy/pkg/decimal"
)

// Waterfall category labels, in bridge order.
const (
	CategoryRenterNetWorth      = "Renter Net Worth"
	CategoryNetHomeAppreciation = "Net Home Appreciation (after selling costs and tax)"
	CategoryPrincipalPaydown    = "Principal Paydown"
	CategoryMortgageInterest    = "Mortgage Interest"
	CategoryOwnerCarryingCosts  = "Owner Carrying Costs (net of rent avoided)"
	CategoryOpportunityCost     = "Opportunity Cost of Down Payment"
	CategoryOwnerNetWorth       = "Owner Net Worth"
)

// BuildSummary computes terminal net worth for both paths, the sale and
// capital-gains decomposition, and the waterfall that bridges renter net
// worth to owner net worth.
func BuildSummary(yearly domain.YearlyTable, a domain.Assumptions) (domain.SummaryResult, domain.WaterfallTable) {
	end := yearly.Final()

	salePrice := end.HomeValue
	sellingCosts := salePrice.Mul(a.SellingCostsPct)
	closingCosts := a.ClosingCosts()

	// The exclusion is stated in today's dollars; inflate it with the
	// realized index, falling back to the theoretical path only if the
	// table carries no index.
	index := end.InflationIndex
	if index.IsZero() {
		index = fin.GrowthFactor(a.Inflation).Pow(decimal.NewFromInt(int64(a.Horizon)))
	}
	exclusion := a.CapitalGainsExclusion.Mul(index)

	gain := salePrice.Sub(a.HomePrice.Add(closingCosts)).Sub(sellingCosts)
	taxableGain := fin.Max(decimal.Zero, gain.Sub(exclusion))
	capGainsTax := taxableGain.Mul(a.CapitalGainsTaxRate)
	netSale := salePrice.Sub(sellingCosts).Sub(capGainsTax)

	var ownerNet decimal.Decimal
	if a.SellAtEnd {
		ownerNet = netSale.Sub(end.MortgageBalance)
	} else {
		ownerNet = end.OwnerNetWorth
	}
	renterNet := end.RenterNetWorth
	diff := ownerNet.Sub(renterNet)

	// Opportunity cost of the down payment along the realized after-tax
	// investment path, not the nominal rate.
	downPayment := a.DownPayment()
	grown := downPayment
	for _, row := range yearly {
		grown = grown.Mul(fin.GrowthFactor(row.InvestmentReturnAfterTax))
	}
	opportunityCost := grown.Sub(downPayment)

	var totalPrincipal, totalInterest decimal.Decimal
	for _, row := range yearly {
		totalPrincipal = totalPrincipal.Add(row.PrincipalPaid)
		totalInterest = totalInterest.Add(row.InterestPaid)
	}

	// Bridge rows. Appreciation is measured against the owner's terminal
	// position so it holds whether or not the home is sold; the carrying
	// cost row is the exact remainder of the bridge (carrying costs,
	// closing costs and forgone growth, net of rent avoided, in terminal
	// dollars), which makes the waterfall reconcile to the cent.
	appreciation := ownerNet.Add(end.MortgageBalance).Sub(a.HomePrice)
	interestRow := totalInterest.Neg()
	opportunityRow := opportunityCost.Neg()
	carrying := diff.Sub(appreciation).Sub(totalPrincipal).Sub(interestRow).Sub(opportunityRow)

	waterfall := domain.WaterfallTable{
		{Category: CategoryRenterNetWorth, Value: renterNet},
		{Category: CategoryNetHomeAppreciation, Value: appreciation},
		{Category: CategoryPrincipalPaydown, Value: totalPrincipal},
		{Category: CategoryMortgageInterest, Value: interestRow},
		{Category: CategoryOwnerCarryingCosts, Value: carrying},
		{Category: CategoryOpportunityCost, Value: opportunityRow},
		{Category: CategoryOwnerNetWorth, Value: ownerNet},
	}

	summary := domain.SummaryResult{
		OwnerNetWorth:          ownerNet,
		RenterNetWorth:         renterNet,
		NetWorthDiff:           diff,
		TerminalInflationIndex: index,
	}
	return summary, waterfall
}
