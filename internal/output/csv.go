package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// yearlyColumns is the column contract consumed by downstream rendering.
// Order and names must not change.
var yearlyColumns = []string{
	"year", "home_value", "mortgage_balance", "principal_paid",
	"interest_paid", "pmi_paid", "ltv", "property_tax", "maintenance",
	"hoa_annual", "home_insurance", "annual_rent", "renters_insurance",
	"owner_cash_outflow", "renter_cash_outflow", "renter_surplus",
	"renter_balance", "owner_net_worth", "renter_net_worth",
	"inflation_rate", "investment_return", "investment_return_after_tax",
	"home_appreciation", "rent_growth", "inflation_index",
	"owner_economic_cost",
}

// CSVYearlyExporter writes the per-year table, one row per simulated year.
type CSVYearlyExporter struct{}

func (CSVYearlyExporter) Name() string { return "csv" }

func (CSVYearlyExporter) FormatRun(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(yearlyColumns); err != nil {
		return nil, err
	}
	for _, row := range result.Yearly {
		record := []string{
			strconv.Itoa(row.Year),
			row.HomeValue.StringFixed(2),
			row.MortgageBalance.StringFixed(2),
			row.PrincipalPaid.StringFixed(2),
			row.InterestPaid.StringFixed(2),
			row.PMIPaid.StringFixed(2),
			row.LTV.StringFixed(6),
			row.PropertyTax.StringFixed(2),
			row.Maintenance.StringFixed(2),
			row.HOAAnnual.StringFixed(2),
			row.HomeInsurance.StringFixed(2),
			row.AnnualRent.StringFixed(2),
			row.RentersInsurance.StringFixed(2),
			row.OwnerCashOutflow.StringFixed(2),
			row.RenterCashOutflow.StringFixed(2),
			row.RenterSurplus.StringFixed(2),
			row.RenterBalance.StringFixed(2),
			row.OwnerNetWorth.StringFixed(2),
			row.RenterNetWorth.StringFixed(2),
			row.InflationRate.StringFixed(6),
			row.InvestmentReturn.StringFixed(6),
			row.InvestmentReturnAfterTax.StringFixed(6),
			row.HomeAppreciation.StringFixed(6),
			row.RentGrowth.StringFixed(6),
			row.InflationIndex.StringFixed(6),
			row.OwnerEconomicCost.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVEnsembleExporter writes the ensemble table, one row per trial.
type CSVEnsembleExporter struct{}

func (CSVEnsembleExporter) Name() string { return "csv" }

func (CSVEnsembleExporter) FormatEnsemble(ensemble *domain.Ensemble) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"owner_net_worth", "renter_net_worth", "net_worth_diff"}); err != nil {
		return nil, err
	}
	for _, tr := range ensemble.Trials {
		record := []string{
			tr.OwnerNetWorth.StringFixed(2),
			tr.RenterNetWorth.StringFixed(2),
			tr.NetWorthDiff.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
