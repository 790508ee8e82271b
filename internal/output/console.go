package output

import (
	"bytes"
	"fmt"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// ConsoleFormatter renders results as human-readable text.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) FormatRun(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "RENT VS BUY - DETERMINISTIC RUN")
	fmt.Fprintln(buf, "===============================")
	fmt.Fprintf(buf, "Horizon: %d years\n\n", len(result.Yearly))

	s := result.Summary
	fmt.Fprintf(buf, "Owner net worth:   %s\n", FormatCurrency(s.OwnerNetWorth))
	fmt.Fprintf(buf, "Renter net worth:  %s\n", FormatCurrency(s.RenterNetWorth))
	fmt.Fprintf(buf, "Difference:        %s\n", FormatCurrency(s.NetWorthDiff))
	fmt.Fprintf(buf, "Terminal inflation index: %s\n\n", s.TerminalInflationIndex.StringFixed(4))

	fmt.Fprintln(buf, "Waterfall (renter -> owner):")
	for _, row := range result.Waterfall {
		fmt.Fprintf(buf, "  %-52s %16s\n", row.Category, FormatCurrency(row.Value))
	}

	fmt.Fprintln(buf, "\nYear  Owner outflow     Renter outflow    Owner NW          Renter NW")
	for _, row := range result.Yearly {
		fmt.Fprintf(buf, "%4d  %-16s  %-16s  %-16s  %-16s\n",
			row.Year,
			FormatCurrency(row.OwnerCashOutflow),
			FormatCurrency(row.RenterCashOutflow),
			FormatCurrency(row.OwnerNetWorth),
			FormatCurrency(row.RenterNetWorth),
		)
	}

	return buf.Bytes(), nil
}

func (ConsoleFormatter) FormatEnsemble(ensemble *domain.Ensemble) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "RENT VS BUY - MONTE CARLO")
	fmt.Fprintln(buf, "=========================")
	fmt.Fprintf(buf, "Trials: %d  Seed: %d\n\n", ensemble.NumTrials, ensemble.Seed)

	st := ensemble.Stats
	fmt.Fprintf(buf, "P(owner wins):      %s\n", FormatPercent(st.ProbOwnerWins))
	fmt.Fprintf(buf, "Median diff:        %s\n", FormatCurrency(st.MedianDiff))
	fmt.Fprintln(buf, "\nNet worth difference percentiles:")
	fmt.Fprintf(buf, "  P10: %s\n", FormatCurrency(st.DiffPercentiles.P10))
	fmt.Fprintf(buf, "  P25: %s\n", FormatCurrency(st.DiffPercentiles.P25))
	fmt.Fprintf(buf, "  P50: %s\n", FormatCurrency(st.DiffPercentiles.P50))
	fmt.Fprintf(buf, "  P75: %s\n", FormatCurrency(st.DiffPercentiles.P75))
	fmt.Fprintf(buf, "  P90: %s\n", FormatCurrency(st.DiffPercentiles.P90))

	return buf.Bytes(), nil
}
