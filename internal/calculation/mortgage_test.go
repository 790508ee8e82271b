package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmortizeKnownPayment(t *testing.T) {
	a := baseAssumptions()

	schedule := AmortizeMortgage(a)

	// 400k at 6% over 30 years is the textbook 2398.20/month.
	wantAnnual := decimal.NewFromFloat(2398.20).Mul(decimal.NewFromInt(12))
	assertDecimalNear(t, wantAnnual, schedule.AnnualPayment, 1.0, "annual payment")
	if !schedule.LoanAmount.Equal(decimal.NewFromInt(400000)) {
		t.Errorf("loan amount: expected 400000, got %s", schedule.LoanAmount)
	}
}

func TestAmortizeClosesAtTerm(t *testing.T) {
	a := baseAssumptions()
	a.Horizon = a.MortgageTerm

	schedule := AmortizeMortgage(a)

	final := schedule.Years[len(schedule.Years)-1]
	if !final.Balance.IsZero() {
		t.Errorf("balance after final payment: expected 0, got %s", final.Balance)
	}

	totalPrincipal := decimal.Zero
	for _, y := range schedule.Years {
		totalPrincipal = totalPrincipal.Add(y.PrincipalPaid)
	}
	assertDecimalNear(t, schedule.LoanAmount, totalPrincipal, 0.01, "total principal")
}

func TestAmortizeZeroRate(t *testing.T) {
	a := baseAssumptions()
	a.MortgageRate = decimal.Zero
	a.MortgageTerm = 10
	a.Horizon = 10

	schedule := AmortizeMortgage(a)

	// With no interest the payment is straight-line principal.
	wantAnnual := schedule.LoanAmount.Div(decimal.NewFromInt(10))
	assertDecimalNear(t, wantAnnual, schedule.AnnualPayment, 0.01, "zero-rate annual payment")
	for _, y := range schedule.Years {
		if !y.InterestPaid.IsZero() {
			t.Errorf("year %d: interest %s on a zero-rate loan", y.Year, y.InterestPaid)
		}
	}
	if !schedule.Years[9].Balance.IsZero() {
		t.Errorf("final balance: expected 0, got %s", schedule.Years[9].Balance)
	}
}

func TestAmortizePostPayoffYearsAreZero(t *testing.T) {
	a := baseAssumptions()
	a.MortgageTerm = 15
	a.Horizon = 20

	schedule := AmortizeMortgage(a)

	if len(schedule.Years) != 20 {
		t.Fatalf("expected 20 years, got %d", len(schedule.Years))
	}
	if !schedule.Years[14].Balance.IsZero() {
		t.Errorf("balance at term: expected 0, got %s", schedule.Years[14].Balance)
	}
	for _, y := range schedule.Years[15:] {
		if !y.Balance.IsZero() || !y.PrincipalPaid.IsZero() || !y.InterestPaid.IsZero() {
			t.Errorf("year %d after payoff: balance=%s principal=%s interest=%s, all should be zero",
				y.Year, y.Balance, y.PrincipalPaid, y.InterestPaid)
		}
	}
}

func TestAmortizeBalanceMonotone(t *testing.T) {
	a := baseAssumptions()

	schedule := AmortizeMortgage(a)

	prev := schedule.LoanAmount
	for _, y := range schedule.Years {
		if y.Balance.GreaterThan(prev) {
			t.Errorf("year %d: balance %s grew from %s", y.Year, y.Balance, prev)
		}
		prev = y.Balance
	}
}

func TestAmortizeFullCashPurchase(t *testing.T) {
	a := baseAssumptions()
	a.DownPaymentPct = decimal.NewFromInt(1)

	schedule := AmortizeMortgage(a)

	if !schedule.LoanAmount.IsZero() {
		t.Fatalf("loan amount: expected 0, got %s", schedule.LoanAmount)
	}
	for _, y := range schedule.Years {
		if !y.PrincipalPaid.IsZero() || !y.InterestPaid.IsZero() {
			t.Errorf("year %d: payments on a zero loan", y.Year)
		}
	}
}
