package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// MortgageYear is one year of annual amortization aggregates.
type MortgageYear struct {
	Year          int
	Balance       decimal.Decimal // end-of-year balance
	PrincipalPaid decimal.Decimal
	InterestPaid  decimal.Decimal
}

// MortgageSchedule is the amortization output for years 1..horizon, together
// with the constant annual payment and the original loan amount.
type MortgageSchedule struct {
	Years         []MortgageYear
	AnnualPayment decimal.Decimal
	LoanAmount    decimal.Decimal
}

// AmortizeMortgage builds the level-payment amortization schedule. The loan
// is simulated month by month and reported as annual aggregates. When the
// horizon outlives the loan term, the final scheduled payment is capped at
// the remaining balance and later years report zero principal and interest
// on a zero balance.
func AmortizeMortgage(a domain.Assumptions) MortgageSchedule {
	one := decimal.NewFromInt(1)
	loan := a.LoanAmount()
	monthlyRate := a.MortgageRate.Div(decimal.NewFromInt(12))
	termMonths := a.MortgageTerm * 12

	var pmt decimal.Decimal
	if monthlyRate.IsZero() {
		pmt = loan.Div(decimal.NewFromInt(int64(termMonths)))
	} else {
		// pmt = L*r / (1 - (1+r)^-n)
		compound := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
		pmt = loan.Mul(monthlyRate).Div(one.Sub(one.Div(compound)))
	}

	balance := loan
	month := 0
	years := make([]MortgageYear, 0, a.Horizon)
	for year := 1; year <= a.Horizon; year++ {
		interest := decimal.Zero
		principal := decimal.Zero
		for m := 0; m < 12; m++ {
			month++
			if balance.IsZero() || month > termMonths {
				continue
			}
			i := balance.Mul(monthlyRate)
			p := pmt.Sub(i)
			if p.GreaterThan(balance) || month == termMonths {
				p = balance
			}
			balance = balance.Sub(p)
			interest = interest.Add(i)
			principal = principal.Add(p)
		}
		years = append(years, MortgageYear{
			Year:          year,
			Balance:       balance,
			PrincipalPaid: principal,
			InterestPaid:  interest,
		})
	}

	return MortgageSchedule{
		Years:         years,
		AnnualPayment: pmt.Mul(decimal.NewFromInt(12)),
		LoanAmount:    loan,
	}
}
