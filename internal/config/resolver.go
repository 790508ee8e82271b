package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// usRegion is the baseline region every regional tilt is measured against.
const usRegion = "US"

// Resolver merges configuration layers into a validated assumption set.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver over a loaded store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve merges, in increasing precedence, global defaults, the named
// scenario, the named region and the caller overrides, applies the regional
// tilt to the two growth rates (unless explicitly overridden), doubles the
// capital-gains exclusion for married filers, and returns a validated
// Assumptions value. No partial assumption set is ever returned.
func (r *Resolver) Resolve(scenario, region string, overrides map[string]any, horizon int) (domain.Assumptions, error) {
	scen, ok := r.store.scenarios[scenario]
	if !ok {
		return domain.Assumptions{}, fmt.Errorf("unknown scenario %q", scenario)
	}
	reg, ok := r.store.regions[region]
	if !ok {
		return domain.Assumptions{}, fmt.Errorf("unknown region %q", region)
	}
	us, ok := r.store.regions[usRegion]
	if !ok {
		return domain.Assumptions{}, fmt.Errorf("regions must include the %q baseline", usRegion)
	}

	merged := Params{}
	for _, layer := range []Params{r.store.globals, scen, reg, overrides} {
		for k, v := range layer {
			merged[k] = v
		}
	}

	appreciation, err := r.tiltedRate("home_appreciation_rate", scen, reg, us, overrides)
	if err != nil {
		return domain.Assumptions{}, err
	}
	rentGrowth, err := r.tiltedRate("rent_growth_rate", scen, reg, us, overrides)
	if err != nil {
		return domain.Assumptions{}, err
	}

	p := &paramReader{params: merged}
	married := p.boolOr("married", false)
	exclusionSingle := p.dec("capital_gains_exclusion_single")
	exclusion := exclusionSingle
	if married {
		exclusion = exclusionSingle.Mul(decimal.NewFromInt(2))
	}

	a := domain.Assumptions{
		HomePrice:       p.dec("home_price"),
		DownPaymentPct:  p.dec("down_payment_pct"),
		MortgageRate:    p.dec("mortgage_rate"),
		MortgageTerm:    p.integer("mortgage_term"),
		ClosingCostsPct: p.dec("closing_costs_pct"),
		PMIRate:         p.dec("pmi_rate"),
		PMILTVCutoff:    p.dec("pmi_ltv_cutoff"),

		MaintenancePct:            p.dec("maintenance_pct"),
		PropertyTaxPct:            p.dec("property_tax_pct"),
		HOAMonthly:                p.dec("hoa_monthly"),
		HomeownersInsuranceAnnual: p.dec("homeowners_insurance_annual"),
		SellingCostsPct:           p.dec("selling_costs_pct"),

		HomeAppreciationRate: appreciation,
		SellAtEnd:            p.boolOr("sell_at_end", true),

		RentBasis:              domain.RentBasis(p.stringOr("rent_basis", string(domain.RentBasisMarket))),
		MonthlyRent:            p.dec("monthly_rent"),
		RentGrowthRate:         rentGrowth,
		RentersInsuranceAnnual: p.dec("renters_insurance_annual"),

		Horizon:                     horizon,
		InvestmentReturn:            p.dec("investment_return"),
		Inflation:                   p.dec("inflation"),
		InvestmentTaxDrag:           p.dec("investment_tax_drag"),
		Married:                     married,
		CapitalGainsTaxRate:         p.dec("capital_gains_tax_rate"),
		CapitalGainsExclusionSingle: exclusionSingle,
		CapitalGainsExclusion:       exclusion,
	}
	if p.err != nil {
		return domain.Assumptions{}, p.err
	}
	if err := a.Validate(); err != nil {
		return domain.Assumptions{}, err
	}
	return a, nil
}

// tiltedRate computes scenario value + (region baseline - US baseline) for
// one of the two tilted growth rates. An explicit override wins verbatim
// and no tilt is applied.
func (r *Resolver) tiltedRate(key string, scen, reg, us Params, overrides map[string]any) (decimal.Decimal, error) {
	if v, ok := overrides[key]; ok {
		return toDecimal(key, v)
	}
	base, err := requireDecimal(scen, key)
	if err != nil {
		return decimal.Zero, err
	}
	baselineKey := key + "_baseline"
	regBase, err := requireDecimal(reg, baselineKey)
	if err != nil {
		return decimal.Zero, err
	}
	usBase, err := requireDecimal(us, baselineKey)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Add(regBase.Sub(usBase)), nil
}

// paramReader reads typed values out of a merged parameter map, remembering
// the first failure so callers can build a whole struct before checking.
type paramReader struct {
	params Params
	err    error
}

func (p *paramReader) dec(key string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	d, err := requireDecimal(p.params, key)
	if err != nil {
		p.err = err
	}
	return d
}

func (p *paramReader) integer(key string) int {
	d := p.dec(key)
	return int(d.IntPart())
}

func (p *paramReader) boolOr(key string, def bool) bool {
	if p.err != nil {
		return def
	}
	v, ok := p.params[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		p.err = fmt.Errorf("parameter %q must be a boolean, got %T", key, v)
		return def
	}
	return b
}

func (p *paramReader) stringOr(key string, def string) string {
	if p.err != nil {
		return def
	}
	v, ok := p.params[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		p.err = fmt.Errorf("parameter %q must be a string, got %T", key, v)
		return def
	}
	return s
}

func requireDecimal(params Params, key string) (decimal.Decimal, error) {
	v, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("missing parameter %q", key)
	}
	return toDecimal(key, v)
}

func toDecimal(key string, v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case decimal.Decimal:
		return x, nil
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parameter %q is not numeric: %w", key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("parameter %q must be numeric, got %T", key, v)
	}
}
