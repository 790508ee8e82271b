package calculation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
	fin "github.com/rvbgo/rentvsbuy/pkg/decimal"
)

// NormalDist is a normal distribution with optional clipping bounds.
type NormalDist struct {
	Mean decimal.Decimal
	SD   decimal.Decimal
	Lo   *decimal.Decimal
	Hi   *decimal.Decimal
}

// Sample draws one clipped value from the distribution.
func (d NormalDist) Sample(rng *rand.Rand) decimal.Decimal {
	z := boxMuller(rng)
	x := d.Mean.Add(decimal.NewFromFloat(z).Mul(d.SD))
	return fin.Clamp(x, d.Lo, d.Hi)
}

// SamplePath draws n independent clipped values.
func (d NormalDist) SamplePath(rng *rand.Rand, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = d.Sample(rng)
	}
	return out
}

// boxMuller converts two uniform draws into one standard normal draw.
func boxMuller(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// sampledParam describes one assumption field perturbed per Monte Carlo
// trial: its base standard deviation, its valid range, and accessors on the
// assumption value. The slice below is ordered; the order is part of the
// reproducibility contract because every trial consumes its random
// substream in this sequence.
type sampledParam struct {
	name      string
	sd        decimal.Decimal
	lo, hi    *decimal.Decimal
	get       func(domain.Assumptions) decimal.Decimal
	set       func(*domain.Assumptions, decimal.Decimal)
	floorZero bool
}

var sampledParams = []sampledParam{
	{
		name: "investment_return",
		sd:   decimal.NewFromFloat(0.02),
		lo:   fin.Ptr(decimal.NewFromFloat(-0.05)),
		hi:   fin.Ptr(decimal.NewFromFloat(0.20)),
		get:  func(a domain.Assumptions) decimal.Decimal { return a.InvestmentReturn },
		set:  func(a *domain.Assumptions, v decimal.Decimal) { a.InvestmentReturn = v },
	},
	{
		name: "home_appreciation_rate",
		sd:   decimal.NewFromFloat(0.02),
		lo:   fin.Ptr(decimal.NewFromFloat(-0.10)),
		hi:   fin.Ptr(decimal.NewFromFloat(0.20)),
		get:  func(a domain.Assumptions) decimal.Decimal { return a.HomeAppreciationRate },
		set:  func(a *domain.Assumptions, v decimal.Decimal) { a.HomeAppreciationRate = v },
	},
	{
		name: "rent_growth_rate",
		sd:   decimal.NewFromFloat(0.015),
		lo:   fin.Ptr(decimal.Zero),
		hi:   fin.Ptr(decimal.NewFromFloat(0.15)),
		get:  func(a domain.Assumptions) decimal.Decimal { return a.RentGrowthRate },
		set:  func(a *domain.Assumptions, v decimal.Decimal) { a.RentGrowthRate = v },
	},
	{
		name: "inflation",
		sd:   decimal.NewFromFloat(0.01),
		lo:   fin.Ptr(decimal.Zero),
		hi:   fin.Ptr(decimal.NewFromFloat(0.10)),
		get:  func(a domain.Assumptions) decimal.Decimal { return a.Inflation },
		set:  func(a *domain.Assumptions, v decimal.Decimal) { a.Inflation = v },
	},
	{
		name: "maintenance_pct",
		sd:   decimal.NewFromFloat(0.003),
		lo:   fin.Ptr(decimal.NewFromFloat(0.005)),
		hi:   fin.Ptr(decimal.NewFromFloat(0.03)),
		get:  func(a domain.Assumptions) decimal.Decimal { return a.MaintenancePct },
		set:  func(a *domain.Assumptions, v decimal.Decimal) { a.MaintenancePct = v },
	},
	{
		name:      "homeowners_insurance_annual",
		sd:        decimal.NewFromFloat(300.0),
		lo:        fin.Ptr(decimal.Zero),
		get:       func(a domain.Assumptions) decimal.Decimal { return a.HomeownersInsuranceAnnual },
		set:       func(a *domain.Assumptions, v decimal.Decimal) { a.HomeownersInsuranceAnnual = v },
		floorZero: true,
	},
	{
		name:      "hoa_monthly",
		sd:        decimal.NewFromFloat(50.0),
		lo:        fin.Ptr(decimal.Zero),
		get:       func(a domain.Assumptions) decimal.Decimal { return a.HOAMonthly },
		set:       func(a *domain.Assumptions, v decimal.Decimal) { a.HOAMonthly = v },
		floorZero: true,
	},
}

// ParameterSampler draws one perturbed long-run assumption set per trial.
// The perturbation is scalar: it shifts the trial's means, not the
// year-to-year path.
type ParameterSampler struct {
	Scale decimal.Decimal
}

// NewParameterSampler creates a sampler with the given uncertainty scale.
// A scale of zero collapses every draw to the base value.
func NewParameterSampler(scale decimal.Decimal) ParameterSampler {
	return ParameterSampler{Scale: scale}
}

// Sample returns a perturbed copy of base. The copy is re-validated so an
// invalid draw never propagates into a projection.
func (s ParameterSampler) Sample(base domain.Assumptions, rng *rand.Rand) (domain.Assumptions, error) {
	sampled := base
	for _, p := range sampledParams {
		dist := NormalDist{Mean: p.get(sampled), SD: p.sd.Mul(s.Scale), Lo: p.lo, Hi: p.hi}
		v := dist.Sample(rng)
		if p.floorZero && v.IsNegative() {
			v = decimal.Zero
		}
		p.set(&sampled, v)
	}
	if err := sampled.Validate(); err != nil {
		return domain.Assumptions{}, err
	}
	return sampled, nil
}

// Year-to-year path volatility per series, and the bounds each draw is
// clipped to.
var (
	pathSDInvestmentReturn = decimal.NewFromFloat(0.15)
	pathSDHomeAppreciation = decimal.NewFromFloat(0.08)
	pathSDRentGrowth       = decimal.NewFromFloat(0.05)
	pathSDInflation        = decimal.NewFromFloat(0.015)

	pathClipInvestmentLo   = fin.Ptr(decimal.NewFromFloat(-0.40))
	pathClipInvestmentHi   = fin.Ptr(decimal.NewFromFloat(0.40))
	pathClipAppreciationLo = fin.Ptr(decimal.NewFromFloat(-0.30))
	pathClipAppreciationHi = fin.Ptr(decimal.NewFromFloat(0.30))
	pathClipRentGrowthLo   = fin.Ptr(decimal.Zero)
	pathClipRentGrowthHi   = fin.Ptr(decimal.NewFromFloat(0.15))
	pathClipInflationLo    = fin.Ptr(decimal.Zero)
	pathClipInflationHi    = fin.Ptr(decimal.NewFromFloat(0.10))
)

// PathSampler draws one year-by-year rate path per trial, centered on the
// trial's sampled means.
type PathSampler struct {
	Scale decimal.Decimal
}

// NewPathSampler creates a sampler with the given volatility scale.
func NewPathSampler(scale decimal.Decimal) PathSampler {
	return PathSampler{Scale: scale}
}

// Sample draws the four rate series for the trial and validates their
// lengths against the horizon.
func (s PathSampler) Sample(a domain.Assumptions, rng *rand.Rand) (domain.RatePaths, error) {
	draw := func(mean, sd decimal.Decimal, lo, hi *decimal.Decimal) []decimal.Decimal {
		dist := NormalDist{Mean: mean, SD: sd.Mul(s.Scale), Lo: lo, Hi: hi}
		return dist.SamplePath(rng, a.Horizon)
	}

	paths := domain.RatePaths{
		InvestmentReturn: draw(a.InvestmentReturn, pathSDInvestmentReturn, pathClipInvestmentLo, pathClipInvestmentHi),
		HomeAppreciation: draw(a.HomeAppreciationRate, pathSDHomeAppreciation, pathClipAppreciationLo, pathClipAppreciationHi),
		RentGrowth:       draw(a.RentGrowthRate, pathSDRentGrowth, pathClipRentGrowthLo, pathClipRentGrowthHi),
		Inflation:        draw(a.Inflation, pathSDInflation, pathClipInflationLo, pathClipInflationHi),
	}
	if err := paths.Validate(a.Horizon); err != nil {
		return domain.RatePaths{}, err
	}
	return paths, nil
}
