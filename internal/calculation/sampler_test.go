package calculation

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	fin "github.com/rvbgo/rentvsbuy/pkg/decimal"
)

func TestNormalDistClipsToBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dist := NormalDist{
		Mean: decimal.Zero,
		SD:   decimal.NewFromInt(100),
		Lo:   fin.Ptr(decimal.NewFromInt(-1)),
		Hi:   fin.Ptr(decimal.NewFromInt(1)),
	}

	for i := 0; i < 500; i++ {
		v := dist.Sample(rng)
		if v.LessThan(decimal.NewFromInt(-1)) || v.GreaterThan(decimal.NewFromInt(1)) {
			t.Fatalf("draw %d escaped the clip bounds: %s", i, v)
		}
	}
}

func TestNormalDistZeroSDReturnsMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mean := decimal.NewFromFloat(0.042)
	dist := NormalDist{Mean: mean, SD: decimal.Zero}

	for i := 0; i < 10; i++ {
		if v := dist.Sample(rng); !v.Equal(mean) {
			t.Fatalf("zero-SD draw %d: expected %s, got %s", i, mean, v)
		}
	}
}

func TestNormalDistRoughlyCentered(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	dist := NormalDist{Mean: decimal.Zero, SD: decimal.NewFromInt(1)}

	sum := decimal.Zero
	n := 2000
	for i := 0; i < n; i++ {
		sum = sum.Add(dist.Sample(rng))
	}
	mean := sum.Div(decimal.NewFromInt(int64(n)))
	if mean.Abs().GreaterThan(decimal.NewFromFloat(0.1)) {
		t.Errorf("sample mean %s too far from zero for %d draws", mean, n)
	}
}

func TestParameterSamplerZeroScaleCollapses(t *testing.T) {
	base := baseAssumptions()
	rng := rand.New(rand.NewSource(5))

	sampled, err := NewParameterSampler(decimal.Zero).Sample(base, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name      string
		got, want decimal.Decimal
	}{
		{"investment_return", sampled.InvestmentReturn, base.InvestmentReturn},
		{"home_appreciation_rate", sampled.HomeAppreciationRate, base.HomeAppreciationRate},
		{"rent_growth_rate", sampled.RentGrowthRate, base.RentGrowthRate},
		{"inflation", sampled.Inflation, base.Inflation},
		{"maintenance_pct", sampled.MaintenancePct, base.MaintenancePct},
		{"homeowners_insurance_annual", sampled.HomeownersInsuranceAnnual, base.HomeownersInsuranceAnnual},
		{"hoa_monthly", sampled.HOAMonthly, base.HOAMonthly},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
}

func TestParameterSamplerLeavesStructuralFieldsAlone(t *testing.T) {
	base := baseAssumptions()
	rng := rand.New(rand.NewSource(5))

	sampled, err := NewParameterSampler(decimal.NewFromInt(1)).Sample(base, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sampled.HomePrice.Equal(base.HomePrice) {
		t.Errorf("home price should not be sampled, got %s", sampled.HomePrice)
	}
	if !sampled.MortgageRate.Equal(base.MortgageRate) {
		t.Errorf("mortgage rate should not be sampled, got %s", sampled.MortgageRate)
	}
	if sampled.Horizon != base.Horizon || sampled.MortgageTerm != base.MortgageTerm {
		t.Error("horizon and term should not be sampled")
	}
}

func TestParameterSamplerRespectsClips(t *testing.T) {
	base := baseAssumptions()
	scale := decimal.NewFromInt(50)

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		sampled, err := NewParameterSampler(scale).Sample(base, rng)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if sampled.RentGrowthRate.IsNegative() {
			t.Errorf("seed %d: rent growth clipped below zero: %s", seed, sampled.RentGrowthRate)
		}
		if sampled.HomeownersInsuranceAnnual.IsNegative() {
			t.Errorf("seed %d: insurance went negative: %s", seed, sampled.HomeownersInsuranceAnnual)
		}
		if sampled.HOAMonthly.IsNegative() {
			t.Errorf("seed %d: HOA went negative: %s", seed, sampled.HOAMonthly)
		}
		if sampled.MaintenancePct.GreaterThan(decimal.NewFromFloat(0.03)) {
			t.Errorf("seed %d: maintenance escaped its cap: %s", seed, sampled.MaintenancePct)
		}
	}
}

func TestParameterSamplerDeterministicPerSeed(t *testing.T) {
	base := baseAssumptions()
	sampler := NewParameterSampler(decimal.NewFromInt(1))

	a, err := sampler.Sample(base, rand.New(rand.NewSource(123)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := sampler.Sample(base, rand.New(rand.NewSource(123)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.InvestmentReturn.Equal(b.InvestmentReturn) || !a.HOAMonthly.Equal(b.HOAMonthly) {
		t.Error("same seed should reproduce the same draw sequence")
	}
}

func TestPathSamplerZeroScaleCollapses(t *testing.T) {
	a := baseAssumptions()
	a.Horizon = 10
	rng := rand.New(rand.NewSource(11))

	paths, err := NewPathSampler(decimal.Zero).Sample(a, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < a.Horizon; i++ {
		if !paths.InvestmentReturn[i].Equal(a.InvestmentReturn) {
			t.Errorf("year %d: investment return %s should collapse to %s",
				i+1, paths.InvestmentReturn[i], a.InvestmentReturn)
		}
		if !paths.Inflation[i].Equal(a.Inflation) {
			t.Errorf("year %d: inflation %s should collapse to %s",
				i+1, paths.Inflation[i], a.Inflation)
		}
	}
}

func TestPathSamplerLengthsAndClips(t *testing.T) {
	a := baseAssumptions()
	a.Horizon = 25
	rng := rand.New(rand.NewSource(3))

	paths, err := NewPathSampler(decimal.NewFromInt(2)).Sample(a, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paths.InvestmentReturn) != 25 || len(paths.HomeAppreciation) != 25 ||
		len(paths.RentGrowth) != 25 || len(paths.Inflation) != 25 {
		t.Fatal("every series must cover the horizon")
	}
	for i := 0; i < 25; i++ {
		if paths.InvestmentReturn[i].Abs().GreaterThan(decimal.NewFromFloat(0.40)) {
			t.Errorf("year %d: investment return %s outside clip", i+1, paths.InvestmentReturn[i])
		}
		if paths.RentGrowth[i].IsNegative() || paths.RentGrowth[i].GreaterThan(decimal.NewFromFloat(0.15)) {
			t.Errorf("year %d: rent growth %s outside clip", i+1, paths.RentGrowth[i])
		}
		if paths.Inflation[i].IsNegative() || paths.Inflation[i].GreaterThan(decimal.NewFromFloat(0.10)) {
			t.Errorf("year %d: inflation %s outside clip", i+1, paths.Inflation[i])
		}
	}
}
