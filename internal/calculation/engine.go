package calculation

import (
	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// Engine runs the deterministic projection pipeline over a resolved
// assumption set.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. A nil logger falls back to no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunDeterministic projects a single scenario under constant rates and
// returns the yearly table, summary and waterfall.
func (e *Engine) RunDeterministic(a domain.Assumptions) (*domain.RunResult, error) {
	return e.RunWithRates(a, NewConstantRateProvider(a))
}

// RunDeterministic is the package-level convenience over a default engine.
func RunDeterministic(a domain.Assumptions) (*domain.RunResult, error) {
	return NewEngine().RunDeterministic(a)
}

// RunMonteCarlo is the package-level convenience over a default Monte
// Carlo engine.
func RunMonteCarlo(cfg MonteCarloConfig) (*domain.Ensemble, error) {
	return NewMonteCarloEngine().Run(cfg)
}

// RunWithRates projects a single scenario under the supplied rate provider.
// Monte Carlo trials call this with a path-based provider.
func (e *Engine) RunWithRates(a domain.Assumptions, rates RateProvider) (*domain.RunResult, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	e.Logger.Debugf("projecting %d years: price=%s dp=%s rate=%s",
		a.Horizon, a.HomePrice, a.DownPaymentPct, a.MortgageRate)

	yearly := BuildYearlyTable(a, rates)
	summary, waterfall := BuildSummary(yearly, a)

	return &domain.RunResult{
		Yearly:    yearly,
		Summary:   summary,
		Waterfall: waterfall,
	}, nil
}
