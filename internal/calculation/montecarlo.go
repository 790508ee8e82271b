package calculation

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// Profile names a preset pair of Monte Carlo scale factors.
type Profile string

const (
	ProfileBaseline     Profile = "baseline"
	ProfileConservative Profile = "conservative"
	ProfileVolatile     Profile = "volatile"
	ProfileStress       Profile = "stress"
)

// ScaleFactors are the two uncertainty multipliers: Param scales the
// per-trial perturbation of long-run means, Path scales the year-to-year
// volatility around them.
type ScaleFactors struct {
	Param decimal.Decimal
	Path  decimal.Decimal
}

// ScaleFactors resolves a profile name. Unknown profiles fail here, before
// any simulation work starts.
func (p Profile) ScaleFactors() (ScaleFactors, error) {
	switch p {
	case ProfileBaseline:
		return ScaleFactors{Param: decimal.NewFromFloat(1.0), Path: decimal.NewFromFloat(1.0)}, nil
	case ProfileConservative:
		return ScaleFactors{Param: decimal.NewFromFloat(0.75), Path: decimal.NewFromFloat(0.75)}, nil
	case ProfileVolatile:
		return ScaleFactors{Param: decimal.NewFromFloat(1.25), Path: decimal.NewFromFloat(1.25)}, nil
	case ProfileStress:
		return ScaleFactors{Param: decimal.NewFromFloat(1.5), Path: decimal.NewFromFloat(1.75)}, nil
	default:
		return ScaleFactors{}, fmt.Errorf("unknown monte carlo profile %q", p)
	}
}

// MonteCarloConfig holds everything one ensemble run needs.
type MonteCarloConfig struct {
	Base         domain.Assumptions
	NumTrials    int
	Seed         int64
	Scales       ScaleFactors
	RetainYearly bool // expensive: memory proportional to trials x horizon
}

// MonteCarloEngine repeats {sample parameters -> sample paths -> project ->
// summarize} across independent trials and aggregates the outcomes.
type MonteCarloEngine struct {
	Logger Logger
}

// NewMonteCarloEngine creates an engine with a no-op logger.
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{Logger: NopLogger{}}
}

// maxConcurrentTrials bounds the worker pool for ensemble runs.
const maxConcurrentTrials = 10

// trialSeed derives an independent substream seed for one trial. Trials
// share no generator state, so results are bit-for-bit reproducible no
// matter how the pool schedules them.
func trialSeed(seed int64, trial int) int64 {
	return int64(uint64(seed) ^ (uint64(trial)+1)*0x9E3779B97F4A7C15)
}

// Run executes the full ensemble. Trials land in trial order; a single
// failing trial aborts the whole batch so a partial ensemble never biases
// downstream statistics.
func (mc *MonteCarloEngine) Run(cfg MonteCarloConfig) (*domain.Ensemble, error) {
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("monte carlo requires a positive trial count, got %d", cfg.NumTrials)
	}
	if cfg.Seed == 0 {
		cfg.Seed = seedFunc()
	}

	mc.Logger.Infof("monte carlo: %d trials, seed %d, scales param=%s path=%s",
		cfg.NumTrials, cfg.Seed, cfg.Scales.Param, cfg.Scales.Path)

	paramSampler := NewParameterSampler(cfg.Scales.Param)
	pathSampler := NewPathSampler(cfg.Scales.Path)
	engine := &Engine{Logger: NopLogger{}}

	trials := make([]domain.TrialResult, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)
	var yearlyTables []domain.YearlyTable
	if cfg.RetainYearly {
		yearlyTables = make([]domain.YearlyTable, cfg.NumTrials)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentTrials)
	for i := 0; i < cfg.NumTrials; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rng := rand.New(rand.NewSource(trialSeed(cfg.Seed, trial)))

			sampled, err := paramSampler.Sample(cfg.Base, rng)
			if err != nil {
				errs[trial] = fmt.Errorf("trial %d: %w", trial, err)
				return
			}
			paths, err := pathSampler.Sample(sampled, rng)
			if err != nil {
				errs[trial] = fmt.Errorf("trial %d: %w", trial, err)
				return
			}
			provider, err := NewPathRateProvider(paths, sampled.Horizon)
			if err != nil {
				errs[trial] = fmt.Errorf("trial %d: %w", trial, err)
				return
			}
			result, err := engine.RunWithRates(sampled, provider)
			if err != nil {
				errs[trial] = fmt.Errorf("trial %d: %w", trial, err)
				return
			}

			trials[trial] = domain.TrialResult{
				OwnerNetWorth:  result.Summary.OwnerNetWorth,
				RenterNetWorth: result.Summary.RenterNetWorth,
				NetWorthDiff:   result.Summary.NetWorthDiff,
			}
			if cfg.RetainYearly {
				yearlyTables[trial] = result.Yearly
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &domain.Ensemble{
		Trials:       trials,
		Stats:        aggregateTrials(trials),
		YearlyTables: yearlyTables,
		NumTrials:    cfg.NumTrials,
		Seed:         cfg.Seed,
	}, nil
}

// aggregateTrials computes the win probability and the percentile spread of
// the net worth difference.
func aggregateTrials(trials []domain.TrialResult) domain.EnsembleStats {
	diffs := make([]decimal.Decimal, len(trials))
	wins := 0
	for i, tr := range trials {
		diffs[i] = tr.NetWorthDiff
		if tr.NetWorthDiff.GreaterThan(decimal.Zero) {
			wins++
		}
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].LessThan(diffs[j]) })

	n := len(diffs)
	return domain.EnsembleStats{
		ProbOwnerWins: decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(int64(n))),
		MedianDiff:    diffs[n/2],
		DiffPercentiles: domain.PercentileRanges{
			P10: diffs[n/10],
			P25: diffs[n/4],
			P50: diffs[n/2],
			P75: diffs[3*n/4],
			P90: diffs[9*n/10],
		},
	}
}
