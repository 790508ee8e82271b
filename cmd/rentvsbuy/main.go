package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rvbgo/rentvsbuy/internal/calculation"
	"github.com/rvbgo/rentvsbuy/internal/config"
	"github.com/rvbgo/rentvsbuy/internal/domain"
	"github.com/rvbgo/rentvsbuy/internal/output"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentvsbuy",
		Short: "Rent vs buy projection engine",
		Long: `rentvsbuy projects the comparative financial outcome of buying versus
renting a home over a multi-year horizon, under a single deterministic
scenario or a Monte Carlo ensemble of plausible futures.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "config", "Directory with globals.yaml, scenarios.yaml and regions.yaml")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newMonteCarloCmd(),
		newScenariosCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single deterministic projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenario, region, horizon, overrides, err := commonInputs(cmd)
			if err != nil {
				return err
			}

			assump, err := resolveAssumptions(cmd, scenario, region, overrides, horizon)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(loggerFromFlags(cmd))
			result, err := engine.RunDeterministic(assump)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			formatter, err := output.GetRunFormatter(format)
			if err != nil {
				return err
			}
			data, err := formatter.FormatRun(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addProjectionFlags(cmd)
	cmd.Flags().String("format", "console", "Output format: console, csv or json")
	return cmd
}

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run a Monte Carlo ensemble of projections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenario, region, horizon, overrides, err := commonInputs(cmd)
			if err != nil {
				return err
			}

			assump, err := resolveAssumptions(cmd, scenario, region, overrides, horizon)
			if err != nil {
				return err
			}

			profileName, _ := cmd.Flags().GetString("profile")
			scales, err := calculation.Profile(profileName).ScaleFactors()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("param-scale") {
				v, _ := cmd.Flags().GetFloat64("param-scale")
				scales.Param = decimal.NewFromFloat(v)
			}
			if cmd.Flags().Changed("path-scale") {
				v, _ := cmd.Flags().GetFloat64("path-scale")
				scales.Path = decimal.NewFromFloat(v)
			}

			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetInt64("seed")
			retain, _ := cmd.Flags().GetBool("retain-yearly")

			mc := calculation.NewMonteCarloEngine()
			mc.Logger = loggerFromFlags(cmd)
			ensemble, err := mc.Run(calculation.MonteCarloConfig{
				Base:         assump,
				NumTrials:    trials,
				Seed:         seed,
				Scales:       scales,
				RetainYearly: retain,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			formatter, err := output.GetEnsembleFormatter(format)
			if err != nil {
				return err
			}
			data, err := formatter.FormatEnsemble(ensemble)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addProjectionFlags(cmd)
	cmd.Flags().Int("trials", 1000, "Number of Monte Carlo trials")
	cmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().String("profile", string(calculation.ProfileBaseline), "Uncertainty profile: baseline, conservative, volatile or stress")
	cmd.Flags().Float64("param-scale", 1.0, "Override the profile's parameter uncertainty scale")
	cmd.Flags().Float64("path-scale", 1.0, "Override the profile's path volatility scale")
	cmd.Flags().Bool("retain-yearly", false, "Keep every trial's yearly table (memory heavy)")
	cmd.Flags().String("format", "console", "Output format: console, csv or json")
	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List available scenarios and regions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadStore(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Scenarios:")
			for _, name := range store.ScenarioNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Regions:")
			for _, name := range store.RegionNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}

func addProjectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario", "baseline", "Scenario name")
	cmd.Flags().String("region", "US", "Region name")
	cmd.Flags().Int("horizon", 30, "Projection horizon in years")
	cmd.Flags().StringArray("set", nil, "Override a parameter, e.g. --set mortgage_rate=0.055")
	cmd.Flags().String("rent-basis", "market", "Rent basis: market, match_mortgage or match_owner_cost")
	cmd.Flags().Bool("married", false, "Married filing jointly (doubles the capital gains exclusion)")
	cmd.Flags().Bool("sell-at-end", true, "Sell the home at the end of the horizon")
}

func commonInputs(cmd *cobra.Command) (scenario, region string, horizon int, overrides map[string]any, err error) {
	scenario, _ = cmd.Flags().GetString("scenario")
	region, _ = cmd.Flags().GetString("region")
	horizon, _ = cmd.Flags().GetInt("horizon")

	overrides = map[string]any{}
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return "", "", 0, nil, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		overrides[key] = parseOverrideValue(value)
	}

	// Convenience flags are just overrides on the merged parameter map.
	if cmd.Flags().Changed("rent-basis") {
		v, _ := cmd.Flags().GetString("rent-basis")
		overrides["rent_basis"] = v
	}
	if cmd.Flags().Changed("married") {
		v, _ := cmd.Flags().GetBool("married")
		overrides["married"] = v
	}
	if cmd.Flags().Changed("sell-at-end") {
		v, _ := cmd.Flags().GetBool("sell-at-end")
		overrides["sell_at_end"] = v
	}
	return scenario, region, horizon, overrides, nil
}

func parseOverrideValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func loadStore(cmd *cobra.Command) (*config.Store, error) {
	dir, _ := cmd.Flags().GetString("config")
	return config.LoadDir(dir)
}

func resolveAssumptions(cmd *cobra.Command, scenario, region string, overrides map[string]any, horizon int) (domain.Assumptions, error) {
	store, err := loadStore(cmd)
	if err != nil {
		return domain.Assumptions{}, err
	}
	return config.NewResolver(store).Resolve(scenario, region, overrides, horizon)
}

func loggerFromFlags(cmd *cobra.Command) calculation.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return calculation.StdLogger{Debug: true}
	}
	return calculation.NopLogger{}
}
