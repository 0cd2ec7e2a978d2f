// Package main provides the CLI entrypoint for the recreational-water QMRA.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/aquarisk/campy-qmra/config"
	"github.com/aquarisk/campy-qmra/density"
	"github.com/aquarisk/campy-qmra/indicator"
	"github.com/aquarisk/campy-qmra/model"
	"github.com/aquarisk/campy-qmra/simulate"
	"github.com/aquarisk/campy-qmra/store"
)

var (
	runConfigPath string
	runCohortSize int
	runTrialCount int
	runSeed       int64
	runWorkers    int
	runDBPath     string
	runDensity    bool
	runNoProgress bool

	runsDBPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:           "qmra",
		Short:         "Campylobacter risk assessment for recreational freshwater",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAssessmentCmd,
	}

	rootCmd.PersistentFlags().StringVar(&runConfigPath, "config", "", "TOML configuration file")
	rootCmd.Flags().IntVar(&runCohortSize, "cohort-size", defaults.CohortSize, "people per simulated water body")
	rootCmd.Flags().IntVar(&runTrialCount, "trials", defaults.TrialCount, "number of Monte Carlo trials")
	rootCmd.Flags().Int64Var(&runSeed, "seed", int64(defaults.Seed), "master random seed")
	rootCmd.Flags().IntVar(&runWorkers, "workers", 0, "trial workers (0 = all cores)")
	rootCmd.Flags().StringVar(&runDBPath, "db", "", "SQLite file to persist the run")
	rootCmd.Flags().BoolVar(&runDensity, "density", false, "also print smoothed quantiles")
	rootCmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "disable the progress bar")

	rootCmd.AddCommand(newRiskCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRunsCmd())

	return rootCmd
}

func loadRunConfig(cmd *cobra.Command) (model.AssessmentConfig, error) {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return cfg, err
	}
	// flags beat the file, the file beats the defaults
	if cmd.Flags().Changed("cohort-size") {
		cfg.CohortSize = runCohortSize
	}
	if cmd.Flags().Changed("trials") {
		cfg.TrialCount = runTrialCount
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = uint64(runSeed)
	}
	return cfg, nil
}

func runAssessmentCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	opts := simulate.RunOptions{Workers: runWorkers}
	var bar *pb.ProgressBar
	if !runNoProgress {
		bar = pb.New(cfg.TrialCount)
		bar.Start()
		opts.OnTrialDone = func() { bar.Increment() }
	}

	res, err := simulate.RunAssessment(context.Background(), cfg, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("trials: %d, cohort size: %d, seed: %d\n", cfg.TrialCount, cfg.CohortSize, cfg.Seed)
	fmt.Printf("infected per trial: mean %.3f, stddev %.3f\n\n", res.Summary.Mean, res.Summary.StdDev)
	fmt.Println("quantile  infected")
	for _, q := range res.Summary.Quantiles {
		fmt.Printf("%8.3f  %8.3f\n", q.Quantile, q.Value)
	}

	if runDensity {
		est, err := density.NewEstimator(res.Outcomes, float64(cfg.CohortSize))
		if err != nil {
			return err
		}
		fmt.Println("\nsmoothed quantile  infected")
		for _, p := range simulate.DefaultQuantiles {
			q, err := est.Quantile(p)
			if err != nil {
				return err
			}
			fmt.Printf("%17.3f  %8.3f\n", q.Quantile, q.Value)
		}
	}

	if runDBPath != "" {
		st, err := store.Open(runDBPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()
		id, err := st.SaveRun(context.Background(), cfg, res)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("\nsaved run %d to %s\n", id, runDBPath)
	}

	return nil
}

func newRiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "risk <ecoli-count>",
		Short: "Map an observed E. coli count (per 100 ml) to infection risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			count, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[0], err)
			}
			table, err := indicator.NewTable(config.DefaultIndicatorRows())
			if err != nil {
				return err
			}
			fmt.Printf("E. coli %g per 100 ml -> infection risk %.2f%%\n",
				count, table.RiskAtCount(count))
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(runConfigPath)
			if err != nil {
				return err
			}
			fmt.Printf("cohort size:    %d\n", cfg.CohortSize)
			fmt.Printf("trials:         %d\n", cfg.TrialCount)
			fmt.Printf("seed:           %d\n", cfg.Seed)
			fmt.Printf("duration (h):   %v\n", cfg.Duration)
			fmt.Printf("rate (ml/h):    %v\n", cfg.IngestionRate)
			fmt.Printf("bin breaks:     %v\n", cfg.BinBreaks)
			fmt.Printf("geometric p:    %v\n", cfg.GeometricP)
			fmt.Printf("alpha:          %v\n", cfg.DoseResponse.Alpha)
			fmt.Printf("N50:            %v\n", cfg.DoseResponse.N50)
			return nil
		},
	}
}

func newRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			if runsDBPath == "" {
				return fmt.Errorf("--db is required")
			}
			st, err := store.Open(runsDBPath)
			if err != nil {
				return err
			}
			defer st.Close()
			infos, err := st.ListRuns(context.Background())
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Printf("%4d  %s  cohort %d  trials %d  seed %d  mean %.3f\n",
					info.ID, info.CreatedAt.Format("2006-01-02 15:04:05"),
					info.CohortSize, info.TrialCount, info.Seed, info.Mean)
			}
			return nil
		},
	}
	runsCmd.Flags().StringVar(&runsDBPath, "db", "", "SQLite file to read")
	return runsCmd
}
