package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sleephmm/adapters/fsstore"
	"sleephmm/adapters/postgres"
	"sleephmm/adapters/rng"
	"sleephmm/adapters/sampler"
	adapterstats "sleephmm/adapters/stats"
	"sleephmm/adapters/tabular"
	"sleephmm/app"
	"sleephmm/domain/core"
	"sleephmm/domain/run"
	"sleephmm/internal"
	"sleephmm/internal/config"
	"sleephmm/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sleephmm",
		Short: "Prepare and launch multilevel HMM estimation runs on sleep signal data",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newDeriveStatsCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var iterations int
	var burnIn int
	var variables []string
	var seed int64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one estimation chain and persist its result",
		Long: `Validate the run parameters, derive hyperpriors and randomized initial
values from the aggregate tables, fit the model, and write one result
artifact keyed by a fresh run ID.

Example: sleephmm run --iterations 2000 --burn-in 200 \
  --variables eeg_mean_beta,eog_median_theta,emg_mean_gamma`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := internal.NewDefaultLogger()

			var (
				signalSource   ports.SignalSource
				summarySource  ports.AggregateSource
				varianceSource ports.AggregateSource
				store          ports.ResultStore
			)
			if cfg.Output.DatabaseURL != "" {
				db, err := postgres.Connect(cfg.Output.DatabaseURL)
				if err != nil {
					return err
				}
				defer db.Close()
				signalSource = postgres.NewSignalSource(db)
				summarySource = postgres.NewAggregateSource(db, "summary_statistics")
				varianceSource = postgres.NewAggregateSource(db, "total_variance")
				store = postgres.NewResultStore(db)
			} else {
				signalSource = tabular.NewSignalSource(cfg.Data.SignalPath)
				summarySource = tabular.NewAggregateSource("summary_statistics", cfg.Data.SummaryPath)
				varianceSource = tabular.NewAggregateSource("total_variance", cfg.Data.VariancePath)
				store = fsstore.New(cfg.Output.Dir)
			}

			keys := make([]core.VariableKey, 0, len(variables))
			for _, v := range variables {
				keys = append(keys, core.VariableKey(v))
			}

			service := app.NewRunService(
				signalSource, summarySource, varianceSource,
				sampler.NewGibbs(), store, rng.NewProvider(), log,
			)
			result, err := service.Run(cmd.Context(), app.RunRequest{
				Config: run.Config{Iterations: iterations, BurnIn: burnIn, Variables: keys},
				Seed:   seed,
			})
			if err != nil {
				return err
			}
			fmt.Printf("run %s complete (seed %d)\n", result.RunID, result.Seed)
			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 2000, "MCMC iterations")
	cmd.Flags().IntVar(&burnIn, "burn-in", 200, "burn-in iterations to discard")
	cmd.Flags().StringSliceVar(&variables, "variables", nil, "three dependent variable names")
	cmd.Flags().Int64Var(&seed, "seed", 0, "run seed (0 draws a fresh one)")
	return cmd
}

func newDeriveStatsCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "derive-stats",
		Short: "Regenerate the aggregate tables from a scored signal table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Dir(cfg.Data.SummaryPath)
			}

			records, err := tabular.NewSignalSource(cfg.Data.SignalPath).Load(cmd.Context())
			if err != nil {
				return err
			}
			derived, err := adapterstats.Derive(cmd.Context(), records)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			summaryPath := filepath.Join(outDir, "summary_statistics.csv")
			variancePath := filepath.Join(outDir, "total_variance.csv")
			if err := tabular.WriteAggregateCSV(summaryPath, derived.Summary); err != nil {
				return err
			}
			if err := tabular.WriteAggregateCSV(variancePath, derived.TotalVariance); err != nil {
				return err
			}
			fmt.Printf("wrote %s and %s\n", summaryPath, variancePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults beside the configured summary table)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [run-id]",
		Short: "Print a summary of a persisted run result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			runID, err := core.ParseRunID(args[0])
			if err != nil {
				return err
			}

			result, err := fsstore.New(cfg.Output.Dir).Get(cmd.Context(), runID)
			if err != nil {
				return err
			}

			fmt.Printf("run:        %s\n", result.RunID)
			fmt.Printf("created:    %s\n", result.CreatedAt.Time().Format("2006-01-02 15:04:05"))
			fmt.Printf("seed:       %d\n", result.Seed)
			fmt.Printf("variables:  %v\n", result.Variables)
			fmt.Printf("iterations: %d (burn-in %d)\n", result.Iterations, result.BurnIn)
			fmt.Println("initial transition matrix:")
			for _, row := range result.Initial.Transition.Rows {
				fmt.Printf("  %v\n", row)
			}
			var fitted map[string]json.RawMessage
			if err := json.Unmarshal(result.Fitted, &fitted); err == nil {
				fmt.Printf("fitted model fields: %d\n", len(fitted))
			}
			return nil
		},
	}
	return cmd
}
