package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/topk-chui/mining/bench"
)

var (
	// CLI flags for benchmark campaigns; they override the config file
	benchConfigPath  string
	benchDatasets    []string
	benchKs          []int
	benchAlgorithms  []string
	benchTimeout     string
	benchMemoryLimit float64
	benchOutput      string
	benchParallelism int
)

// benchCmd runs every engine over every dataset and K, appending one CSV row per run
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the engines over datasets and K values",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := bench.DefaultConfig()
		if benchConfigPath != "" {
			loaded, err := bench.LoadConfig(benchConfigPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = loaded
		}
		applyBenchOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid bench config: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if _, err := bench.NewRunner(cfg).Run(ctx); err != nil {
			logrus.Fatalf("Benchmark failed: %v", err)
		}
		logrus.Infof("Results appended to %s", cfg.Output)
	},
}

// applyBenchOverrides copies explicitly set flags onto cfg. Flags left at
// their defaults never overwrite values from the config file.
func applyBenchOverrides(cmd *cobra.Command, cfg *bench.Config) {
	flags := cmd.Flags()
	if flags.Changed("datasets") {
		cfg.Datasets = benchDatasets
	}
	if flags.Changed("ks") {
		cfg.Ks = benchKs
	}
	if flags.Changed("algorithms") {
		cfg.Algorithms = benchAlgorithms
	}
	if flags.Changed("timeout") {
		cfg.Timeout = benchTimeout
	}
	if flags.Changed("memory-limit-mb") {
		cfg.MemoryLimitMB = benchMemoryLimit
	}
	if flags.Changed("output") {
		cfg.Output = benchOutput
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = benchParallelism
	}
}

func init() {
	benchCmd.Flags().StringVar(&benchConfigPath, "config", "", "Path to a YAML bench config")
	benchCmd.Flags().StringSliceVar(&benchDatasets, "datasets", nil, "Comma-separated dataset paths")
	benchCmd.Flags().IntSliceVar(&benchKs, "ks", nil, "Comma-separated K values")
	benchCmd.Flags().StringSliceVar(&benchAlgorithms, "algorithms", nil, "Comma-separated engine names")
	benchCmd.Flags().StringVar(&benchTimeout, "timeout", "5m", "Wall-clock budget per run (0 disables)")
	benchCmd.Flags().Float64Var(&benchMemoryLimit, "memory-limit-mb", 0, "Heap ceiling per run in MB (0 disables)")
	benchCmd.Flags().StringVar(&benchOutput, "output", bench.DefaultOutput, "Results CSV to append to")
	benchCmd.Flags().IntVar(&benchParallelism, "parallelism", 1, "Number of runs executed concurrently")

	rootCmd.AddCommand(benchCmd)
}
