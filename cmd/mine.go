package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/topk-chui/mining"
	"github.com/inference-sim/topk-chui/mining/dataio"
	"github.com/inference-sim/topk-chui/mining/trace"
)

var (
	// CLI flags for a single mining run
	datasetPath string // Input database
	topK        int    // Number of itemsets to keep
	algorithm   string // Engine name
	outputPath  string // Optional CSV export of the itemsets
	traceLevel  string // Decision trace verbosity
)

// mineCmd mines one dataset with one engine and prints the top-K itemsets
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the top-K closed high-utility itemsets of a dataset",
	Run: func(cmd *cobra.Command, args []string) {
		if datasetPath == "" {
			logrus.Fatalf("Dataset not provided. Use --dataset.")
		}
		if !mining.IsValidMiner(algorithm) {
			logrus.Fatalf("Unknown algorithm %q; valid: %v", algorithm, mining.MinerNames())
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid: none, decisions", traceLevel)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, mt, err := runMine(ctx, datasetPath, topK, algorithm, trace.TraceLevel(traceLevel))
		if res != nil {
			printResult(os.Stdout, res, mt)
		}
		if err != nil {
			logrus.Fatalf("Mining failed: %v", err)
		}
		if outputPath != "" {
			if err := dataio.ExportItemsets(outputPath, res.Itemsets); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Itemsets written to %s", outputPath)
		}
	},
}

// runMine loads the dataset and runs the named engine over it.
// On interruption the partial result is returned with the error.
func runMine(ctx context.Context, path string, k int, name string, level trace.TraceLevel) (*mining.Result, *trace.MiningTrace, error) {
	db, err := dataio.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("Loaded %s. Trans: %d, Max ItemID: %d", path, db.Len(), db.MaxItemID)

	mt := trace.NewMiningTrace(level)
	res, err := mining.Run(ctx, mining.NewMiner(name), db, k, mining.RunOptions{Trace: mt})
	return res, mt, err
}

// printResult writes the itemsets, the stats and, when traced, the decision summary.
func printResult(w io.Writer, res *mining.Result, mt *trace.MiningTrace) {
	_, _ = fmt.Fprintln(w, "=== Top-K Closed Itemsets ===")
	for _, s := range res.Itemsets {
		_, _ = fmt.Fprintln(w, s)
	}
	_, _ = fmt.Fprintln(w, res.Stats)
	if mt == nil {
		return
	}
	summary := trace.Summarize(mt)
	_, _ = fmt.Fprintf(w, "Decisions: %d (admitted %d, below-threshold %d, not-closed %d, not-better %d), evictions %d, dominated %d\n",
		summary.TotalDecisions,
		summary.Outcomes[trace.OutcomeAdmitted],
		summary.Outcomes[trace.OutcomeBelowThreshold],
		summary.Outcomes[trace.OutcomeNotClosed],
		summary.Outcomes[trace.OutcomeNotBetter],
		summary.Evictions,
		summary.Dominated)
}

func init() {
	mineCmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the uncertain transaction database")
	mineCmd.Flags().IntVar(&topK, "k", 10, "Number of itemsets to keep")
	mineCmd.Flags().StringVar(&algorithm, "algorithm", "U-EFIM", "Engine (U-TKU, U-TKO, U-EFIM)")
	mineCmd.Flags().StringVar(&outputPath, "output", "", "Write the itemsets as CSV to this file")
	mineCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	rootCmd.AddCommand(mineCmd)
}
