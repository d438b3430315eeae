package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inference-sim/topk-chui/mining"
)

// algorithmsCmd lists the registered engines
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the available mining engines",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range mining.MinerNames() {
			fmt.Fprintln(cmd.OutOrStdout(), mining.NewMiner(name).Name())
		}
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
