// gotutor trains tabular reinforcement learning agents on grid worlds,
// optionally guided by a teacher that probabilistically overrides their
// actions, and compares guided runs against unadvised baselines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Flags shared by every subcommand
var (
	episodes  int
	stepLimit int
	seed      uint64
	out       string
)

func main() {
	root := &cobra.Command{
		Use:           "gotutor",
		Short:         "Train tabular agents on grid worlds with teacher advice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntVar(&episodes, "episodes", 500,
		"Number of training episodes")
	root.PersistentFlags().IntVar(&stepLimit, "step-limit", 1000,
		"Steps before an episode is cut off and counted failed")
	root.PersistentFlags().Uint64Var(&seed, "seed", 42,
		"Seed of the run's random source")
	root.PersistentFlags().StringVar(&out, "out", "results",
		"Directory to write data, tables, and charts to")

	root.AddCommand(TrainCommand())
	root.AddCommand(CompareCommand())
	root.AddCommand(ShowCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
