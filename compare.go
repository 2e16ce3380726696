package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gotutor/experiment"
	"github.com/samuelfneumann/gotutor/metrics"
	"github.com/samuelfneumann/gotutor/plot"
)

// CompareCommand returns the command sweeping teacher settings
func CompareCommand() *cobra.Command {
	flags := &runFlags{}
	var availabilities, accuracies []float64
	var runs, workers int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Sweep teacher settings against an unadvised baseline",
		Long: "Train agents under every combination of teacher " +
			"availability and accuracy, plus an unadvised baseline, " +
			"averaging each setting over independent runs. Results are " +
			"written as a CSV table and comparison charts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.config(cmd)
			if err != nil {
				return err
			}
			return compare(config, availabilities, accuracies, runs,
				workers, quiet)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&availabilities, "availabilities",
		[]float64{0.2, 0.5, 1},
		"Teacher availabilities to sweep")
	cmd.Flags().Float64SliceVar(&accuracies, "accuracies",
		[]float64{0.5, 0.8, 1},
		"Teacher accuracies to sweep")
	cmd.Flags().IntVar(&runs, "runs", 10,
		"Independent runs per setting, seeded seed, seed+1, ...")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"Concurrent runs (non-positive uses one worker per CPU)")
	cmd.Flags().BoolVar(&quiet, "quiet", false,
		"Suppress the progress bar")

	return cmd
}

// compare sweeps teacher settings from a shared base configuration and
// writes the aggregated results
func compare(base experiment.Config, availabilities, accuracies []float64,
	runs, workers int, quiet bool) error {
	if runs < 1 {
		return fmt.Errorf("compare: need at least one run per setting, "+
			"got %d", runs)
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("could not create %v: %v", out, err)
	}

	seeds := make([]uint64, runs)
	for i := range seeds {
		seeds[i] = base.Seed + uint64(i)
	}

	sweep := experiment.TeacherSweep(base, availabilities, accuracies, seeds)
	fmt.Printf("Comparing %d settings over %d runs each (%d runs total)\n",
		len(sweep)/runs, runs, len(sweep))

	comparison := experiment.NewComparison(sweep, workers)
	comparison.Quiet = quiet
	results, err := comparison.Run()
	if err != nil {
		return err
	}

	grouped := experiment.Aggregate(results)
	names := make([]string, len(grouped))
	summaries := make([]metrics.Summary, len(grouped))
	for i, group := range grouped {
		names[i] = group.Name
		summaries[i] = group.Summary
	}

	fmt.Println()
	if err := metrics.WriteTable(os.Stdout, names, summaries); err != nil {
		return err
	}

	table, err := os.Create(filepath.Join(out, "comparison.csv"))
	if err != nil {
		return fmt.Errorf("could not create comparison table: %v", err)
	}
	defer table.Close()
	if err := metrics.WriteTable(table, names, summaries); err != nil {
		return err
	}

	// One chart curve per availability, over the accuracy axis. Settings
	// without an intervening teacher fold into the baseline instead.
	var baseline *metrics.Summary
	bySetting := make(map[[2]float64]metrics.Summary)
	for _, group := range grouped {
		if group.Baseline {
			summary := group.Summary
			baseline = &summary
			continue
		}
		key := [2]float64{group.Availability, group.Accuracy}
		bySetting[key] = group.Summary
	}

	curves := make([]plot.SummaryCurve, 0, len(availabilities))
	for _, availability := range availabilities {
		if availability <= 0 {
			continue
		}
		curve := plot.SummaryCurve{
			Name: fmt.Sprintf("avail %v", availability),
		}
		for _, accuracy := range accuracies {
			key := [2]float64{availability, accuracy}
			curve.Summaries = append(curve.Summaries, bySetting[key])
		}
		curves = append(curves, curve)
	}

	if err := plot.TeacherComparison(filepath.Join(out, "comparison.html"),
		accuracies, curves, baseline); err != nil {
		return err
	}

	fmt.Printf("\nWrote comparison table and charts to %v\n", out)
	return nil
}
