package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gotutor/experiment"
	"github.com/samuelfneumann/gotutor/experiment/tracker"
	"github.com/samuelfneumann/gotutor/metrics"
	"github.com/samuelfneumann/gotutor/plot"
	"github.com/samuelfneumann/gotutor/render"
)

// TrainCommand returns the command training a single agent
func TrainCommand() *cobra.Command {
	flags := &runFlags{}
	var availability, accuracy float64
	var evalEpisodes int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a single agent and report its learning metrics",
		Long: "Train a single agent, optionally guided by a teacher, " +
			"then save its learning data, action value table, and charts " +
			"to the output directory and render what it learned.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.config(cmd)
			if err != nil {
				return err
			}

			set := changedOnly(cmd, flags.configFile)
			set("availability", func() {
				config.Teacher.Availability = availability
			})
			set("accuracy", func() { config.Teacher.Accuracy = accuracy })

			return train(config, evalEpisodes)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&availability, "availability", 0,
		"Probability the teacher is available on a training step")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 1,
		"Probability an intervening teacher advises the optimal action")
	cmd.Flags().IntVar(&evalEpisodes, "eval", 100,
		"Greedy evaluation episodes after training (0 skips evaluation)")

	return cmd
}

// train runs a single configured training run, saves its data and
// charts, and renders what the agent learned
func train(config experiment.Config, evalEpisodes int) error {
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("could not create %v: %v", out, err)
	}

	online, err := config.Create()
	if err != nil {
		return err
	}
	online.Register(tracker.NewReturn(filepath.Join(out, "returns.bin")))
	online.Register(tracker.NewEpisodeLength(filepath.Join(out, "steps.bin")))
	online.Register(tracker.NewSuccess(filepath.Join(out, "success.bin")))
	online.Register(tracker.NewAdvice(filepath.Join(out, "advice.bin")))

	fmt.Printf("Training %v on a (%d x %d) grid for %d episodes\n",
		config.Algorithm, config.Env.Rows, config.Env.Cols, config.Episodes)

	episodes, err := online.Run()
	if err != nil {
		return err
	}
	online.Save()

	summary := metrics.Summarize(episodes, config.Window(), config.Target())
	if err := metrics.WriteTable(os.Stdout, []string{"training"},
		[]metrics.Summary{summary}); err != nil {
		return err
	}

	window := config.Window()
	returns := plot.Series{
		Name:   "training",
		Values: metrics.Smoothed(metrics.Returns(episodes), window),
	}
	if err := plot.LearningCurves(filepath.Join(out, "returns.html"),
		returns); err != nil {
		return err
	}

	success := plot.Series{
		Name:   "training",
		Values: metrics.RollingSuccess(episodes, window),
	}
	if err := plot.SuccessCurves(filepath.Join(out, "success.html"), window,
		success); err != nil {
		return err
	}

	world, _, err := config.Env.Create(config.Seed)
	if err != nil {
		return err
	}
	if err := plot.ValueHeatMap(filepath.Join(out, "values.html"),
		"State values", world, online.Table()); err != nil {
		return err
	}
	if err := online.Table().Save(filepath.Join(out,
		"table.bin")); err != nil {
		return err
	}

	fmt.Println("\nGreedy policy:")
	render.Policy(os.Stdout, world, online.Table())
	fmt.Println("\nState values:")
	render.Values(os.Stdout, world, online.Table())
	fmt.Printf("\nGreedy trajectory from %v:\n", world.Coordinates())
	if err := render.Trajectory(os.Stdout, world, online.Table(),
		world.Coordinates(), config.StepLimit); err != nil {
		return err
	}

	if evalEpisodes > 0 {
		results, err := online.Evaluate(evalEpisodes)
		if err != nil {
			return err
		}

		fmt.Printf("\nGreedy evaluation over %d episodes:\n", evalEpisodes)
		evalSummary := metrics.Summarize(results, config.Window(),
			config.Target())
		if err := metrics.WriteTable(os.Stdout, []string{"evaluation"},
			[]metrics.Summary{evalSummary}); err != nil {
			return err
		}
	}

	fmt.Printf("\nWrote data and charts to %v\n", out)
	return nil
}
