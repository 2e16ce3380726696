package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
	"github.com/samuelfneumann/gotutor/plot"
	"github.com/samuelfneumann/gotutor/render"
)

// ShowCommand returns the command rendering a saved action value table
func ShowCommand() *cobra.Command {
	env := &envFlags{}
	var configFile, tableFile, heatmap string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a saved action value table on its grid",
		Long: "Load an action value table saved by train and render the " +
			"greedy policy, state values, and a greedy trajectory on the " +
			"grid it was trained on. The grid must match the one given " +
			"here, by flags or by the run's configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			envConfig, err := env.config()
			if err != nil {
				return err
			}
			if configFile != "" {
				config, err := loadConfig(configFile)
				if err != nil {
					return err
				}
				envConfig = config.Env
			}
			return show(envConfig, tableFile, heatmap)
		},
	}

	env.register(cmd)
	cmd.Flags().StringVar(&configFile, "config", "",
		"JSON run configuration whose grid to render on")
	cmd.Flags().StringVar(&tableFile, "table", "",
		"Saved action value table to render")
	cmd.Flags().StringVar(&heatmap, "heatmap", "",
		"Write a state value heat map to this HTML file")
	cmd.MarkFlagRequired("table")

	return cmd
}

// show renders the table's greedy policy, values, and trajectory on the
// configured grid
func show(envConfig gridworld.Config, tableFile, heatmap string) error {
	world, _, err := envConfig.Create(seed)
	if err != nil {
		return err
	}

	table, err := qtable.Load(tableFile)
	if err != nil {
		return err
	}

	rows, cols := world.Dims()
	if table.NumActions() != gridworld.NumActions ||
		table.NumStates() != rows*cols {
		return fmt.Errorf("table %v holds %d states and %d actions, but "+
			"a (%d x %d) grid needs %d and %d", tableFile,
			table.NumStates(), table.NumActions(), rows, cols, rows*cols,
			gridworld.NumActions)
	}

	fmt.Println("Grid:")
	render.Grid(os.Stdout, world)
	fmt.Println("\nGreedy policy:")
	render.Policy(os.Stdout, world, table)
	fmt.Println("\nState values:")
	render.Values(os.Stdout, world, table)
	fmt.Printf("\nGreedy trajectory from %v:\n", world.Coordinates())
	if err := render.Trajectory(os.Stdout, world, table,
		world.Coordinates(), stepLimit); err != nil {
		return err
	}

	if heatmap != "" {
		if err := plot.ValueHeatMap(heatmap, "State values", world,
			table); err != nil {
			return err
		}
		fmt.Printf("\nWrote heat map to %v\n", heatmap)
	}

	return nil
}
