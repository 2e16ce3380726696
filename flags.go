package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
	"github.com/samuelfneumann/gotutor/experiment"
)

// envFlags collects the flags describing a grid world, shared by the
// commands that build environments. With no dimensions set the classic
// teaching grid is used. Rewards and the discount default to the
// classic structure: -1 per step, -5 for an obstacle bump, -100 for a
// penalty cell, and +20 at the goal, discounted at 0.95.
type envFlags struct {
	rows, cols int
	goal       string
	start      string
	obstacles  []string
	penalties  []string

	stepReward     float64
	obstacleReward float64
	penaltyReward  float64
	goalReward     float64
	discount       float64
}

func (e *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&e.rows, "rows", 0,
		"Grid rows (0 uses the classic teaching grid)")
	cmd.Flags().IntVar(&e.cols, "cols", 0,
		"Grid columns (0 uses the classic teaching grid)")
	cmd.Flags().StringVar(&e.goal, "goal", "",
		"Goal cell of a custom grid, as row,col")
	cmd.Flags().StringVar(&e.start, "start", "",
		"Fixed start cell, as row,col (empty starts episodes at random)")
	cmd.Flags().StringArrayVar(&e.obstacles, "obstacle", nil,
		"Obstacle cell as row,col, repeatable")
	cmd.Flags().StringArrayVar(&e.penalties, "penalty", nil,
		"Penalty cell as row,col, repeatable")

	cmd.Flags().Float64Var(&e.stepReward, "step-reward", -1,
		"Reward earned on an ordinary step")
	cmd.Flags().Float64Var(&e.obstacleReward, "obstacle-reward", -5,
		"Reward earned bumping into an obstacle")
	cmd.Flags().Float64Var(&e.penaltyReward, "penalty-reward", -100,
		"Reward earned entering a penalty cell")
	cmd.Flags().Float64Var(&e.goalReward, "goal-reward", 20,
		"Reward earned reaching the goal")
	cmd.Flags().Float64Var(&e.discount, "discount", 0.95,
		"Discount applied to future rewards")
}

// config builds the grid the flags describe
func (e *envFlags) config() (gridworld.Config, error) {
	if e.rows == 0 && e.cols == 0 {
		config := gridworld.Classic()
		e.setRewards(&config)
		if e.start != "" {
			start, err := parseCell(e.start)
			if err != nil {
				return gridworld.Config{}, err
			}
			config.Start = start
			config.RandomStart = false
		}
		return config, nil
	}

	config := gridworld.Config{
		Rows:        e.rows,
		Cols:        e.cols,
		RandomStart: true,
	}
	e.setRewards(&config)

	if e.goal == "" {
		return gridworld.Config{}, fmt.Errorf("custom grids need --goal")
	}
	goal, err := parseCell(e.goal)
	if err != nil {
		return gridworld.Config{}, err
	}
	config.Goal = goal

	if e.start != "" {
		start, err := parseCell(e.start)
		if err != nil {
			return gridworld.Config{}, err
		}
		config.Start = start
		config.RandomStart = false
	}

	for _, s := range e.obstacles {
		cell, err := parseCell(s)
		if err != nil {
			return gridworld.Config{}, err
		}
		config.Obstacles = append(config.Obstacles, cell)
	}
	for _, s := range e.penalties {
		cell, err := parseCell(s)
		if err != nil {
			return gridworld.Config{}, err
		}
		config.Penalties = append(config.Penalties, cell)
	}

	return config, nil
}

// setRewards applies the reward and discount flags to a grid config
func (e *envFlags) setRewards(config *gridworld.Config) {
	config.StepReward = e.stepReward
	config.ObstacleReward = e.obstacleReward
	config.PenaltyReward = e.penaltyReward
	config.GoalReward = e.goalReward
	config.Discount = e.discount
}

// runFlags collects the flags configuring a training run, shared by the
// commands that train agents
type runFlags struct {
	configFile string
	algorithm  string
	lr         float64
	initial    float64
	epsilon    float64
	epsilonMin float64
	decay      int
	env        envFlags
}

func (r *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.configFile, "config", "",
		"JSON file holding a complete run configuration")
	cmd.Flags().StringVar(&r.algorithm, "algorithm", "qlearning",
		"Learning algorithm, qlearning or sarsa")
	cmd.Flags().Float64Var(&r.lr, "lr", 0.1, "Learning rate")
	cmd.Flags().Float64Var(&r.initial, "initial", 0,
		"Initial action value of every state")
	cmd.Flags().Float64Var(&r.epsilon, "epsilon", 0.1, "Exploration rate")
	cmd.Flags().Float64Var(&r.epsilonMin, "epsilon-min", 0,
		"Final exploration rate of the decay")
	cmd.Flags().IntVar(&r.decay, "decay", 0,
		"Episodes over which to anneal the exploration rate (0 disables "+
			"decay)")
	r.env.register(cmd)
}

// config assembles the run configuration: flag defaults, replaced by
// the config file when one is given, overridden by any explicitly set
// flags
func (r *runFlags) config(cmd *cobra.Command) (experiment.Config, error) {
	algorithm, err := algorithmType(r.algorithm)
	if err != nil {
		return experiment.Config{}, err
	}

	var config experiment.Config
	if r.configFile != "" {
		config, err = loadConfig(r.configFile)
		if err != nil {
			return experiment.Config{}, err
		}
	} else {
		envConfig, err := r.env.config()
		if err != nil {
			return experiment.Config{}, err
		}
		config.Env = envConfig
	}

	set := changedOnly(cmd, r.configFile)
	set("algorithm", func() { config.Algorithm = algorithm })
	set("lr", func() { config.LearningRate = r.lr })
	set("initial", func() { config.InitialValue = r.initial })
	set("epsilon", func() { config.Epsilon = r.epsilon })
	set("epsilon-min", func() { config.EpsilonMin = r.epsilonMin })
	set("decay", func() { config.DecayEpisodes = r.decay })
	set("episodes", func() { config.Episodes = episodes })
	set("step-limit", func() { config.StepLimit = stepLimit })
	set("seed", func() { config.Seed = seed })

	return config, nil
}

// changedOnly returns a setter that applies an assignment when no
// config file is in play, or when the named flag was set explicitly on
// the command line
func changedOnly(cmd *cobra.Command, configFile string) func(string, func()) {
	return func(name string, assign func()) {
		if configFile == "" || cmd.Flag(name).Changed {
			assign()
		}
	}
}

// algorithmType maps a command line name onto an agent type
func algorithmType(name string) (agent.Type, error) {
	switch strings.ToLower(name) {
	case "qlearning", "q":
		return agent.EGreedyQLearning, nil
	case "sarsa":
		return agent.EGreedySarsa, nil
	}
	return "", fmt.Errorf("no such algorithm %q, use qlearning or sarsa",
		name)
}

// parseCell parses a cell given on the command line as "row,col"
func parseCell(s string) (gridworld.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return gridworld.Cell{}, fmt.Errorf("cells are given as row,col, "+
			"got %q", s)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return gridworld.Cell{}, fmt.Errorf("bad row in cell %q: %v", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return gridworld.Cell{}, fmt.Errorf("bad column in cell %q: %v", s,
			err)
	}

	return gridworld.Cell{Row: row, Col: col}, nil
}

// loadConfig reads a run configuration from a JSON file
func loadConfig(filename string) (experiment.Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return experiment.Config{}, fmt.Errorf("could not read config: %v",
			err)
	}

	var config experiment.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return experiment.Config{}, fmt.Errorf("could not parse config %v: "+
			"%v", filename, err)
	}
	return config, nil
}
