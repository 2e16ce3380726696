package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/timestep"
)

// Config implements a specific configuration of a GridWorld and its
// Goal task. Configs are JSON serializable and should be validated
// with Validate before use.
//
// If RandomStart is set, episodes start uniformly at random over the
// free cells of the grid and the Start field is ignored. Otherwise
// episodes always start at Start.
type Config struct {
	Rows int
	Cols int

	Obstacles []Cell
	Penalties []Cell
	Goal      Cell

	Start       Cell
	RandomStart bool

	StepReward     float64
	ObstacleReward float64
	PenaltyReward  float64
	GoalReward     float64

	Discount float64
}

// Classic returns the configuration of the classic teaching grid: a
// (10 x 10) grid with a diagonal band of obstacles, the goal in the
// bottom right corner, and episodes starting uniformly at random over
// the free cells.
func Classic() Config {
	return Config{
		Rows: 10,
		Cols: 10,
		Obstacles: []Cell{
			{Row: 1, Col: 1},
			{Row: 2, Col: 2},
			{Row: 3, Col: 3},
			{Row: 4, Col: 4},
			{Row: 5, Col: 5},
		},
		Goal:           Cell{Row: 9, Col: 9},
		RandomStart:    true,
		StepReward:     -1,
		ObstacleReward: -5,
		GoalReward:     20,
		Discount:       0.95,
	}
}

// Validate returns an error describing the first problem found with
// the Config, or nil if the Config describes a legal GridWorld.
//
// Beyond bounds and overlap checks, Validate ensures that the goal is
// reachable from every possible starting cell, so that a configured
// environment can never produce an episode with no path to
// termination.
func (c Config) Validate() error {
	l, err := newLayout(c.Rows, c.Cols, c.Obstacles, c.Penalties, c.Goal)
	if err != nil {
		return err
	}

	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in (0, 1], got %v", c.Discount)
	}

	dist := l.distances(false)

	if c.RandomStart {
		free := l.freeCells()
		if len(free) == 0 {
			return fmt.Errorf("grid has no free cells to start in")
		}
		for _, i := range free {
			if dist[i] < 0 {
				return fmt.Errorf("goal %v is unreachable from possible "+
					"start %v", c.Goal, l.cell(i))
			}
		}
		return nil
	}

	if !l.inBounds(c.Start) {
		return fmt.Errorf("start %v is out of bounds for a (%d x %d) grid",
			c.Start, c.Rows, c.Cols)
	}
	start := l.index(c.Start)
	if l.obstacles[start] {
		return fmt.Errorf("start %v is an obstacle", c.Start)
	}
	if l.penalties[start] {
		return fmt.Errorf("start %v is a penalty cell", c.Start)
	}
	if start == l.goal {
		return fmt.Errorf("start %v is the goal", c.Start)
	}
	if dist[start] < 0 {
		return fmt.Errorf("goal %v is unreachable from start %v", c.Goal,
			c.Start)
	}

	return nil
}

// Create returns the GridWorld described by the Config along with the
// first timestep of the environment. The seed determines the start
// cells drawn when the Config uses random starts.
func (c Config) Create(seed uint64) (*GridWorld, timestep.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	task, err := NewGoal(c.Goal, c.Rows, c.Cols, c.Obstacles, c.Penalties,
		c.StepReward, c.ObstacleReward, c.PenaltyReward, c.GoalReward)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	var starter environment.Starter
	if c.RandomStart {
		starter, err = NewUniformStart(c.Rows, c.Cols, c.Obstacles,
			c.Penalties, c.Goal, seed)
	} else {
		starter, err = NewSingleStart(c.Start, c.Rows, c.Cols)
	}
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	return New(c.Rows, c.Cols, c.Obstacles, c.Penalties, c.Goal, task,
		starter, c.Discount)
}
