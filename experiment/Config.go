package experiment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/agent/tabular/qlearning"
	"github.com/samuelfneumann/gotutor/agent/tabular/sarsa"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
	"github.com/samuelfneumann/gotutor/teacher"
)

// Defaults for the rolling success rate that summaries and learning
// speeds are measured against
const (
	DefaultSuccessWindow int     = 30
	DefaultSuccessTarget float64 = 0.95
)

// Config represents a complete configuration of a single training run.
// Configs are JSON serializable, and a Config plus its Seed determines
// a run exactly: two runs created from equal Configs produce identical
// episodes, action values, and metrics.
type Config struct {
	Env gridworld.Config

	// Algorithm selects the learning agent
	Algorithm    agent.Type
	LearningRate float64
	InitialValue float64

	// Exploration rate, annealed linearly from Epsilon to EpsilonMin
	// over DecayEpisodes episodes. With DecayEpisodes 0 the rate stays
	// at Epsilon.
	Epsilon       float64
	EpsilonMin    float64
	DecayEpisodes int

	Episodes  int
	StepLimit int // episodes are cut off and counted failed after this

	Teacher teacher.Config

	// SuccessWindow and SuccessTarget define the rolling success rate
	// used for summaries. Zero values fall back to the defaults.
	SuccessWindow int
	SuccessTarget float64

	Seed uint64
}

// Window returns the Config's success window, falling back to
// DefaultSuccessWindow when unset
func (c Config) Window() int {
	if c.SuccessWindow == 0 {
		return DefaultSuccessWindow
	}
	return c.SuccessWindow
}

// Target returns the Config's success target, falling back to
// DefaultSuccessTarget when unset
func (c Config) Target() float64 {
	if c.SuccessTarget == 0 {
		return DefaultSuccessTarget
	}
	return c.SuccessTarget
}

// Validate returns an error describing the first problem found with
// the Config, or nil if the Config describes a legal run. Create
// validates before constructing anything, so a bad configuration fails
// before any episode runs.
func (c Config) Validate() error {
	if err := c.Env.Validate(); err != nil {
		return fmt.Errorf("environment: %v", err)
	}

	if _, err := c.agentConfig(); err != nil {
		return err
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}

	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.DecayEpisodes < 0 {
		return fmt.Errorf("decay episodes cannot be negative, got %d",
			c.DecayEpisodes)
	}
	if c.DecayEpisodes > 0 &&
		(c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon) {
		return fmt.Errorf("minimum epsilon must be in [0, %v], got %v",
			c.Epsilon, c.EpsilonMin)
	}

	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.StepLimit <= 0 {
		return fmt.Errorf("step limit must be positive, got %d", c.StepLimit)
	}

	if err := c.Teacher.Validate(); err != nil {
		return fmt.Errorf("teacher: %v", err)
	}

	if c.SuccessWindow < 0 {
		return fmt.Errorf("success window cannot be negative, got %d",
			c.SuccessWindow)
	}
	if c.SuccessTarget < 0 || c.SuccessTarget > 1 {
		return fmt.Errorf("success target must be in [0, 1], got %v",
			c.SuccessTarget)
	}

	return nil
}

// Create constructs the run the Config describes. The run's
// environment, agent, and teacher share a single random source seeded
// with the Config's Seed.
func (c Config) Create() (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}

	env, _, err := c.Env.Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}

	source := rand.NewSource(c.Seed)

	agentConfig, err := c.agentConfig()
	if err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}
	a, err := agentConfig.CreateAgent(env, source)
	if err != nil {
		return nil, fmt.Errorf("create: could not create agent: %v", err)
	}

	// An unavailable teacher never intervenes and never draws, so a
	// run without one behaves identically to a run with one
	var teach *teacher.Teacher
	if c.Teacher.Availability > 0 {
		teach, err = teacher.New(c.Teacher, env, source)
		if err != nil {
			return nil, fmt.Errorf("create: %v", err)
		}
	}

	return NewOnline(env, a, teach, c.schedule(), c.Episodes, c.StepLimit),
		nil
}

// agentConfig returns the agent configuration the Config's Algorithm
// names
func (c Config) agentConfig() (agent.Config, error) {
	switch c.Algorithm {
	case agent.EGreedyQLearning:
		return qlearning.Config{
			Epsilon:      c.Epsilon,
			LearningRate: c.LearningRate,
			InitialValue: c.InitialValue,
		}, nil
	case agent.EGreedySarsa:
		return sarsa.Config{
			Epsilon:      c.Epsilon,
			LearningRate: c.LearningRate,
			InitialValue: c.InitialValue,
		}, nil
	}
	return nil, fmt.Errorf("no such algorithm %q", c.Algorithm)
}

// schedule returns the exploration schedule the Config describes
func (c Config) schedule() Schedule {
	if c.DecayEpisodes > 0 {
		return NewLinear(c.Epsilon, c.EpsilonMin, c.DecayEpisodes)
	}
	return NewConstant(c.Epsilon)
}
