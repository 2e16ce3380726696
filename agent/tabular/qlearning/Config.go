package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/utils/matutils/initializers/weights"
	"golang.org/x/exp/rand"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 // epsilon for behaviour policy
	LearningRate float64
	InitialValue float64 // starting value of every state-action pair
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to the Config's InitialValue using this function.
// To initialize from some other distribution, use the agent's
// constructor manually.
func (c Config) CreateAgent(env environment.Environment,
	source rand.Source) (agent.Agent, error) {
	init := weights.NewConstant(c.InitialValue)
	return New(env, c, init, source)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearning
}
