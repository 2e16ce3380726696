// Package qlearning implements the tabular Q-Learning algorithm.
//
// Q-Learning is off-policy: no matter which action the behaviour
// policy (or an external advisor) executes, the update target
// bootstraps from the maximum action value in the next state.
package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/agent/tabular/policy"
	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/utils/matutils/initializers/weights"
)

// QLearning implements the tabular Q-Learning algorithm. Actions
// selected by this algorithm will always be enumerated as
// (0, 1, 2, ... N) where N is the maximum possible action.
type QLearning struct {
	agent.Learner
	*policy.EGreedy // Behaviour
}

// New creates a new QLearning agent. The source provides all the
// randomness the agent's behaviour policy will consume, and init fills
// the agent's action value table before learning begins.
func New(env environment.Environment, config Config,
	init weights.Initializer, source rand.Source) (*QLearning, error) {
	// Ensure environment has discrete actions
	if env.ActionSpec().Cardinality != environment.Discrete {
		return &QLearning{}, fmt.Errorf("qlearning: cannot use " +
			"non-discrete actions")
	}
	if env.ActionSpec().LowerBound.Len() > 1 {
		return &QLearning{}, fmt.Errorf("qlearning: actions must be " +
			"1-dimensional")
	}
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return &QLearning{}, fmt.Errorf("qlearning: actions must be " +
			"enumerated starting from 0")
	}
	if err := config.Validate(); err != nil {
		return &QLearning{}, fmt.Errorf("qlearning: %v", err)
	}

	// Create the behaviour policy and the learner, sharing one table
	behaviour := policy.NewEGreedy(config.Epsilon, env, source)
	learner := NewQLearner(behaviour, config.LearningRate)

	// Initialize action values
	init.Initialize(behaviour.Table().Values())

	return &QLearning{learner, behaviour}, nil
}
