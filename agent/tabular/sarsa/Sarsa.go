// Package sarsa implements the tabular Sarsa algorithm.
//
// Sarsa is on-policy: the update target bootstraps from the action
// value of the action that is actually executed next, whether that
// action came from the behaviour policy or from an external advisor.
package sarsa

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/agent/tabular/policy"
	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/utils/matutils/initializers/weights"
)

// Sarsa implements the tabular Sarsa algorithm. Actions selected by
// this algorithm will always be enumerated as (0, 1, 2, ... N) where N
// is the maximum possible action.
type Sarsa struct {
	agent.Learner
	*policy.EGreedy // Behaviour
}

// New creates a new Sarsa agent. The source provides all the
// randomness the agent's behaviour policy will consume, and init fills
// the agent's action value table before learning begins.
func New(env environment.Environment, config Config,
	init weights.Initializer, source rand.Source) (*Sarsa, error) {
	// Ensure environment has discrete actions
	if env.ActionSpec().Cardinality != environment.Discrete {
		return &Sarsa{}, fmt.Errorf("sarsa: cannot use non-discrete actions")
	}
	if env.ActionSpec().LowerBound.Len() > 1 {
		return &Sarsa{}, fmt.Errorf("sarsa: actions must be 1-dimensional")
	}
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return &Sarsa{}, fmt.Errorf("sarsa: actions must be enumerated " +
			"starting from 0")
	}
	if err := config.Validate(); err != nil {
		return &Sarsa{}, fmt.Errorf("sarsa: %v", err)
	}

	// Create the behaviour policy and the learner, sharing one table
	behaviour := policy.NewEGreedy(config.Epsilon, env, source)
	learner := NewSarsaLearner(behaviour, config.LearningRate)

	// Initialize action values
	init.Initialize(behaviour.Table().Values())

	return &Sarsa{learner, behaviour}, nil
}
