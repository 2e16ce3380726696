// Package teacher implements probabilistic action advice for training
// agents.
//
// A Teacher watches the action an agent proposes on each training step
// and sometimes overrides it. How often it intervenes and how good its
// advice is are both configurable, so a Teacher can range from an
// always-present perfect guide to an adversary that reliably points
// away from the goal.
package teacher

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotutor/environment"
)

// Teacher advises an agent during training by overriding proposed
// actions with advice based on an environment oracle's optimal
// actions.
//
// A Teacher draws from its random number generator only when a draw
// can change the outcome: an unavailable teacher draws nothing, a
// teacher that does not intervene on a step draws once, and a
// perfectly accurate intervention draws nothing beyond the
// intervention draw itself. Runs that share a random source therefore
// stay reproducible across teacher configurations that make the same
// decisions.
type Teacher struct {
	config     Config
	oracle     environment.Oracle
	rng        *rand.Rand
	numActions int
}

// New creates a new Teacher advising toward the optimal actions of the
// argument oracle, with randomness drawn from source
func New(config Config, oracle environment.Oracle,
	source rand.Source) (*Teacher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("teacher: %v", err)
	}
	if oracle == nil {
		return nil, fmt.Errorf("teacher: oracle cannot be nil")
	}

	numActions := int(oracle.ActionSpec().UpperBound.AtVec(0)) + 1
	return &Teacher{
		config:     config,
		oracle:     oracle,
		rng:        rand.New(source),
		numActions: numActions,
	}, nil
}

// Config returns the configuration of the Teacher
func (t *Teacher) Config() Config {
	return t.config
}

// Advise returns the action the agent should execute from the argument
// state, given that it proposed the argument action, along with
// whether the teacher intervened.
//
// With probability 1 - availability the proposed action is returned
// unchanged. Otherwise the teacher intervenes: with probability
// accuracy it advises the oracle's optimal action, and with
// probability 1 - accuracy it advises an action drawn uniformly at
// random from the other actions.
func (t *Teacher) Advise(state mat.Vector, proposed int) (int, bool) {
	if t.config.Availability <= 0 {
		return proposed, false
	}
	if t.rng.Float64() >= t.config.Availability {
		return proposed, false
	}

	optimal := t.oracle.OptimalAction(state)
	if t.config.Accuracy >= 1 {
		return optimal, true
	}
	if t.rng.Float64() < t.config.Accuracy {
		return optimal, true
	}

	// Advise uniformly over the non-optimal actions. With a single
	// action there is nothing else to advise.
	if t.numActions < 2 {
		return optimal, true
	}
	wrong := t.rng.Intn(t.numActions - 1)
	if wrong >= optimal {
		wrong++
	}
	return wrong, true
}
