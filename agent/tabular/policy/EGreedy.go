// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/timestep"
	"github.com/samuelfneumann/gotutor/utils/matutils"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a table of action values.
//
// In training mode the policy consumes exactly one random number per
// action selection, drawn from its source. In evaluation mode the
// policy is greedy and consumes no randomness at all.
type EGreedy struct {
	table   *qtable.Table
	epsilon float64
	eval    bool
	source  rand.Source // Source for random number generation
}

// NewEGreedy constructs a new EGreedy policy, where epsilon is the
// probability with which a random action is selected and source
// provides the randomness for action selection. The policy creates its
// own action value table sized to the environment's specifications.
func NewEGreedy(epsilon float64, env environment.Environment,
	source rand.Source) *EGreedy {
	// Ensure actions are 1-dimensional
	if env.ActionSpec().Shape.Len() != 1 {
		panic("EGreedy can only be used with 1-dimensional actions")
	}

	// Ensure actions are discrete
	if env.ActionSpec().Cardinality != environment.Discrete {
		panic("EGreedy can only be used with discrete actions")
	}

	// Calculate the number of actions and states
	actions := int(env.ActionSpec().UpperBound.AtVec(0)) + 1
	states := env.ObservationSpec().Shape.Len()

	table, err := qtable.New(actions, states)
	if err != nil {
		panic(fmt.Sprintf("egreedy: could not create table: %v", err))
	}

	return &EGreedy{table: table, epsilon: epsilon, source: source}
}

// Table returns the action value table of the EGreedy policy
func (p *EGreedy) Table() *qtable.Table {
	return p.table
}

// SetTable sets the policy's table pointer to point at a new table of
// action values. The SetTable function can take the output of a call
// to Table() on another policy directly.
func (p *EGreedy) SetTable(table *qtable.Table) error {
	if table == nil {
		return fmt.Errorf("setTable: table cannot be nil")
	}
	if table.NumActions() != p.table.NumActions() ||
		table.NumStates() != p.table.NumStates() {
		return fmt.Errorf("setTable: table is (%d x %d) but policy needs "+
			"(%d x %d)", table.NumActions(), table.NumStates(),
			p.table.NumActions(), p.table.NumStates())
	}

	p.table = table
	return nil
}

// SelectAction selects an action from an ε-greedy policy in training
// mode, or from the greedy policy in evaluation mode
func (p *EGreedy) SelectAction(t timestep.TimeStep) int {
	// Calculate all action values
	actionValues := p.table.ActionValues(t.Observation)

	// Find the greedy action
	greedyAction := matutils.MaxVec(actionValues)

	if p.eval {
		return greedyAction
	}

	// Calculate the ε probability of choosing any action at random
	numActions := p.table.NumActions()
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += (1.0 - p.epsilon)

	// Construct a categorical distribution over actions using the
	// action probabilities and sample from it
	dist := distuv.NewCategorical(actionProbabilities, p.source)
	return int(dist.Rand())
}

// Eval sets the policy to evaluation mode
func (p *EGreedy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *EGreedy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool {
	return p.eval
}

// Epsilon returns the policy's probability of exploring
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the policy's probability of exploring
func (p *EGreedy) SetEpsilon(epsilon float64) {
	p.epsilon = epsilon
}
