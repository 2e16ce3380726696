// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates action values, and
// a Policy which chooses actions in each state. The Policy chooses
// which actions are taken, and the Learner uses the resulting
// transitions to update the Policy. The Learner and Policy of an Agent
// share a single action value Table so that any changes the Learner
// makes to the values are reflected in the actions the Policy chooses.
// The shared Table is also exposed directly for snapshotting and
// rendering.
type Agent interface {
	Learner
	EpsilonPolicy
	Table() *qtable.Table
}

// Learner implements a learning algorithm that defines how action
// values are updated on each transition.
type Learner interface {
	// Update adjusts the action value of the transition's state and
	// action toward the learner's target
	Update(t timestep.Transition) error

	// TdError returns the TD error of a transition without updating
	// any action values
	TdError(t timestep.Transition) float64

	// OnPolicy returns whether the learner bootstraps from the action
	// that will actually be executed next. On-policy learners must be
	// given the executed next action with every non-terminal
	// transition.
	OnPolicy() bool
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. A Policy in evaluation
// mode always exploits what it has learned and consumes no randomness.
// For a given agent, the Policy and Learner should have pointers to
// the same action value table so that any changes the learner makes to
// the values are reflected in the actions the Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) int
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// EpsilonPolicy implements a Policy whose exploration is controlled by
// an epsilon value that can be set and retrieved, for example by an
// external decay schedule.
type EpsilonPolicy interface {
	Policy
	SetEpsilon(float64)
	Epsilon() float64
}
