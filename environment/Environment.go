// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotutor/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Task implements the reward scheme for taking actions in some
// environment. GetReward returns the reward for taking an action in
// a state and arriving in the next state. AtGoal returns whether a
// state is a goal state of the task.
type Task interface {
	GetReward(state mat.Vector, action int, nextState mat.Vector) float64
	AtGoal(state mat.Vector) bool
}

// Environment implements a simulated environment, which includes a
// Task to complete.
//
// Environments have a fixed, discrete action set. Legal actions are
// the integers 0 through ActionSpec().UpperBound.AtVec(0), and the
// same actions are legal in every state. Environments end episodes
// only when their Task's goal is reached. Cutting episodes off after
// some step limit is the job of whatever runs the environment.
type Environment interface {
	Task
	Starter
	Reset() timestep.TimeStep // Resets between episodes
	Step(action int) (timestep.TimeStep, bool)
	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Oracle describes environments that know an optimal action for each
// of their states. Oracles are what teachers consult before advising
// an agent.
type Oracle interface {
	Environment
	OptimalAction(state mat.Vector) int
}
