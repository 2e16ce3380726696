package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NoAction denotes that a Transition records no next action, either
// because the transition is terminal or because the learner that will
// consume it bootstraps from the value function directly.
const NoAction int = -1

// Transition packages together a single transition of the
// agent-environment interaction.
//
// State is the state the action was taken in, and NextState is the
// state the environment transitioned to, with Reward earned along the
// way. NextAction is the action that will actually be executed from
// NextState and is what on-policy learners bootstrap from. Terminal
// transitions have Done set, carry no NextAction, and should not be
// bootstrapped from at all.
type Transition struct {
	State      mat.Vector
	Action     int
	Reward     float64
	Discount   float64
	NextState  mat.Vector
	Done       bool
	NextAction int
}

// NewTransition returns a non-terminal Transition from step to
// nextStep, where nextAction is the action that will be executed next
func NewTransition(step TimeStep, action int, nextStep TimeStep,
	nextAction int) Transition {
	return Transition{
		State:      step.Observation,
		Action:     action,
		Reward:     nextStep.Reward,
		Discount:   nextStep.Discount,
		NextState:  nextStep.Observation,
		Done:       nextStep.Last(),
		NextAction: nextAction,
	}
}

// NewTerminalTransition returns a terminal Transition from step into
// the episode-ending nextStep
func NewTerminalTransition(step TimeStep, action int,
	nextStep TimeStep) Transition {
	t := NewTransition(step, action, nextStep, NoAction)
	t.Done = true
	return t
}

func (t Transition) String() string {
	str := "Transition | Action: %d  |  Reward: %.2f  |  Done: %v"
	return fmt.Sprintf(str, t.Action, t.Reward, t.Done)
}
