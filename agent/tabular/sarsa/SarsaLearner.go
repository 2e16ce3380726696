package sarsa

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/agent/tabular/policy"
	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/timestep"
)

// SarsaLearner implements the update functionality for the Sarsa
// algorithm
type SarsaLearner struct {
	table        *qtable.Table
	learningRate float64
}

// NewSarsaLearner creates a new SarsaLearner that updates the action
// values of the argument policy's table
func NewSarsaLearner(behaviour *policy.EGreedy,
	learningRate float64) *SarsaLearner {
	return &SarsaLearner{table: behaviour.Table(), learningRate: learningRate}
}

// Update adjusts the action value of the transition's state and action
// toward the Sarsa target
func (s *SarsaLearner) Update(t timestep.Transition) error {
	state, err := s.table.StateOf(t.State)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}
	if t.Action < 0 || t.Action >= s.table.NumActions() {
		return fmt.Errorf("update: illegal action %d", t.Action)
	}

	target, err := s.target(t)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}

	current := s.table.Get(state, t.Action)
	s.table.Set(state, t.Action, current+s.learningRate*(target-current))
	return nil
}

// TdError returns the TD error of a transition under the Sarsa target
// without updating any action values
func (s *SarsaLearner) TdError(t timestep.Transition) float64 {
	state, err := s.table.StateOf(t.State)
	if err != nil {
		panic(fmt.Sprintf("tdError: %v", err))
	}
	target, err := s.target(t)
	if err != nil {
		panic(fmt.Sprintf("tdError: %v", err))
	}
	return target - s.table.Get(state, t.Action)
}

// OnPolicy returns true: Sarsa bootstraps from the action executed
// next, so every non-terminal transition it learns from must record
// one
func (s *SarsaLearner) OnPolicy() bool {
	return true
}

// target returns the update target of a transition: the reward plus
// the discounted value of the next state-action pair, or the reward
// alone when the transition ends the episode
func (s *SarsaLearner) target(t timestep.Transition) (float64, error) {
	if t.Done {
		return t.Reward, nil
	}

	if t.NextAction == timestep.NoAction {
		return 0, fmt.Errorf("non-terminal transition records no next action")
	}
	if t.NextAction < 0 || t.NextAction >= s.table.NumActions() {
		return 0, fmt.Errorf("illegal next action %d", t.NextAction)
	}

	next, err := s.table.StateOf(t.NextState)
	if err != nil {
		return 0, err
	}
	return t.Reward + t.Discount*s.table.Get(next, t.NextAction), nil
}
