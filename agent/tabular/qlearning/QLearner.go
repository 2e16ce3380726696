package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/agent/tabular/policy"
	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm
type QLearner struct {
	table        *qtable.Table
	learningRate float64
}

// NewQLearner creates a new QLearner that updates the action values of
// the argument policy's table
func NewQLearner(behaviour *policy.EGreedy, learningRate float64) *QLearner {
	return &QLearner{table: behaviour.Table(), learningRate: learningRate}
}

// Update adjusts the action value of the transition's state and action
// toward the Q-Learning target
func (q *QLearner) Update(t timestep.Transition) error {
	state, err := q.table.StateOf(t.State)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}
	if t.Action < 0 || t.Action >= q.table.NumActions() {
		return fmt.Errorf("update: illegal action %d", t.Action)
	}

	current := q.table.Get(state, t.Action)
	q.table.Set(state, t.Action, current+q.learningRate*(q.target(t)-current))
	return nil
}

// TdError returns the TD error of a transition under the Q-Learning
// target without updating any action values
func (q *QLearner) TdError(t timestep.Transition) float64 {
	state, err := q.table.StateOf(t.State)
	if err != nil {
		panic(fmt.Sprintf("tdError: %v", err))
	}
	return q.target(t) - q.table.Get(state, t.Action)
}

// OnPolicy returns false: Q-Learning bootstraps from the greedy action
// regardless of the action executed next
func (q *QLearner) OnPolicy() bool {
	return false
}

// target returns the update target of a transition: the reward plus
// the discounted maximum action value in the next state, or the reward
// alone when the transition ends the episode
func (q *QLearner) target(t timestep.Transition) float64 {
	if t.Done {
		return t.Reward
	}

	next, err := q.table.StateOf(t.NextState)
	if err != nil {
		panic(fmt.Sprintf("target: %v", err))
	}
	_, maxVal := q.table.BestAction(next)
	return t.Reward + t.Discount*maxVal
}
