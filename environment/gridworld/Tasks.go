package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotutor/utils/floatutils"
)

// Goal implements the task of reaching a single goal cell. The reward
// for a transition is determined by the cell the agent arrives in:
// the goal reward for reaching the goal, the penalty reward for
// entering a penalty cell, the obstacle reward for a move that ran
// into an obstacle and left the agent in place, and the step reward
// otherwise. Moves that run off the grid edge earn the ordinary step
// reward.
type Goal struct {
	layout         *layout
	stepReward     float64
	obstacleReward float64
	penaltyReward  float64
	goalReward     float64
}

// NewGoal creates and returns a new Goal task of reaching the goal
// cell on an (r x c) grid with the argument obstacle and penalty cells
func NewGoal(goal Cell, r, c int, obstacles, penalties []Cell, stepReward,
	obstacleReward, penaltyReward, goalReward float64) (*Goal, error) {
	l, err := newLayout(r, c, obstacles, penalties, goal)
	if err != nil {
		return nil, err
	}

	return &Goal{
		layout:         l,
		stepReward:     stepReward,
		obstacleReward: obstacleReward,
		penaltyReward:  penaltyReward,
		goalReward:     goalReward,
	}, nil
}

// GetReward returns the reward for taking action in state and arriving
// in nextState
func (g *Goal) GetReward(state mat.Vector, action int,
	nextState mat.Vector) float64 {
	next := vToInd(nextState, g.layout.rows, g.layout.cols)

	if next == g.layout.goal {
		return g.goalReward
	}
	if g.layout.penalties[next] {
		return g.penaltyReward
	}

	pos := vToInd(state, g.layout.rows, g.layout.cols)
	if g.layout.bumped(pos, action) {
		return g.obstacleReward
	}

	return g.stepReward
}

// AtGoal returns whether state is the goal state of the task
func (g *Goal) AtGoal(state mat.Vector) bool {
	return vToInd(state, g.layout.rows, g.layout.cols) == g.layout.goal
}

// RewardRange returns the lowest and highest rewards the task can emit
func (g *Goal) RewardRange() (min, max float64) {
	min = floatutils.Min(g.stepReward, g.obstacleReward, g.penaltyReward,
		g.goalReward)
	max = floatutils.Max(g.stepReward, g.obstacleReward, g.penaltyReward,
		g.goalReward)
	return min, max
}

func (g *Goal) String() string {
	return fmt.Sprintf("Goal: %v", g.layout.cell(g.layout.goal))
}
