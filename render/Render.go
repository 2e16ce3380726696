// Package render draws grids, learned policies, and learned state
// values in the terminal
package render

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
)

// arrows maps each action to the direction it moves the agent
var arrows = map[int]string{
	gridworld.Up:    "↑",
	gridworld.Down:  "↓",
	gridworld.Left:  "←",
	gridworld.Right: "→",
}

// Grid writes a picture of the world: the agent's current cell, the
// goal, obstacles, and penalty cells
func Grid(w io.Writer, world *gridworld.GridWorld) {
	agent := world.Coordinates()
	goal := world.GoalCell()
	blocked := cellSet(world.Obstacles())
	penalties := cellSet(world.Penalties())

	draw(w, world, func(cell gridworld.Cell) aurora.Value {
		switch {
		case cell == agent:
			return aurora.Green("A")
		case cell == goal:
			return aurora.Yellow("G")
		case blocked[cell]:
			return aurora.White("#")
		case penalties[cell]:
			return aurora.Red("!")
		default:
			return aurora.Gray(8, ".")
		}
	})
}

// Policy writes the greedy action of every cell as an arrow pointing
// where the learned policy moves from that cell. States are indexed row
// major, matching the one-hot observations of a GridWorld.
func Policy(w io.Writer, world *gridworld.GridWorld, table *qtable.Table) {
	goal := world.GoalCell()
	blocked := cellSet(world.Obstacles())
	_, cols := world.Dims()

	draw(w, world, func(cell gridworld.Cell) aurora.Value {
		switch {
		case cell == goal:
			return aurora.Yellow("G")
		case blocked[cell]:
			return aurora.White("#")
		}

		action, _ := table.BestAction(cell.Row*cols + cell.Col)
		return aurora.Cyan(arrows[action])
	})
}

// Values writes the value of the greedy action in every cell
func Values(w io.Writer, world *gridworld.GridWorld, table *qtable.Table) {
	blocked := cellSet(world.Obstacles())
	_, cols := world.Dims()

	draw(w, world, func(cell gridworld.Cell) aurora.Value {
		if blocked[cell] {
			return aurora.White(fmt.Sprintf("%7s", "#"))
		}

		_, value := table.BestAction(cell.Row*cols + cell.Col)
		return aurora.Blue(fmt.Sprintf("%7.2f", value))
	})
}

// Trajectory writes the walk the greedy policy takes from start,
// following it for at most limit steps or until it reaches the goal.
// The walk is cut short if the policy runs the agent into a wall, since
// from there it would never move again.
func Trajectory(w io.Writer, world *gridworld.GridWorld,
	table *qtable.Table, start gridworld.Cell, limit int) error {
	rows, cols := world.Dims()
	if start.Row < 0 || start.Row >= rows || start.Col < 0 ||
		start.Col >= cols {
		return fmt.Errorf("trajectory: start %v is out of bounds for a "+
			"(%d x %d) grid", start, rows, cols)
	}

	blocked := cellSet(world.Obstacles())
	if blocked[start] {
		return fmt.Errorf("trajectory: start %v is an obstacle", start)
	}

	goal := world.GoalCell()
	penalties := cellSet(world.Penalties())

	path := make(map[gridworld.Cell]bool)
	cell := start
	for step := 0; step < limit && cell != goal; step++ {
		action, _ := table.BestAction(cell.Row*cols + cell.Col)
		next := world.NextCell(cell, action)
		if next == cell {
			break
		}
		cell = next
		path[cell] = true
	}

	draw(w, world, func(cell gridworld.Cell) aurora.Value {
		switch {
		case cell == start:
			return aurora.Green("S")
		case cell == goal:
			return aurora.Yellow("G")
		case path[cell]:
			return aurora.Cyan("*")
		case blocked[cell]:
			return aurora.White("#")
		case penalties[cell]:
			return aurora.Red("!")
		default:
			return aurora.Gray(8, ".")
		}
	})

	return nil
}

// draw writes one line per grid row, with each cell's mark separated by
// a column divider
func draw(w io.Writer, world *gridworld.GridWorld,
	mark func(gridworld.Cell) aurora.Value) {
	rows, cols := world.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, " %v %v", mark(gridworld.Cell{Row: r, Col: c}),
				aurora.White("|"))
		}
		fmt.Fprintln(w)
	}
}

// cellSet converts a list of cells into a membership set
func cellSet(cells []gridworld.Cell) map[gridworld.Cell]bool {
	set := make(map[gridworld.Cell]bool, len(cells))
	for _, cell := range cells {
		set[cell] = true
	}
	return set
}
