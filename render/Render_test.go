package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
)

// testWorld returns a (3 x 3) grid with an obstacle in the centre, the
// goal in the bottom right corner, and the agent in the top left
func testWorld(t *testing.T) *gridworld.GridWorld {
	t.Helper()

	config := gridworld.Config{
		Rows:       3,
		Cols:       3,
		Obstacles:  []gridworld.Cell{{Row: 1, Col: 1}},
		Goal:       gridworld.Cell{Row: 2, Col: 2},
		Start:      gridworld.Cell{Row: 0, Col: 0},
		StepReward: -1,
		GoalReward: 10,
		Discount:   0.95,
	}
	world, _, err := config.Create(1)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	return world
}

func TestGrid(t *testing.T) {
	var buffer bytes.Buffer
	Grid(&buffer, testWorld(t))

	output := buffer.String()
	if lines := strings.Count(output, "\n"); lines != 3 {
		t.Errorf("expected 3 lines, got %d", lines)
	}
	for _, mark := range []string{"A", "G", "#"} {
		if !strings.Contains(output, mark) {
			t.Errorf("grid does not mark %q", mark)
		}
	}
}

func TestPolicy(t *testing.T) {
	world := testWorld(t)
	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}
	table.Set(0, gridworld.Right, 1)

	var buffer bytes.Buffer
	Policy(&buffer, world, table)

	output := buffer.String()
	for _, mark := range []string{"→", "↑", "G", "#"} {
		if !strings.Contains(output, mark) {
			t.Errorf("policy does not mark %q", mark)
		}
	}
}

func TestValues(t *testing.T) {
	world := testWorld(t)
	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}
	table.Set(0, gridworld.Up, 3.5)

	var buffer bytes.Buffer
	Values(&buffer, world, table)

	output := buffer.String()
	if !strings.Contains(output, "3.50") {
		t.Error("values do not include the greedy value 3.50")
	}
	if !strings.Contains(output, "#") {
		t.Error("values do not mark the obstacle")
	}
}

func TestTrajectory(t *testing.T) {
	world := testWorld(t)
	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	// Steer the greedy walk right along the top row, then down the
	// right column to the goal
	table.Set(0, gridworld.Right, 1)
	table.Set(1, gridworld.Right, 1)
	table.Set(2, gridworld.Down, 1)
	table.Set(5, gridworld.Down, 1)

	var buffer bytes.Buffer
	err = Trajectory(&buffer, world, table, gridworld.Cell{Row: 0, Col: 0},
		100)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	output := buffer.String()
	for _, mark := range []string{"S", "G"} {
		if !strings.Contains(output, mark) {
			t.Errorf("trajectory does not mark %q", mark)
		}
	}
	if stars := strings.Count(output, "*"); stars != 3 {
		t.Errorf("expected 3 path cells, got %d", stars)
	}
}

// TestTrajectoryStuck ensures a policy that walks into a wall ends the
// trajectory instead of looping forever
func TestTrajectoryStuck(t *testing.T) {
	world := testWorld(t)
	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	// An empty table breaks ties toward Up, which walks the agent off
	// the grid from the top row
	var buffer bytes.Buffer
	err = Trajectory(&buffer, world, table, gridworld.Cell{Row: 0, Col: 0},
		1000)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	if stars := strings.Count(buffer.String(), "*"); stars != 0 {
		t.Errorf("expected an empty path, got %d cells", stars)
	}
}

func TestTrajectoryBadStart(t *testing.T) {
	world := testWorld(t)
	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	var buffer bytes.Buffer
	starts := []gridworld.Cell{
		{Row: -1, Col: 0},
		{Row: 0, Col: 3},
		{Row: 1, Col: 1}, // the obstacle
	}
	for _, start := range starts {
		if err := Trajectory(&buffer, world, table, start, 10); err == nil {
			t.Errorf("expected an error for start %v", start)
		}
	}
}
