package gridworld

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// testConfig returns a small fixed-start configuration for stepping
// tests:
//
//	S . .
//	. X .
//	P . G
//
// where S is the start, X an obstacle, P a penalty cell, and G the
// goal.
func testConfig() Config {
	return Config{
		Rows:           3,
		Cols:           3,
		Obstacles:      []Cell{{Row: 1, Col: 1}},
		Penalties:      []Cell{{Row: 2, Col: 0}},
		Goal:           Cell{Row: 2, Col: 2},
		Start:          Cell{Row: 0, Col: 0},
		StepReward:     -1,
		ObstacleReward: -5,
		PenaltyReward:  -10,
		GoalReward:     20,
		Discount:       0.99,
	}
}

func TestStepMovesAgent(t *testing.T) {
	g, first, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}
	if !first.First() {
		t.Error("reset should return a first timestep")
	}
	if got := g.Coordinates(); got != (Cell{Row: 0, Col: 0}) {
		t.Errorf("agent starts at %v, want (0, 0)", got)
	}

	step, done := g.Step(Right)
	if done {
		t.Error("moving to (0, 1) should not end the episode")
	}
	if got := g.Coordinates(); got != (Cell{Row: 0, Col: 1}) {
		t.Errorf("agent at %v after moving right, want (0, 1)", got)
	}
	if step.Reward != -1 {
		t.Errorf("got reward %v for a plain step, want -1", step.Reward)
	}
	if step.Number != 1 {
		t.Errorf("got step number %d, want 1", step.Number)
	}

	g.Step(Down)
	if got := g.Coordinates(); got != (Cell{Row: 0, Col: 1}) {
		t.Fatalf("agent at %v, this move should have been blocked", got)
	}
}

func TestStepEdgeLeavesAgentInPlace(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	step, done := g.Step(Up)
	if done {
		t.Error("bumping the grid edge should not end the episode")
	}
	if got := g.Coordinates(); got != (Cell{Row: 0, Col: 0}) {
		t.Errorf("agent at %v after moving off the edge, want (0, 0)", got)
	}
	if step.Reward != -1 {
		t.Errorf("got reward %v for an edge bump, want the step reward -1",
			step.Reward)
	}
}

func TestStepObstacleBump(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	g.Step(Down) // (1, 0)
	step, done := g.Step(Right)
	if done {
		t.Error("an obstacle bump should not end the episode")
	}
	if got := g.Coordinates(); got != (Cell{Row: 1, Col: 0}) {
		t.Errorf("agent at %v after an obstacle bump, want (1, 0)", got)
	}
	if step.Reward != -5 {
		t.Errorf("got reward %v for an obstacle bump, want -5", step.Reward)
	}
}

func TestStepPenaltyCell(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	g.Step(Down) // (1, 0)
	step, done := g.Step(Down)
	if done {
		t.Error("entering a penalty cell should not end the episode")
	}
	if got := g.Coordinates(); got != (Cell{Row: 2, Col: 0}) {
		t.Errorf("agent at %v, want the penalty cell (2, 0)", got)
	}
	if step.Reward != -10 {
		t.Errorf("got reward %v for entering a penalty cell, want -10",
			step.Reward)
	}
}

func TestStepGoalEndsEpisode(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	g.Step(Right) // (0, 1)
	g.Step(Right) // (0, 2)
	g.Step(Down)  // (1, 2)
	step, done := g.Step(Down)

	if !done || !step.Last() {
		t.Error("reaching the goal should end the episode")
	}
	if step.Reward != 20 {
		t.Errorf("got reward %v for reaching the goal, want 20", step.Reward)
	}
	if !g.AtGoal(step.Observation) {
		t.Error("terminal observation should satisfy AtGoal")
	}

	reset := g.Reset()
	if !reset.First() || reset.Number != 0 {
		t.Error("reset after a terminal step should start a fresh episode")
	}
}

func TestStepPanicsOnIllegalAction(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("stepping with an illegal action should panic")
		}
	}()
	g.Step(NumActions)
}

func TestNextCell(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	tests := []struct {
		cell   Cell
		action int
		want   Cell
	}{
		{Cell{Row: 0, Col: 0}, Right, Cell{Row: 0, Col: 1}},
		{Cell{Row: 0, Col: 0}, Up, Cell{Row: 0, Col: 0}},    // edge
		{Cell{Row: 0, Col: 1}, Down, Cell{Row: 0, Col: 1}},  // obstacle
		{Cell{Row: 2, Col: 1}, Right, Cell{Row: 2, Col: 2}}, // goal
	}

	for _, test := range tests {
		if got := g.NextCell(test.cell, test.action); got != test.want {
			t.Errorf("action %d from %v: expected %v, got %v", test.action,
				test.cell, test.want, got)
		}
	}

	// The environment's own agent never moves
	if got := g.Coordinates(); got != (Cell{Row: 0, Col: 0}) {
		t.Errorf("NextCell moved the agent to %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("an out of bounds cell should panic")
		}
	}()
	g.NextCell(Cell{Row: 5, Col: 5}, Up)
}

func TestOptimalActionReachesGoal(t *testing.T) {
	g, _, err := Classic().Create(7)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	l := g.layout
	dist := l.distances(false)

	for i := 0; i < l.rows*l.cols; i++ {
		if l.obstacles[i] || i == l.goal {
			continue
		}

		pos := i
		for steps := 0; pos != l.goal; steps++ {
			if steps > l.rows*l.cols {
				t.Fatalf("optimal actions from %v never reach the goal",
					l.cell(i))
			}

			a := g.OptimalAction(cToV(l.cell(pos), l.rows, l.cols))
			next, blocked := l.move(pos, a)
			if blocked {
				t.Fatalf("optimal action %d from %v is blocked", a,
					l.cell(pos))
			}
			if dist[next] >= dist[pos] {
				t.Fatalf("optimal action %d from %v does not decrease the "+
					"goal distance", a, l.cell(pos))
			}
			pos = next
		}
	}
}

func TestOptimalActionTieBreak(t *testing.T) {
	cfg := Config{
		Rows:       3,
		Cols:       3,
		Goal:       Cell{Row: 0, Col: 0},
		Start:      Cell{Row: 2, Col: 2},
		StepReward: -1,
		GoalReward: 1,
		Discount:   1,
	}
	g, _, err := cfg.Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	// From (1, 1) both Up and Left lie on shortest paths. The lowest
	// numbered action must win.
	if a := g.OptimalAction(cToV(Cell{Row: 1, Col: 1}, 3, 3)); a != Up {
		t.Errorf("got optimal action %d, want Up on a tie", a)
	}
}

func TestOptimalActionAvoidsPenalties(t *testing.T) {
	cfg := Config{
		Rows:          2,
		Cols:          3,
		Penalties:     []Cell{{Row: 0, Col: 1}},
		Goal:          Cell{Row: 0, Col: 2},
		Start:         Cell{Row: 0, Col: 0},
		StepReward:    -1,
		PenaltyReward: -100,
		GoalReward:    1,
		Discount:      1,
	}
	g, _, err := cfg.Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	// The direct path crosses the penalty cell. The optimal route
	// detours through the second row.
	if a := g.OptimalAction(cToV(Cell{Row: 0, Col: 0}, 2, 3)); a != Down {
		t.Errorf("got optimal action %d, want Down around the penalty", a)
	}
}

func TestOptimalActionFallsBackThroughPenalties(t *testing.T) {
	cfg := Config{
		Rows:          1,
		Cols:          3,
		Penalties:     []Cell{{Row: 0, Col: 1}},
		Goal:          Cell{Row: 0, Col: 2},
		Start:         Cell{Row: 0, Col: 0},
		StepReward:    -1,
		PenaltyReward: -100,
		GoalReward:    1,
		Discount:      1,
	}
	g, _, err := cfg.Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	// The only path to the goal crosses the penalty cell, so the
	// oracle has to take it.
	if a := g.OptimalAction(cToV(Cell{Row: 0, Col: 0}, 1, 3)); a != Right {
		t.Errorf("got optimal action %d, want Right through the penalty", a)
	}
}

func TestConfigValidate(t *testing.T) {
	base := testConfig()

	badConfigs := map[string]func(*Config){
		"goal out of bounds": func(c *Config) { c.Goal = Cell{Row: 5, Col: 5} },
		"obstacle out of bounds": func(c *Config) {
			c.Obstacles = append(c.Obstacles, Cell{Row: -1, Col: 0})
		},
		"obstacle on goal": func(c *Config) {
			c.Obstacles = append(c.Obstacles, c.Goal)
		},
		"penalty on obstacle": func(c *Config) {
			c.Penalties = append(c.Penalties, c.Obstacles[0])
		},
		"zero discount":     func(c *Config) { c.Discount = 0 },
		"discount above 1":  func(c *Config) { c.Discount = 1.5 },
		"start on obstacle": func(c *Config) { c.Start = c.Obstacles[0] },
		"start on penalty":  func(c *Config) { c.Start = c.Penalties[0] },
		"start at goal":     func(c *Config) { c.Start = c.Goal },
		"unreachable goal": func(c *Config) {
			c.Obstacles = []Cell{{Row: 1, Col: 2}, {Row: 2, Col: 1}}
			c.Penalties = nil
		},
	}

	for name, corrupt := range badConfigs {
		cfg := base
		corrupt(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("config with %s should not validate", name)
		}
	}

	if err := base.Validate(); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}
}

func TestConfigValidateRandomStartReachability(t *testing.T) {
	// The cell (0, 0) is walled off but free, so random starts can
	// begin an episode that never ends.
	cfg := Config{
		Rows:       3,
		Cols:       3,
		Obstacles:  []Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}},
		Goal:       Cell{Row: 2, Col: 2},
		Start:      Cell{Row: 1, Col: 1},
		StepReward: -1,
		GoalReward: 1,
		Discount:   0.9,
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("fixed start config failed validation: %v", err)
	}

	cfg.RandomStart = true
	if err := cfg.Validate(); err == nil {
		t.Error("random start config with an enclosed free cell should " +
			"not validate")
	}
}

func TestUniformStartExcludesSpecialCells(t *testing.T) {
	cfg := Classic()
	g, _, err := cfg.Create(14)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	for i := 0; i < 500; i++ {
		step := g.Reset()
		pos := vToInd(step.Observation, cfg.Rows, cfg.Cols)

		if g.layout.obstacles[pos] {
			t.Fatalf("episode started on obstacle %v", g.layout.cell(pos))
		}
		if g.layout.penalties[pos] {
			t.Fatalf("episode started on penalty cell %v", g.layout.cell(pos))
		}
		if pos == g.layout.goal {
			t.Fatal("episode started on the goal")
		}
	}
}

func TestCreateSameSeedSameStarts(t *testing.T) {
	cfg := Classic()

	g1, _, err := cfg.Create(99)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}
	g2, _, err := cfg.Create(99)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	for i := 0; i < 100; i++ {
		s1 := g1.Reset()
		s2 := g2.Reset()
		if !mat.Equal(s1.Observation, s2.Observation) {
			t.Fatalf("start observations diverge on draw %d", i)
		}
	}
}

func TestSpecs(t *testing.T) {
	g, _, err := testConfig().Create(1)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}

	if got := g.ObservationSpec().Shape.Len(); got != 9 {
		t.Errorf("got observation shape %d, want 9", got)
	}
	if got := int(g.ActionSpec().UpperBound.AtVec(0)); got != Right {
		t.Errorf("got action upper bound %d, want %d", got, Right)
	}
	if got := g.DiscountSpec().UpperBound.AtVec(0); got != 0.99 {
		t.Errorf("got discount %v, want 0.99", got)
	}

	min := g.RewardSpec().LowerBound.AtVec(0)
	max := g.RewardSpec().UpperBound.AtVec(0)
	if min != -10 || max != 20 {
		t.Errorf("got reward bounds (%v, %v), want (-10, 20)", min, max)
	}
}

func BenchmarkStep(b *testing.B) {
	g, _, err := Classic().Create(1)
	if err != nil {
		b.Fatalf("could not create gridworld: %v", err)
	}

	for i := 0; i < b.N; i++ {
		_, done := g.Step(i % NumActions)
		if done {
			g.Reset()
		}
	}
}
