package qlearning

import (
	"testing"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
	"github.com/samuelfneumann/gotutor/timestep"
	"github.com/samuelfneumann/gotutor/utils/matutils/initializers/weights"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const tolerance float64 = 1e-10

// testEnv returns a deterministic (2 x 2) gridworld
func testEnv(t *testing.T) *gridworld.GridWorld {
	t.Helper()

	config := gridworld.Config{
		Rows:       2,
		Cols:       2,
		Goal:       gridworld.Cell{Row: 1, Col: 1},
		Start:      gridworld.Cell{Row: 0, Col: 0},
		StepReward: -1,
		GoalReward: 20,
		Discount:   0.9,
	}
	env, _, err := config.Create(1)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	return env
}

// oneHot returns a one-hot vector of the argument length with a 1.0 at
// index state
func oneHot(state, length int) *mat.VecDense {
	v := mat.NewVecDense(length, nil)
	v.SetVec(state, 1.0)
	return v
}

// TestUpdate checks the Q-Learning update rule against hand-computed
// action values
func TestUpdate(t *testing.T) {
	q, err := New(testEnv(t), Config{Epsilon: 0.1, LearningRate: 0.5},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	table := q.Table()

	transition := timestep.Transition{
		State:      oneHot(0, 4),
		Action:     gridworld.Right,
		Reward:     -1,
		Discount:   0.9,
		NextState:  oneHot(1, 4),
		NextAction: timestep.NoAction,
	}

	// All next state values are 0, so the target is the reward:
	// Q(0, Right) <- 0 + 0.5 * (-1 - 0) = -0.5
	if err := q.Update(transition); err != nil {
		t.Fatalf("could not update: %v", err)
	}
	if got := table.Get(0, gridworld.Right); !scalar.EqualWithinAbs(got,
		-0.5, tolerance) {
		t.Errorf("expected -0.5, got %v", got)
	}

	// With Q(1, Down) = 2 the target becomes -1 + 0.9 * 2 = 0.8:
	// Q(0, Right) <- -0.5 + 0.5 * (0.8 - (-0.5)) = 0.15
	table.Set(1, gridworld.Down, 2.0)
	if err := q.Update(transition); err != nil {
		t.Fatalf("could not update: %v", err)
	}
	if got := table.Get(0, gridworld.Right); !scalar.EqualWithinAbs(got,
		0.15, tolerance) {
		t.Errorf("expected 0.15, got %v", got)
	}
}

// TestUpdateTerminal ensures terminal transitions never bootstrap from
// the next state
func TestUpdateTerminal(t *testing.T) {
	q, err := New(testEnv(t), Config{Epsilon: 0.1, LearningRate: 0.5},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	table := q.Table()

	// A large goal state value would corrupt the update if the
	// learner bootstrapped through episode ends
	table.Set(3, gridworld.Up, 100.0)
	table.Set(1, gridworld.Down, 2.0)

	terminal := timestep.Transition{
		State:      oneHot(1, 4),
		Action:     gridworld.Down,
		Reward:     20,
		Discount:   0.9,
		NextState:  oneHot(3, 4),
		Done:       true,
		NextAction: timestep.NoAction,
	}

	// Q(1, Down) <- 2 + 0.5 * (20 - 2) = 11
	if err := q.Update(terminal); err != nil {
		t.Fatalf("could not update: %v", err)
	}
	if got := table.Get(1, gridworld.Down); !scalar.EqualWithinAbs(got,
		11.0, tolerance) {
		t.Errorf("expected 11, got %v", got)
	}
}

// TestUpdateOffPolicy ensures the update bootstraps from the maximum
// valued next action, not from the action executed next
func TestUpdateOffPolicy(t *testing.T) {
	q, err := New(testEnv(t), Config{Epsilon: 0.1, LearningRate: 0.5},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	if q.OnPolicy() {
		t.Error("Q-Learning should not be on-policy")
	}
	table := q.Table()
	table.Set(1, gridworld.Up, 5.0)

	transition := timestep.Transition{
		State:     oneHot(0, 4),
		Action:    gridworld.Right,
		Reward:    -1,
		Discount:  0.9,
		NextState: oneHot(1, 4),
		// The executed next action is worth 0, the maximum is 5
		NextAction: gridworld.Down,
	}

	// Q(0, Right) <- 0 + 0.5 * (-1 + 0.9 * 5) = 1.75
	if err := q.Update(transition); err != nil {
		t.Fatalf("could not update: %v", err)
	}
	if got := table.Get(0, gridworld.Right); !scalar.EqualWithinAbs(got,
		1.75, tolerance) {
		t.Errorf("expected 1.75, got %v", got)
	}
}

// TestTdError ensures TD errors are computed without changing any
// action values
func TestTdError(t *testing.T) {
	q, err := New(testEnv(t), Config{Epsilon: 0.1, LearningRate: 0.5},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	table := q.Table()
	table.Set(0, gridworld.Right, 1.0)
	table.Set(1, gridworld.Left, 3.0)

	transition := timestep.Transition{
		State:      oneHot(0, 4),
		Action:     gridworld.Right,
		Reward:     -1,
		Discount:   0.9,
		NextState:  oneHot(1, 4),
		NextAction: timestep.NoAction,
	}

	// δ = -1 + 0.9 * 3 - 1 = 0.7
	if got := q.TdError(transition); !scalar.EqualWithinAbs(got, 0.7,
		tolerance) {
		t.Errorf("expected TD error 0.7, got %v", got)
	}
	if got := table.Get(0, gridworld.Right); got != 1.0 {
		t.Errorf("TdError changed an action value to %v", got)
	}
}

// TestUpdateErrors ensures malformed transitions are rejected
func TestUpdateErrors(t *testing.T) {
	q, err := New(testEnv(t), Config{Epsilon: 0.1, LearningRate: 0.5},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	badState := timestep.Transition{
		State:     oneHot(0, 9),
		Action:    gridworld.Up,
		NextState: oneHot(1, 9),
	}
	if err := q.Update(badState); err == nil {
		t.Error("expected error for observation of wrong length")
	}

	badAction := timestep.Transition{
		State:     oneHot(0, 4),
		Action:    timestep.NoAction,
		NextState: oneHot(1, 4),
	}
	if err := q.Update(badAction); err == nil {
		t.Error("expected error for illegal action")
	}
}

// TestNew ensures invalid configurations are rejected
func TestNew(t *testing.T) {
	env := testEnv(t)

	configs := []Config{
		{Epsilon: -0.5, LearningRate: 0.5},
		{Epsilon: 1.5, LearningRate: 0.5},
		{Epsilon: 0.1, LearningRate: 0.0},
		{Epsilon: 0.1, LearningRate: -1.0},
		{Epsilon: 0.1, LearningRate: 1.5},
	}
	for _, config := range configs {
		if _, err := New(env, config, weights.NewZero(),
			rand.NewSource(1)); err == nil {
			t.Errorf("expected error for config %+v", config)
		}
	}

	config := Config{Epsilon: 0.1, LearningRate: 0.5}
	q, err := config.CreateAgent(env, rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	if !config.ValidAgent(q) {
		t.Error("agent should be valid for its own config")
	}
	if config.Type() != agent.EGreedyQLearning {
		t.Errorf("unexpected agent type %v", config.Type())
	}
}

// TestCreateAgentInitialValue ensures CreateAgent fills the table with
// the configured initial value
func TestCreateAgentInitialValue(t *testing.T) {
	config := Config{Epsilon: 0.1, LearningRate: 0.5, InitialValue: 3.25}
	a, err := config.CreateAgent(testEnv(t), rand.NewSource(1))
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	table := a.Table()
	for state := 0; state < table.NumStates(); state++ {
		for action := 0; action < table.NumActions(); action++ {
			if got := table.Get(state, action); got != 3.25 {
				t.Fatalf("state %d action %d: expected 3.25, got %v", state,
					action, got)
			}
		}
	}
}

func BenchmarkAgentUpdate(b *testing.B) {
	env, _, err := gridworld.Classic().Create(1)
	if err != nil {
		b.Error(err)
	}

	q, err := New(env, Config{Epsilon: 0.25, LearningRate: 0.01},
		weights.NewZero(), rand.NewSource(1))
	if err != nil {
		b.Error(err)
	}

	transition := timestep.Transition{
		State:      oneHot(0, 100),
		Action:     gridworld.Right,
		Reward:     -1,
		Discount:   0.95,
		NextState:  oneHot(1, 100),
		NextAction: timestep.NoAction,
	}

	for i := 0; i < b.N; i++ {
		if err := q.Update(transition); err != nil {
			b.Error(err)
		}
	}
}
