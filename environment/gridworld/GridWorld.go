// Package gridworld implements 2D gridworld environments with
// obstacles, penalty cells, and a single goal
package gridworld

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/timestep"
	"github.com/samuelfneumann/gotutor/utils/matutils"
)

// Actions available in a GridWorld
const (
	Up int = iota
	Down
	Left
	Right
)

// NumActions is the number of actions legal in every GridWorld state
const NumActions int = 4

// Cell is a single position in a GridWorld, indexed by row and column
// from the top left corner
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// layout describes the static geometry of a GridWorld: its bounds, its
// blocked and penalized cells, and its goal. The environment, its
// task, and its starter all consult the same layout so that movement
// and rewards can never disagree about where walls are.
type layout struct {
	rows, cols int
	obstacles  map[int]bool
	penalties  map[int]bool
	goal       int
}

// newLayout validates the geometry arguments and returns the layout
// they describe
func newLayout(rows, cols int, obstacles, penalties []Cell,
	goal Cell) (*layout, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid must have positive dimensions, "+
			"got (%d x %d)", rows, cols)
	}

	l := &layout{
		rows:      rows,
		cols:      cols,
		obstacles: make(map[int]bool),
		penalties: make(map[int]bool),
	}

	if !l.inBounds(goal) {
		return nil, fmt.Errorf("goal %v is out of bounds for a (%d x %d) "+
			"grid", goal, rows, cols)
	}
	l.goal = l.index(goal)

	for _, c := range obstacles {
		if !l.inBounds(c) {
			return nil, fmt.Errorf("obstacle %v is out of bounds for a "+
				"(%d x %d) grid", c, rows, cols)
		}
		if l.index(c) == l.goal {
			return nil, fmt.Errorf("obstacle %v overlaps the goal", c)
		}
		l.obstacles[l.index(c)] = true
	}

	for _, c := range penalties {
		if !l.inBounds(c) {
			return nil, fmt.Errorf("penalty cell %v is out of bounds for "+
				"a (%d x %d) grid", c, rows, cols)
		}
		if l.index(c) == l.goal {
			return nil, fmt.Errorf("penalty cell %v overlaps the goal", c)
		}
		if l.obstacles[l.index(c)] {
			return nil, fmt.Errorf("penalty cell %v overlaps an obstacle", c)
		}
		l.penalties[l.index(c)] = true
	}

	return l, nil
}

// inBounds returns whether a cell is within the grid bounds
func (l *layout) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < l.rows && c.Col >= 0 && c.Col < l.cols
}

// index converts a cell to its flattened grid index
func (l *layout) index(c Cell) int {
	return c.Row*l.cols + c.Col
}

// cell converts a flattened grid index to a cell
func (l *layout) cell(i int) Cell {
	return Cell{Row: i / l.cols, Col: i % l.cols}
}

// target returns the cell that taking action in position pos aims at,
// ignoring whether that cell can actually be entered
func (l *layout) target(pos, action int) Cell {
	c := l.cell(pos)
	switch action {
	case Up:
		c.Row--
	case Down:
		c.Row++
	case Left:
		c.Col--
	case Right:
		c.Col++
	default:
		panic(fmt.Sprintf("target: illegal action %d, legal actions are "+
			"%d through %d", action, Up, Right))
	}
	return c
}

// move returns the position the agent ends in after taking action in
// position pos, along with whether the move was blocked. Moves off the
// grid or into an obstacle leave the agent in place.
func (l *layout) move(pos, action int) (int, bool) {
	c := l.target(pos, action)
	if !l.inBounds(c) {
		return pos, true
	}

	next := l.index(c)
	if l.obstacles[next] {
		return pos, true
	}
	return next, false
}

// bumped returns whether taking action in position pos runs the agent
// into an obstacle. Running off the grid edge is not a bump.
func (l *layout) bumped(pos, action int) bool {
	c := l.target(pos, action)
	return l.inBounds(c) && l.obstacles[l.index(c)]
}

// freeCells returns the flattened indices of all cells an episode may
// start in: every cell that is not an obstacle, a penalty cell, or the
// goal. Indices are returned in increasing order.
func (l *layout) freeCells() []int {
	var free []int
	for i := 0; i < l.rows*l.cols; i++ {
		if !l.obstacles[i] && !l.penalties[i] && i != l.goal {
			free = append(free, i)
		}
	}
	return free
}

// distances returns the number of steps needed to reach the goal from
// every cell, computed by breadth first search outward from the goal.
// Cells that cannot reach the goal get a distance of -1. If
// avoidPenalties is set, paths may not pass through penalty cells.
func (l *layout) distances(avoidPenalties bool) []int {
	dist := make([]int, l.rows*l.cols)
	for i := range dist {
		dist[i] = -1
	}

	passable := func(i int) bool {
		if l.obstacles[i] {
			return false
		}
		return !avoidPenalties || !l.penalties[i]
	}

	queue := []int{l.goal}
	dist[l.goal] = 0

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for a := Up; a <= Right; a++ {
			next, blocked := l.move(pos, a)
			if blocked || !passable(next) || dist[next] >= 0 {
				continue
			}
			dist[next] = dist[pos] + 1
			queue = append(queue, next)
		}
	}

	return dist
}

// bestStep returns the lowest numbered action that strictly decreases
// the distance to the goal from pos, or -1 if no action does
func (l *layout) bestStep(pos int, dist []int) int {
	if dist[pos] <= 0 {
		return -1
	}

	for a := Up; a <= Right; a++ {
		next, blocked := l.move(pos, a)
		if blocked {
			continue
		}
		if dist[next] >= 0 && dist[next] < dist[pos] {
			return a
		}
	}
	return -1
}

// optimalActions returns the optimal action for every cell: the first
// step of a shortest path to the goal. Paths that avoid penalty cells
// are preferred; penalized paths are used only for cells that cannot
// otherwise reach the goal. Ties are broken toward the lowest numbered
// action. Cells with no path to the goal, and the goal itself, get an
// arbitrary legal action.
func (l *layout) optimalActions() []int {
	safe := l.distances(true)
	any := l.distances(false)

	optimal := make([]int, l.rows*l.cols)
	for i := range optimal {
		a := l.bestStep(i, safe)
		if a < 0 {
			a = l.bestStep(i, any)
		}
		if a < 0 {
			a = Up
		}
		optimal[i] = a
	}
	return optimal
}

// GridWorld implements a rectangular grid environment. The agent moves
// between cells with the four cardinal actions. Moves off the grid or
// into an obstacle leave the agent in place. Episodes end only when
// the agent reaches the goal cell.
//
// The environment state is a one-hot vector over grid cells with a 1.0
// at the agent's current position.
type GridWorld struct {
	environment.Task
	environment.Starter
	layout      *layout
	position    int
	discount    float64
	currentStep timestep.TimeStep
	optimal     []int
}

// New creates a new GridWorld with the argument geometry, task,
// starter, and discount. The returned TimeStep is the first of the
// new environment.
func New(rows, cols int, obstacles, penalties []Cell, goal Cell,
	t environment.Task, s environment.Starter,
	discount float64) (*GridWorld, timestep.TimeStep, error) {
	if discount <= 0 || discount > 1 {
		return nil, timestep.TimeStep{}, fmt.Errorf("discount must be in "+
			"(0, 1], got %v", discount)
	}

	l, err := newLayout(rows, cols, obstacles, penalties, goal)
	if err != nil {
		return nil, timestep.TimeStep{}, err
	}

	g := &GridWorld{
		Task:     t,
		Starter:  s,
		layout:   l,
		discount: discount,
		optimal:  l.optimalActions(),
	}

	return g, g.Reset(), nil
}

// Reset resets the environment between episodes, drawing the new
// starting position from the environment's Starter
func (g *GridWorld) Reset() timestep.TimeStep {
	startVec := g.Start()
	g.position = vToInd(startVec, g.layout.rows, g.layout.cols)
	obs := g.getObservation()

	startStep := timestep.New(timestep.First, 0, g.discount, obs, 0)
	g.currentStep = startStep
	return startStep
}

// Step takes a single environmental step given some action. Along with
// the next TimeStep, it returns whether that step ends the episode.
//
// Step panics if the action is outside the legal action set. Actions
// are always in range when drawn from a policy over this environment's
// ActionSpec, so an out-of-range action is a programming error.
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool) {
	if action < Up || action > Right {
		panic(fmt.Sprintf("step: illegal action %d, legal actions are "+
			"%d through %d", action, Up, Right))
	}

	state := g.currentStep.Observation
	next, _ := g.layout.move(g.position, action)
	g.position = next
	obs := g.getObservation()

	reward := g.GetReward(state, action, obs)
	number := g.currentStep.Number + 1
	stepType := timestep.Mid
	if g.AtGoal(obs) {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, g.discount, obs, number)
	g.currentStep = step

	return step, stepType == timestep.Last
}

// OptimalAction returns the optimal action in the argument state: the
// first step of a shortest path to the goal, preferring paths that
// avoid penalty cells, with ties broken toward the lowest numbered
// action. If state is the goal or the goal is unreachable from state,
// the returned action is arbitrary but legal.
func (g *GridWorld) OptimalAction(state mat.Vector) int {
	return g.optimal[vToInd(state, g.layout.rows, g.layout.cols)]
}

// NextCell returns the cell an agent in cell c would end in after
// taking action, without moving the environment's agent. Moves off the
// grid or into an obstacle leave the agent in place.
//
// NextCell panics if c is out of bounds or action is illegal.
func (g *GridWorld) NextCell(c Cell, action int) Cell {
	if !g.layout.inBounds(c) {
		panic(fmt.Sprintf("nextCell: cell %v is out of bounds for a "+
			"(%d x %d) grid", c, g.layout.rows, g.layout.cols))
	}

	next, _ := g.layout.move(g.layout.index(c), action)
	return g.layout.cell(next)
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (rows, cols int) {
	return g.layout.rows, g.layout.cols
}

// Coordinates returns the cell the agent currently occupies
func (g *GridWorld) Coordinates() Cell {
	return g.layout.cell(g.position)
}

// At checks the value at position (i, j) in the gridworld. A value of
// 1.0 indicates that the agent is at position (i, j).
func (g *GridWorld) At(i, j int) float64 {
	if g.layout.index(Cell{Row: i, Col: j}) == g.position {
		return 1.0
	}
	return 0.0
}

// GoalCell returns the cell the goal occupies
func (g *GridWorld) GoalCell() Cell {
	return g.layout.cell(g.layout.goal)
}

// Obstacles returns the obstacle cells in increasing index order
func (g *GridWorld) Obstacles() []Cell {
	var cells []Cell
	for i := 0; i < g.layout.rows*g.layout.cols; i++ {
		if g.layout.obstacles[i] {
			cells = append(cells, g.layout.cell(i))
		}
	}
	return cells
}

// Penalties returns the penalty cells in increasing index order
func (g *GridWorld) Penalties() []Cell {
	var cells []Cell
	for i := 0; i < g.layout.rows*g.layout.cols; i++ {
		if g.layout.penalties[i] {
			cells = append(cells, g.layout.cell(i))
		}
	}
	return cells
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	cells := g.layout.rows * g.layout.cols
	shape := mat.NewVecDense(cells, nil)
	lowerBound := mat.NewVecDense(cells, nil)
	upperBound := matutils.VecOnes(cells)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Up)})
	upperBound := mat.NewVecDense(1, []float64{float64(Right)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (g *GridWorld) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return environment.NewSpec(shape, environment.Discount, bound, bound,
		environment.Continuous)
}

// RewardSpec returns the reward specification of the environment. The
// bounds are exact when the task is a *Goal and (-inf, inf) otherwise.
func (g *GridWorld) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)

	min, max := math.Inf(-1), math.Inf(1)
	if goal, ok := g.Task.(*Goal); ok {
		min, max = goal.RewardRange()
	}
	lowerBound := mat.NewVecDense(1, []float64{min})
	upperBound := mat.NewVecDense(1, []float64{max})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |  Goal: %v  |  Bounds: (%d x %d)"
	return fmt.Sprintf(str, g.Coordinates(), g.GoalCell(), g.layout.rows,
		g.layout.cols)
}

// getObservation returns the one-hot state observation for the current
// agent position
func (g *GridWorld) getObservation() *mat.VecDense {
	position := mat.NewVecDense(g.layout.rows*g.layout.cols, nil)
	position.SetVec(g.position, 1.0)
	return position
}

// cToV converts a cell to a one-hot vector over the cells of an
// (r x c) grid
func cToV(cell Cell, r, c int) mat.Vector {
	vec := mat.NewVecDense(r*c, nil)
	vec.SetVec(cell.Row*c+cell.Col, 1.0)
	return vec
}

// vToInd converts a one-hot vector over the cells of an (r x c) grid
// into the flattened index of its single non-zero value
func vToInd(v mat.Vector, r, c int) int {
	if v.Len() != r*c {
		panic(fmt.Sprintf("vToInd: vector length %d does not match a "+
			"(%d x %d) grid", v.Len(), r, c))
	}
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			return i
		}
	}
	panic("vToInd: no non-zero value in one-hot vector")
}
