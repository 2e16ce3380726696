package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotutor/environment"
)

// SingleStart implements a start-state distribution with all
// probability mass on a single cell
type SingleStart struct {
	state mat.Vector
}

// NewSingleStart returns a Starter that always starts episodes at
// start on an (r x c) grid
func NewSingleStart(start Cell, r, c int) (environment.Starter, error) {
	if start.Row < 0 || start.Row >= r || start.Col < 0 || start.Col >= c {
		return nil, fmt.Errorf("start %v is out of bounds for a "+
			"(%d x %d) grid", start, r, c)
	}

	return &SingleStart{state: cToV(start, r, c)}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() mat.Vector {
	return s.state
}

// UniformStart implements a uniform start-state distribution over the
// free cells of a grid: every cell except obstacles, penalty cells,
// and the goal.
type UniformStart struct {
	free []int
	r, c int
	rng  *rand.Rand
}

// NewUniformStart returns a Starter that starts episodes uniformly at
// random over the free cells of the grid described by the arguments
func NewUniformStart(r, c int, obstacles, penalties []Cell, goal Cell,
	seed uint64) (environment.Starter, error) {
	l, err := newLayout(r, c, obstacles, penalties, goal)
	if err != nil {
		return nil, err
	}

	free := l.freeCells()
	if len(free) == 0 {
		return nil, fmt.Errorf("grid has no free cells to start in")
	}

	return &UniformStart{
		free: free,
		r:    r,
		c:    c,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Start draws and returns a starting state
func (u *UniformStart) Start() mat.Vector {
	ind := u.free[u.rng.Intn(len(u.free))]
	vec := mat.NewVecDense(u.r*u.c, nil)
	vec.SetVec(ind, 1.0)
	return vec
}
