package experiment

import (
	"math"

	"github.com/samuelfneumann/gotutor/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

// Schedule determines the exploration rate of a policy as a pure
// function of the episode index, so that a run's exploration depends
// only on its configuration and never on timing or call order.
type Schedule interface {
	At(episode int) float64
}

// Constant is a Schedule that never changes
type Constant struct {
	Value float64
}

// NewConstant returns a Schedule fixing the exploration rate at value
// for every episode
func NewConstant(value float64) Constant {
	return Constant{Value: value}
}

// At returns the constant exploration rate
func (c Constant) At(int) float64 {
	return c.Value
}

// Linear anneals the exploration rate from Start to End evenly over
// Episodes episodes, then holds it at End
type Linear struct {
	Start    float64
	End      float64
	Episodes int
}

// NewLinear returns a Schedule annealing from start to end over the
// argument number of episodes
func NewLinear(start, end float64, episodes int) Linear {
	return Linear{Start: start, End: end, Episodes: episodes}
}

// At returns the exploration rate of the argument episode
func (l Linear) At(episode int) float64 {
	if l.Episodes <= 1 {
		return l.End
	}

	fraction := float64(episode) / float64(l.Episodes-1)
	value := l.Start + fraction*(l.End-l.Start)

	bounds := r1.Interval{
		Min: math.Min(l.Start, l.End),
		Max: math.Max(l.Start, l.End),
	}
	return floatutils.ClipInterval(value, bounds)
}
