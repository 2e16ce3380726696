// Package weights defines initializations for action value tables
package weights

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer initializes a matrix of action values
type Initializer interface {
	Initialize(values *mat.Dense) // initializes action values
}

// RandUV initializes a matrix of action values using draws from a
// univariate distribution. Every entry of the matrix is drawn from the
// same distribution.
type RandUV struct {
	distuv.Rander
}

// NewRandUV creates and returns a new RandUV with values drawn from
// the distribution defined by rand
func NewRandUV(rand distuv.Rander) RandUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return RandUV{rand}
}

// Initialize initializes a matrix of action values using values drawn
// from a univariate distribution
func (u RandUV) Initialize(values *mat.Dense) {
	if values == nil {
		return
	}

	backingData := values.RawMatrix().Data
	for i := 0; i < len(backingData); i++ {
		backingData[i] = u.Rand()
	}
}

// NewUniform returns an Initializer that fills action values with
// draws from a uniform distribution on [min, max)
func NewUniform(min, max float64, source rand.Source) RandUV {
	return NewRandUV(distuv.Uniform{Min: min, Max: max, Src: source})
}
