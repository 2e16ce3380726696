// Package qtable implements action value tables for tabular agents
package qtable

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/gotutor/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Table stores one action value per state and action pair. Values are
// held in a dense matrix with one row per action and one column per
// state so that multiplying the matrix with a one-hot state
// observation yields the action values of that state.
//
// A single Table is shared between the Learner and Policy of an agent.
type Table struct {
	values *mat.Dense
}

// New returns a new Table of zero-valued action values for a problem
// with the argument number of actions and states
func New(actions, states int) (*Table, error) {
	if actions <= 0 {
		return nil, fmt.Errorf("new: actions must be positive, got %d",
			actions)
	}
	if states <= 0 {
		return nil, fmt.Errorf("new: states must be positive, got %d", states)
	}
	return &Table{values: mat.NewDense(actions, states, nil)}, nil
}

// NumActions returns the number of actions the Table stores values for
func (t *Table) NumActions() int {
	actions, _ := t.values.Dims()
	return actions
}

// NumStates returns the number of states the Table stores values for
func (t *Table) NumStates() int {
	_, states := t.values.Dims()
	return states
}

// Get returns the action value of taking the argument action in the
// argument state
func (t *Table) Get(state, action int) float64 {
	return t.values.At(action, state)
}

// Set sets the action value of taking the argument action in the
// argument state
func (t *Table) Set(state, action int, value float64) {
	t.values.Set(action, state, value)
}

// BestAction returns the greedy action in the argument state and its
// action value. Ties are broken by the lowest action index.
func (t *Table) BestAction(state int) (int, float64) {
	col := t.values.ColView(state)
	action := matutils.MaxVec(col)
	return action, col.AtVec(action)
}

// ActionValues returns the action values of the state described by the
// argument one-hot observation vector
func (t *Table) ActionValues(obs mat.Vector) *mat.VecDense {
	values := mat.NewVecDense(t.NumActions(), nil)
	values.MulVec(t.values, obs)
	return values
}

// StateOf returns the state index described by the argument one-hot
// observation vector
func (t *Table) StateOf(obs mat.Vector) (int, error) {
	if obs.Len() != t.NumStates() {
		return 0, fmt.Errorf("stateOf: observation has %d components "+
			"but table has %d states", obs.Len(), t.NumStates())
	}
	return matutils.MaxVec(obs), nil
}

// Values returns the matrix of action values backing the Table. The
// matrix is shared with the Table, not copied, so initializers can
// fill it in place.
func (t *Table) Values() *mat.Dense {
	return t.values
}

// String returns the matrix of action values formatted for printing
func (t *Table) String() string {
	return matutils.Format(t.values)
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table) GobEncode() ([]byte, error) {
	return t.values.MarshalBinary()
}

// GobDecode implements the gob.GobDecoder interface
func (t *Table) GobDecode(data []byte) error {
	if t.values == nil {
		t.values = &mat.Dense{}
	}
	return t.values.UnmarshalBinary(data)
}

// Save serializes the Table to the argument file
func (t *Table) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file %v: %v", filename, err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	return nil
}

// Load deserializes a Table from the argument file
func Load(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file %v: %v", filename,
			err)
	}
	defer file.Close()

	var table Table
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %v", err)
	}
	return &table, nil
}
