package tracker

import "github.com/samuelfneumann/gotutor/metrics"

// Advice tracks and saves how many times per episode a teacher
// intervened on the agent's proposed actions. Only interventions on
// executed actions count.
type Advice struct {
	advice   []int
	filename string
}

// NewAdvice returns a new Advice Tracker which will save its data at
// the specified location filename
func NewAdvice(filename string) Tracker {
	return &Advice{filename: filename}
}

// Track caches the number of interventions in a completed episode
func (a *Advice) Track(e metrics.Episode) {
	a.advice = append(a.advice, e.Advice)
}

// Save saves the data tracked by the Advice Tracker to disk
func (a *Advice) Save() {
	save(a.filename, a.advice)
}
