package tracker

import "github.com/samuelfneumann/gotutor/metrics"

// Success tracks and saves which episodes of an experiment reached the
// goal. Episodes cut off at the step limit count as failures.
type Success struct {
	successes []bool
	filename  string
}

// NewSuccess returns a new Success Tracker which will save its data at
// the specified location filename
func NewSuccess(filename string) Tracker {
	return &Success{filename: filename}
}

// Track caches whether a completed episode reached the goal
func (s *Success) Track(e metrics.Episode) {
	s.successes = append(s.successes, e.Success)
}

// Save saves the data tracked by the Success Tracker to disk
func (s *Success) Save() {
	save(s.filename, s.successes)
}
