package tracker

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/metrics"
)

// Return tracks and saves the episodic return in an experiment.
//
// Note: returns accumulate whatever rewards the environment emitted,
// including rewards earned on episodes that were cut off at the step
// limit.
type Return struct {
	lastEpisode    int
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which will save
// its data at the specified location filename
func NewReturn(filename string) Tracker {
	return &Return{lastEpisode: -1, filename: filename}
}

// Track caches the return of a completed episode.
//
// Track panics if it is called for non-sequential episodes
func (r *Return) Track(e metrics.Episode) {
	// Ensure that Track is called on sequential episodes
	if r.lastEpisode+1 != e.Number {
		msg := fmt.Sprintf("warning: last two episodes tracked are not "+
			"sequential: episode %v --> episode %v were tracked",
			r.lastEpisode, e.Number)
		panic(msg)
	}

	r.episodeReturns = append(r.episodeReturns, e.Return)
	r.lastEpisode = e.Number
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() {
	save(r.filename, r.episodeReturns)
}
