package tracker

import "github.com/samuelfneumann/gotutor/metrics"

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment. Episodes cut off at the step limit record the limit
// itself as their length.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) Tracker {
	return &EpisodeLength{filename: filename}
}

// Track caches the length of a completed episode
func (e *EpisodeLength) Track(episode metrics.Episode) {
	e.episodeLengths = append(e.episodeLengths, episode.Steps)
}

// Save saves the data tracked by the EpisodeLength Tracker to disk
func (e *EpisodeLength) Save() {
	save(e.filename, e.episodeLengths)
}
