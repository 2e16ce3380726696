// Package metrics records and summarizes per-episode training results
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Episode records what happened during a single training or evaluation
// episode
type Episode struct {
	Number  int     // index of the episode within its run
	Return  float64 // cumulative reward earned over the episode
	Steps   int     // actions executed before the episode ended
	Success bool    // whether the agent reached the goal
	Advice  int     // teacher interventions during the episode
}

func (e Episode) String() string {
	str := "Episode %d | Return: %.2f  |  Steps: %d  |  Success: %v"
	return fmt.Sprintf(str, e.Number, e.Return, e.Steps, e.Success)
}

// Summary aggregates the episodes of a run. LearningSpeed is the index
// of the first episode at which the rolling success rate reached the
// target rate, or -1 if the run never reached it. All other fields are
// means over the run's episodes.
type Summary struct {
	AvgReturn     float64
	SuccessRate   float64
	AvgSteps      float64
	AvgAdvice     float64
	LearningSpeed float64
}

// Summarize aggregates episodes into a Summary. The window and target
// arguments define the rolling success rate that LearningSpeed is
// measured against.
func Summarize(episodes []Episode, window int, target float64) Summary {
	if len(episodes) == 0 {
		return Summary{LearningSpeed: -1}
	}

	return Summary{
		AvgReturn:     stat.Mean(Returns(episodes), nil),
		SuccessRate:   stat.Mean(successValues(episodes), nil),
		AvgSteps:      stat.Mean(Steps(episodes), nil),
		AvgAdvice:     stat.Mean(Advice(episodes), nil),
		LearningSpeed: float64(LearningSpeed(episodes, window, target)),
	}
}

// Returns extracts the per-episode returns
func Returns(episodes []Episode) []float64 {
	returns := make([]float64, len(episodes))
	for i, e := range episodes {
		returns[i] = e.Return
	}
	return returns
}

// Steps extracts the per-episode step counts
func Steps(episodes []Episode) []float64 {
	steps := make([]float64, len(episodes))
	for i, e := range episodes {
		steps[i] = float64(e.Steps)
	}
	return steps
}

// Advice extracts the per-episode teacher intervention counts
func Advice(episodes []Episode) []float64 {
	advice := make([]float64, len(episodes))
	for i, e := range episodes {
		advice[i] = float64(e.Advice)
	}
	return advice
}

// Successes extracts the per-episode success flags
func Successes(episodes []Episode) []bool {
	successes := make([]bool, len(episodes))
	for i, e := range episodes {
		successes[i] = e.Success
	}
	return successes
}

// successValues returns the success flags as 0 and 1 values
func successValues(episodes []Episode) []float64 {
	values := make([]float64, len(episodes))
	for i, e := range episodes {
		if e.Success {
			values[i] = 1.0
		}
	}
	return values
}

// RollingSuccess returns the success rate of each episode's trailing
// window. Episodes before a full window has accumulated are averaged
// over the episodes seen so far.
func RollingSuccess(episodes []Episode, window int) []float64 {
	if window < 1 {
		panic(fmt.Sprintf("rollingSuccess: window must be positive, got %d",
			window))
	}

	values := successValues(episodes)
	rolling := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		length := window
		if i < window {
			length = i + 1
		} else {
			sum -= values[i-window]
		}
		rolling[i] = sum / float64(length)
	}
	return rolling
}

// LearningSpeed returns the index of the first episode at which the
// success rate over the trailing window reached target. Only full
// windows count: the first window-1 episodes can never qualify. If the
// target rate is never reached, LearningSpeed returns -1.
func LearningSpeed(episodes []Episode, window int, target float64) int {
	rolling := RollingSuccess(episodes, window)
	for i := window - 1; i < len(rolling); i++ {
		if rolling[i] >= target {
			return i
		}
	}
	return -1
}

// Smoothed returns the moving average of xs over a trailing window,
// for plotting noisy per-episode series. Entries before a full window
// are averaged over the values seen so far.
func Smoothed(xs []float64, window int) []float64 {
	if window < 1 {
		panic(fmt.Sprintf("smoothed: window must be positive, got %d",
			window))
	}

	smoothed := make([]float64, len(xs))
	sum := 0.0
	for i, x := range xs {
		sum += x
		length := window
		if i < window {
			length = i + 1
		} else {
			sum -= xs[i-window]
		}
		smoothed[i] = sum / float64(length)
	}
	return smoothed
}
