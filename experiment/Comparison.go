package experiment

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/metrics"
	"github.com/samuelfneumann/gotutor/teacher"
	"github.com/samuelfneumann/gotutor/utils/progressbar"
)

// BaselineName labels the unadvised runs of a teacher sweep
const BaselineName string = "baseline"

// Run names a single configured training run within a Comparison
type Run struct {
	Name   string
	Config Config
}

// Result packages the outcome of a completed run
type Result struct {
	Name     string
	Config   Config
	Episodes []metrics.Episode
	Summary  metrics.Summary
	Table    *qtable.Table
}

// Comparison executes a set of named training runs and collects their
// results for side-by-side analysis.
//
// Runs execute concurrently on a bounded pool of workers. Each run
// creates its own environment, agent, teacher, and random source, so
// runs share no mutable state and their results do not depend on how
// they were interleaved.
type Comparison struct {
	runs    []Run
	workers int

	// Quiet suppresses the terminal progress bar
	Quiet bool
}

// NewComparison returns a new Comparison over the argument runs,
// executing at most workers runs at once. A non-positive workers count
// uses one worker per CPU.
func NewComparison(runs []Run, workers int) *Comparison {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Comparison{runs: runs, workers: workers}
}

// Run executes all runs of the Comparison and returns their results in
// the order the runs were given. If any run fails, Run returns the
// first failure alongside the results that completed.
func (c *Comparison) Run() ([]Result, error) {
	results := make([]Result, len(c.runs))
	errs := make([]error, len(c.runs))

	var bar *progressbar.ProgressBar
	if !c.Quiet {
		bar = progressbar.NewProgressBar(50, len(c.runs), time.Second, true)
		bar.Display()
		defer bar.Close()
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = execute(c.runs[i])
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range c.runs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("run %q: %v", c.runs[i].Name, err)
		}
	}
	return results, nil
}

// execute runs a single configuration to completion
func execute(r Run) (Result, error) {
	online, err := r.Config.Create()
	if err != nil {
		return Result{}, err
	}

	episodes, err := online.Run()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Name:     r.Name,
		Config:   r.Config,
		Episodes: episodes,
		Summary: metrics.Summarize(episodes, r.Config.Window(),
			r.Config.Target()),
		Table: online.Table(),
	}, nil
}

// TeacherSweep builds the runs of a teacher comparison: for every seed
// one unadvised baseline run, plus one run per availability, accuracy,
// and seed. Runs of the same teacher setting share a name so that
// Aggregate can average them across seeds.
func TeacherSweep(base Config, availabilities, accuracies []float64,
	seeds []uint64) []Run {
	runs := make([]Run, 0,
		len(seeds)*(1+len(availabilities)*len(accuracies)))

	for _, seed := range seeds {
		config := base
		config.Seed = seed
		config.Teacher = teacher.Config{}
		runs = append(runs, Run{Name: BaselineName, Config: config})
	}

	for _, availability := range availabilities {
		for _, accuracy := range accuracies {
			name := fmt.Sprintf("avail %v acc %v", availability, accuracy)
			for _, seed := range seeds {
				config := base
				config.Seed = seed
				config.Teacher = teacher.Config{
					Availability: availability,
					Accuracy:     accuracy,
				}
				runs = append(runs, Run{Name: name, Config: config})
			}
		}
	}

	return runs
}

// SweepSummary aggregates the results of one teacher setting across
// seeds
type SweepSummary struct {
	Name         string
	Availability float64
	Accuracy     float64
	Baseline     bool
	Runs         int
	Summary      metrics.Summary
}

// Aggregate groups results by run name and averages their summaries.
// Groups appear in the order their first run appeared. Learning speed
// is averaged only over the runs that reached the success target; if
// no run in a group reached it, the group's learning speed is -1.
func Aggregate(results []Result) []SweepSummary {
	var order []string
	groups := make(map[string][]Result)
	for _, r := range results {
		if _, ok := groups[r.Name]; !ok {
			order = append(order, r.Name)
		}
		groups[r.Name] = append(groups[r.Name], r)
	}

	aggregates := make([]SweepSummary, 0, len(order))
	for _, name := range order {
		group := groups[name]

		returns := make([]float64, len(group))
		successes := make([]float64, len(group))
		steps := make([]float64, len(group))
		advice := make([]float64, len(group))
		var speeds []float64
		for i, r := range group {
			returns[i] = r.Summary.AvgReturn
			successes[i] = r.Summary.SuccessRate
			steps[i] = r.Summary.AvgSteps
			advice[i] = r.Summary.AvgAdvice
			if r.Summary.LearningSpeed >= 0 {
				speeds = append(speeds, r.Summary.LearningSpeed)
			}
		}

		speed := -1.0
		if len(speeds) > 0 {
			speed = stat.Mean(speeds, nil)
		}

		aggregates = append(aggregates, SweepSummary{
			Name:         name,
			Availability: group[0].Config.Teacher.Availability,
			Accuracy:     group[0].Config.Teacher.Accuracy,
			Baseline:     group[0].Config.Teacher.Availability <= 0,
			Runs:         len(group),
			Summary: metrics.Summary{
				AvgReturn:     stat.Mean(returns, nil),
				SuccessRate:   stat.Mean(successes, nil),
				AvgSteps:      stat.Mean(steps, nil),
				AvgAdvice:     stat.Mean(advice, nil),
				LearningSpeed: speed,
			},
		})
	}

	return aggregates
}
