// Package experiment implements functionality for running experiments
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gotutor/agent"
	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	env "github.com/samuelfneumann/gotutor/environment"
	"github.com/samuelfneumann/gotutor/experiment/tracker"
	"github.com/samuelfneumann/gotutor/metrics"
	"github.com/samuelfneumann/gotutor/teacher"
	ts "github.com/samuelfneumann/gotutor/timestep"
)

// Online runs an agent online on an environment for a fixed number of
// training episodes, optionally with a teacher advising the agent.
//
// On every training step the agent proposes an action and the teacher,
// when present, may override it. The executed action is what steps the
// environment, what on-policy learners bootstrap from, and what counts
// toward the episode's advice total. Episodes end when the agent
// reaches the goal or, counted as a failure, when the step limit is
// hit. The transition that hits the limit is still learned from.
type Online struct {
	environment env.Environment
	agent       agent.Agent
	teacher     *teacher.Teacher // nil trains without advice
	schedule    Schedule
	episodes    int
	stepLimit   int
	trackers    []tracker.Tracker
}

// NewOnline creates and returns a new online experiment running agent
// a on environment e for the argument number of episodes, each cut off
// after stepLimit steps. The teacher may be nil to train unadvised,
// and trackers determine what data is saved.
//
// NewOnline panics on nil or non-positive arguments: validating a
// configuration is the job of Config before the experiment exists.
func NewOnline(e env.Environment, a agent.Agent, teach *teacher.Teacher,
	schedule Schedule, episodes, stepLimit int,
	trackers ...tracker.Tracker) *Online {
	if e == nil {
		panic("newOnline: environment cannot be nil")
	}
	if a == nil {
		panic("newOnline: agent cannot be nil")
	}
	if episodes <= 0 {
		panic(fmt.Sprintf("newOnline: episodes must be positive, got %d",
			episodes))
	}
	if stepLimit <= 0 {
		panic(fmt.Sprintf("newOnline: step limit must be positive, got %d",
			stepLimit))
	}

	return &Online{
		environment: e,
		agent:       a,
		teacher:     teach,
		schedule:    schedule,
		episodes:    episodes,
		stepLimit:   stepLimit,
		trackers:    trackers,
	}
}

// Register registers a tracker.Tracker with the experiment so that
// data generated while the experiment runs can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Table returns the action value table the experiment's agent is
// learning
func (o *Online) Table() *qtable.Table {
	return o.agent.Table()
}

// RunEpisode runs a single training episode and returns its record
func (o *Online) RunEpisode(number int) (metrics.Episode, error) {
	o.agent.Train()
	if o.schedule != nil {
		o.agent.SetEpsilon(o.schedule.At(number))
	}
	return o.run(number, true)
}

// Run runs all training episodes of the experiment, tracking each
// completed episode's record
func (o *Online) Run() ([]metrics.Episode, error) {
	episodes := make([]metrics.Episode, o.episodes)
	for i := 0; i < o.episodes; i++ {
		episode, err := o.RunEpisode(i)
		if err != nil {
			return episodes[:i], fmt.Errorf("run: episode %d: %v", i, err)
		}
		episodes[i] = episode
		o.track(episode)
	}
	return episodes, nil
}

// Evaluate runs episodes with the greedy policy, without learning, and
// without teacher advice, and returns their records. Evaluation
// consumes no randomness beyond the environment's own start states, so
// it never perturbs the training run it interrupts.
func (o *Online) Evaluate(episodes int) ([]metrics.Episode, error) {
	o.agent.Eval()
	defer o.agent.Train()

	results := make([]metrics.Episode, episodes)
	for i := 0; i < episodes; i++ {
		episode, err := o.run(i, false)
		if err != nil {
			return results[:i], fmt.Errorf("evaluate: episode %d: %v", i, err)
		}
		results[i] = episode
	}
	return results, nil
}

// Save saves all the data cached by the trackers to disk
func (o *Online) Save() {
	for _, t := range o.trackers {
		t.Save()
	}
}

// run runs a single episode. When learn is set the agent is updated on
// every transition; otherwise the episode only measures behaviour.
func (o *Online) run(number int, learn bool) (metrics.Episode, error) {
	episode := metrics.Episode{Number: number}
	step := o.environment.Reset()
	action, advised := o.selectAction(step)

	for {
		if advised {
			episode.Advice++
		}
		nextStep, done := o.environment.Step(action)
		episode.Return += nextStep.Reward
		episode.Steps++

		if done {
			if learn {
				transition := ts.NewTerminalTransition(step, action, nextStep)
				if err := o.agent.Update(transition); err != nil {
					return episode, err
				}
			}
			episode.Success = true
			return episode, nil
		}

		var nextAction int
		var nextAdvised bool
		if learn && o.agent.OnPolicy() {
			// On-policy learners bootstrap from the action executed
			// next, so it must be chosen before their update, even
			// when the step limit will end the episode first
			nextAction, nextAdvised = o.selectAction(nextStep)
			transition := ts.NewTransition(step, action, nextStep, nextAction)
			if err := o.agent.Update(transition); err != nil {
				return episode, err
			}
			if episode.Steps >= o.stepLimit {
				return episode, nil
			}
		} else {
			if learn {
				transition := ts.NewTransition(step, action, nextStep,
					ts.NoAction)
				if err := o.agent.Update(transition); err != nil {
					return episode, err
				}
			}
			if episode.Steps >= o.stepLimit {
				return episode, nil
			}
			nextAction, nextAdvised = o.selectAction(nextStep)
		}

		step = nextStep
		action, advised = nextAction, nextAdvised
	}
}

// selectAction selects the action to execute from the argument step:
// the agent's proposal, possibly overridden by the teacher. Teachers
// never advise in evaluation mode.
func (o *Online) selectAction(step ts.TimeStep) (int, bool) {
	action := o.agent.SelectAction(step)
	if o.teacher == nil || o.agent.IsEval() {
		return action, false
	}
	return o.teacher.Advise(step.Observation, action)
}

// track sends a completed episode's record to each tracker
func (o *Online) track(e metrics.Episode) {
	for _, t := range o.trackers {
		t.Track(e)
	}
}
